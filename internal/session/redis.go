package session

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/google/uuid"       // Opaque token generation
	"github.com/redis/go-redis/v9" // Redis client
)

// RedisStore keeps sessions and flash messages in Redis, so they survive
// process restarts and are shared by all server instances.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration // Session lifetime
}

// NewRedisStore returns a RedisStore with the given session TTL.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// sessionRecord is the JSON value stored under a session key
type sessionRecord struct {
	UserID uint `json:"user_id"`
}

func sessionKey(token string) string { return "session:" + token }
func flashKey(id string) string      { return "flash:" + id }

// Create opens a session for userID and returns the opaque token.
func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString() // Opaque session token
	b, err := json.Marshal(sessionRecord{UserID: userID})
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKey(token), b, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// UserID resolves a session token to its user ID.
func (s *RedisStore) UserID(ctx context.Context, token string) (uint, bool, error) {
	val, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return 0, false, nil // Session expired or never existed
	} else if err != nil {
		return 0, false, err
	}
	var rec sessionRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return 0, false, err
	}
	return rec.UserID, true, nil
}

// Destroy removes a session.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}

// SetFlash stores a one-shot flash message under id.
func (s *RedisStore) SetFlash(ctx context.Context, id string, f Flash) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, flashKey(id), b, FlashTTL).Err()
}

// PopFlash returns the flash message under id and deletes it, or returns nil
// when there is none.
func (s *RedisStore) PopFlash(ctx context.Context, id string) (*Flash, error) {
	val, err := s.rdb.GetDel(ctx, flashKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var f Flash
	if err := json.Unmarshal([]byte(val), &f); err != nil {
		return nil, err
	}
	return &f, nil
}
