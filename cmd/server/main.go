package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging
	"time"    // Session TTL

	"contactbook/internal/api"     // Custom package for API handlers
	"contactbook/internal/config"  // Custom package for configuration
	"contactbook/internal/db"      // Custom package for database access
	"contactbook/internal/session" // Custom package for sessions
	"contactbook/internal/store"   // Custom package for data stores

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	conn, err := db.Open(dsn)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	// Create tables on startup so a fresh database is usable immediately
	if err := db.Migrate(conn); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Build stores and the session layer explicitly; the router receives
	// everything through api.Deps
	sessions := session.NewRedisStore(redisClient, time.Duration(cfg.SessionTTL)*time.Hour)
	r := api.NewRouter(api.Deps{
		Users:         store.NewUserStore(conn),    // Credential store
		Contacts:      store.NewContactStore(conn), // Contact store
		Sessions:      sessions,                    // Session/flash store
		Redis:         redisClient,                 // Count cache
		JWTSecret:     cfg.JWTSecret,               // Secret for API bearer tokens
		SecureCookies: cfg.IsProd,                  // Secure cookies in production
		TemplateGlob:  cfg.TemplateGlob,            // HTML templates
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
