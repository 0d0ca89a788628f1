package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserStore_Register(t *testing.T) {
	db, mock := newTestDB(t)
	users := NewUserStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user, err := users.Register(context.Background(), "Alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "alice", user.Username, "usernames are lowercased")
	// The stored value is a bcrypt hash of the submitted password
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pw123")))
	expectationsMet(t, mock)
}

func TestUserStore_RegisterEmptyCredentials(t *testing.T) {
	db, mock := newTestDB(t)
	users := NewUserStore(db)

	for _, tc := range []struct{ username, password string }{
		{"", "pw123"},
		{"alice", ""},
		{"   ", "pw123"},
		{"", ""},
	} {
		_, err := users.Register(context.Background(), tc.username, tc.password)
		assert.ErrorIs(t, err, ErrCredentialsRequired)
	}
	// Nothing reached the database
	expectationsMet(t, mock)
}

func TestUserStore_RegisterDuplicateUsername(t *testing.T) {
	db, mock := newTestDB(t)
	users := NewUserStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'username'"})
	mock.ExpectRollback()

	_, err := users.Register(context.Background(), "alice", "pw123")
	assert.ErrorIs(t, err, ErrConflict)
	expectationsMet(t, mock)
}

func TestUserStore_Verify(t *testing.T) {
	db, mock := newTestDB(t)
	users := NewUserStore(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw123"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}).
			AddRow(1, "alice", string(hash)))

	user, err := users.Verify(context.Background(), "Alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	expectationsMet(t, mock)
}

func TestUserStore_VerifyFailsUniformly(t *testing.T) {
	db, mock := newTestDB(t)
	users := NewUserStore(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw123"), bcrypt.MinCost)
	require.NoError(t, err)

	// Wrong password for a known user
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}).
			AddRow(1, "alice", string(hash)))
	_, wrongPass := users.Verify(context.Background(), "alice", "nope")

	// Unknown username
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}))
	_, unknownUser := users.Verify(context.Background(), "nobody", "anything")

	// Both outcomes are the same error, never revealing which part failed
	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	expectationsMet(t, mock)
}

func TestUserStore_DeleteCascades(t *testing.T) {
	db, mock := newTestDB(t)
	users := NewUserStore(db)

	// Owned contacts go first, then the user, in one transaction
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `contacts` WHERE user_id = \\?").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM `users`").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, users.Delete(context.Background(), 1))
	expectationsMet(t, mock)
}

func TestUserStore_DeleteUnknownUser(t *testing.T) {
	db, mock := newTestDB(t)
	users := NewUserStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `contacts` WHERE user_id = \\?").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `users`").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, users.Delete(context.Background(), 99), ErrNotFound)
	expectationsMet(t, mock)
}
