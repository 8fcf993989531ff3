package auth

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/Tareqhaboukh/project-one/internal/repository"
)

func newTestService(t *testing.T) (*Service, *repository.UserRepository) {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../migrations/001_initial_schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	users := repository.NewUserRepository(db, zap.NewNop())
	return NewService(users, zap.NewNop()), users
}

func seedUser(t *testing.T, users *repository.UserRepository, username, password string) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		Email:        username + "@example.com",
		PasswordHash: hash,
	}
	require.NoError(t, users.Create(user))
	return user
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)
	assert.True(t, CheckPassword(hash, "password"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestLogin(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "jdoe", "password")

	user, err := svc.Login("jdoe", "password")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", user.Username)

	_, err = svc.Login("jdoe", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGuestLogin(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, models.GuestUsername, "")

	user, err := svc.GuestLogin()
	require.NoError(t, err)
	assert.True(t, user.IsGuest())

	// The guest account never accepts the password flow, even with the
	// empty password it was hashed from.
	_, err = svc.Login(models.GuestUsername, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGuestLoginWithoutSeed(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GuestLogin()
	assert.Error(t, err)
}
