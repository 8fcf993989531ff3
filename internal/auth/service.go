// Package auth implements credential checking and the guest demo login.
package auth

import (
	"errors"
	"fmt"

	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/Tareqhaboukh/project-one/internal/repository"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for a wrong username or password
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service validates logins against the user table
type Service struct {
	users  *repository.UserRepository
	logger *zap.Logger
}

// NewService creates a new auth service
func NewService(users *repository.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger,
	}
}

// Login checks a username/password pair and returns the matching user.
// The guest account cannot be logged into with a password; it only accepts
// the dedicated guest flow.
func (s *Service) Login(username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.IsGuest() || !CheckPassword(user.PasswordHash, password) {
		s.logger.Info("Rejected login attempt", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GuestLogin resolves the seeded guest account for the demo mode
func (s *Service) GuestLogin() (*models.User, error) {
	user, err := s.users.GetByUsername(models.GuestUsername)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("guest account is not seeded")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up guest user: %w", err)
	}
	return user, nil
}
