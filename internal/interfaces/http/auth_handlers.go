package http

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tareqhaboukh/project-one/internal/auth"
	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/Tareqhaboukh/project-one/internal/repository"
)

// LoginRequest represents the credentials for POST /api/v1/auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// handleLogin handles POST /api/v1/auth/login
func (s *Server) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "username and password are required",
		})
		return
	}

	user, err := s.deps.Auth.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, Response{
			Success: false,
			Error:   auth.ErrInvalidCredentials.Error(),
		})
		return
	}
	if err != nil {
		s.logger.Error("Login failed", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "login failed",
		})
		return
	}

	if err := s.startSession(c, user); err != nil {
		s.logger.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to start session",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: user})
}

// handleGuestLogin handles POST /api/v1/auth/guest. The guest account is
// passwordless and exists for demo access.
func (s *Server) handleGuestLogin(c *gin.Context) {
	user, err := s.deps.Auth.GuestLogin()
	if err != nil {
		s.logger.Error("Guest login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "guest login unavailable",
		})
		return
	}

	if err := s.startSession(c, user); err != nil {
		s.logger.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to start session",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: user})
}

// handleLogout handles POST /api/v1/auth/logout
func (s *Server) handleLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		s.logger.Error("Failed to clear session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to log out",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// handleCurrentUser handles GET /api/v1/auth/me
func (s *Server) handleCurrentUser(c *gin.Context) {
	session := sessions.Default(c)
	userID, ok := session.Get(sessionUserIDKey).(int64)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{
			Success: false,
			Error:   "login required",
		})
		return
	}

	user, err := s.deps.Users.GetByID(userID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, Response{
			Success: false,
			Error:   "login required",
		})
		return
	}
	if err != nil {
		s.logger.Error("Failed to resolve session user", zap.Int64("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to resolve user",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: user})
}

func (s *Server) startSession(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUsernameKey, user.Username)
	return session.Save()
}
