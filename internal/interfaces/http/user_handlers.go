package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tareqhaboukh/project-one/internal/auth"
	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/Tareqhaboukh/project-one/internal/repository"
	"github.com/Tareqhaboukh/project-one/pkg/utils"
)

// CreateUserRequest represents the payload for POST /api/v1/users
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// UpdateUserRequest represents the payload for PUT /api/v1/users/:id.
// Changing the password requires the current one.
type UpdateUserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email" binding:"required"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// CheckPasswordRequest represents the payload for POST /api/v1/users/:id/check-password
type CheckPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// handleListUsers handles GET /api/v1/users
func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.deps.Users.List()
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to list users",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: users})
}

// handleCreateUser handles POST /api/v1/users
func (s *Server) handleCreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "username, email and password are required",
		})
		return
	}

	if err := utils.ValidateUsername(req.Username); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	if _, err := s.deps.Users.GetByUsername(req.Username); err == nil {
		c.JSON(http.StatusConflict, Response{
			Success: false,
			Error:   "username already exists",
		})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to check username", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to create user",
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to create user",
		})
		return
	}

	user := &models.User{
		Username:     req.Username,
		FirstName:    utils.SanitizeString(req.FirstName),
		LastName:     utils.SanitizeString(req.LastName),
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.deps.Users.Create(user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to create user",
		})
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: user})
}

// handleGetUser handles GET /api/v1/users/:id
func (s *Server) handleGetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := s.deps.Users.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "user not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to get user", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to get user",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: user})
}

// handleUpdateUser handles PUT /api/v1/users/:id
func (s *Server) handleUpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "email is required",
		})
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	user, err := s.deps.Users.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "user not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to get user", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to update user",
		})
		return
	}

	if req.NewPassword != "" {
		if !auth.CheckPassword(user.PasswordHash, req.OldPassword) {
			c.JSON(http.StatusForbidden, Response{
				Success: false,
				Error:   "current password is incorrect",
			})
			return
		}
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			s.logger.Error("Failed to hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, Response{
				Success: false,
				Error:   "failed to update user",
			})
			return
		}
		user.PasswordHash = hash
	}

	user.FirstName = utils.SanitizeString(req.FirstName)
	user.LastName = utils.SanitizeString(req.LastName)
	user.Email = req.Email

	if err := s.deps.Users.Update(user); err != nil {
		s.logger.Error("Failed to update user", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to update user",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: user})
}

// handleDeleteUser handles DELETE /api/v1/users/:id
func (s *Server) handleDeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := s.deps.Users.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "user not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to delete user", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to delete user",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// handleCheckPassword handles POST /api/v1/users/:id/check-password. It
// reports whether the submitted password matches, without mutating anything.
func (s *Server) handleCheckPassword(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CheckPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "password is required",
		})
		return
	}

	user, err := s.deps.Users.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "user not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to get user", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to check password",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"valid": auth.CheckPassword(user.PasswordHash, req.Password)},
	})
}
