package handler

import (
	"errors"
	"io"
	"net/http"

	"signup-service/internal/usecase/user"
	apperrors "signup-service/pkg/errors"
	"signup-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// SignupRequest represents the HTTP request body for signing up.
// Every field is optional.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	OrgName  string `json:"orgName"`
}

// SignupResponse represents the HTTP response for a successful signup
type SignupResponse struct {
	Success bool  `json:"success"`
	UserID  int64 `json:"userId"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Signup handles POST /api/signup
func (h *UserHandler) Signup(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req SignupRequest
	// An empty body is treated as {}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		verr := apperrors.NewValidationError("body", err.Error())
		log.Warn("invalid signup request", zap.Error(verr))
		c.JSON(apperrors.HTTPStatus(verr), ErrorResponse{
			Error:   "invalid_json",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.Signup(c.Request.Context(), user.SignupRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		OrgName:  req.OrgName,
	})
	if err != nil {
		log.Error("signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Signup failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SignupResponse{
		Success: true,
		UserID:  resp.UserID,
	})
}
