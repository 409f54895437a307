package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/okisetiana/blog-api/internal/application"
	repo "github.com/okisetiana/blog-api/internal/domain/repository"
	"github.com/okisetiana/blog-api/pkg/response"
	"github.com/okisetiana/blog-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,uname"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN EDITOR AUTHOR READER"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func authPayload(res *application.AuthResult) gin.H {
	return gin.H{
		"token":    res.Token,
		"id":       res.User.ID,
		"username": res.User.Username,
		"email":    res.User.Email,
		"role":     res.User.Role,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.writeAuthError(c, err, "register")
		return
	}
	response.Success[any](c, http.StatusCreated, authPayload(res), "registered",
		gin.H{"expires_at": res.ExpiresAt})
}

// Login handles POST /auth/login. Bad username and bad password produce the
// same answer.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "unexpected error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, authPayload(res), "login successful",
		gin.H{"expires_at": res.ExpiresAt})
}

func (h *AuthHandler) writeAuthError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, repo.ErrUsernameTaken):
		response.Error[any](c, http.StatusConflict, repo.ErrUsernameTaken.Error(), nil)
	case errors.Is(err, repo.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, repo.ErrEmailTaken.Error(), nil)
	case errors.Is(err, application.ErrInvalidRole):
		response.Error[any](c, http.StatusBadRequest, "invalid role", nil)
	default:
		h.Logger.WithError(err).WithField("op", op).Error("auth operation failed")
		response.Error[any](c, http.StatusInternalServerError, "unexpected error", nil)
	}
}
