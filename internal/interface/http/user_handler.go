package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/okisetiana/blog-api/internal/application"
	repo "github.com/okisetiana/blog-api/internal/domain/repository"
	"github.com/okisetiana/blog-api/internal/interface/middleware"
	"github.com/okisetiana/blog-api/pkg/response"
	"github.com/okisetiana/blog-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.AuthService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Username        string `json:"username" binding:"omitempty,uname"`
	Email           string `json:"email" binding:"omitempty,email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" binding:"omitempty,pwd"`
}

// GetProfile handles GET /users/me.
func (h *UserHandler) GetProfile(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	profile, err := h.Svc.Profile(c.Request.Context(), p.UserID)
	if err != nil {
		h.writeProfileError(c, err, "profile")
		return
	}
	response.Success(c, http.StatusOK, profile, "profile", nil)
}

// UpdateProfile handles PUT /users/me.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	profile, err := h.Svc.UpdateProfile(c.Request.Context(), p.UserID, application.UpdateProfileInput{
		Username:        req.Username,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.writeProfileError(c, err, "profile update")
		return
	}
	response.Success(c, http.StatusOK, profile, "profile updated", nil)
}

func (h *UserHandler) writeProfileError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, repo.ErrUsernameTaken):
		response.Error[any](c, http.StatusConflict, repo.ErrUsernameTaken.Error(), nil)
	case errors.Is(err, repo.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, repo.ErrEmailTaken.Error(), nil)
	case errors.Is(err, application.ErrWrongPassword):
		response.Error[any](c, http.StatusBadRequest, application.ErrWrongPassword.Error(), nil)
	default:
		h.Logger.WithError(err).WithField("op", op).Error("profile operation failed")
		response.Error[any](c, http.StatusInternalServerError, "unexpected error", nil)
	}
}
