package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okisetiana/blog-api/internal/container"
	handlers "github.com/okisetiana/blog-api/internal/interface/http"
	"github.com/okisetiana/blog-api/internal/interface/middleware"
)

// AuthModule wires the public registration and login endpoints with per-IP
// rate limits.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
}
