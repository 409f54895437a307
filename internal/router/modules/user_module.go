package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okisetiana/blog-api/internal/container"
	handlers "github.com/okisetiana/blog-api/internal/interface/http"
	"github.com/okisetiana/blog-api/internal/interface/middleware"
)

// UserModule wires the authenticated profile endpoints:
// GET /api/users/me, PUT /api/users/me.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth())
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByPrincipal()))
	{
		auth.GET("/users/me", m.Handler.GetProfile)
		auth.PUT("/users/me", m.Handler.UpdateProfile)
	}
}
