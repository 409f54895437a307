package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okisetiana/blog-api/internal/container"
	handlers "github.com/okisetiana/blog-api/internal/interface/http"
	"github.com/okisetiana/blog-api/internal/interface/middleware"
)

// ArticleModule wires article routes.
// Public (anonymous allowed, principal optional): GET /api/articles,
// GET /api/articles/categories, GET /api/articles/:id.
// Authenticated: POST/PUT/DELETE. Role checks happen in the service, so a
// Reader gets 403 rather than 401.
type ArticleModule struct {
	Handler *handlers.ArticleHandler
}

func NewArticleModule(h *handlers.ArticleHandler) *ArticleModule {
	return &ArticleModule{Handler: h}
}

func (m *ArticleModule) Register(rg *gin.RouterGroup) {
	rg.GET("/articles", m.Handler.List)
	rg.GET("/articles/categories", m.Handler.Categories)
	rg.GET("/articles/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth())
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByPrincipal()))
	{
		auth.POST("/articles", m.Handler.Create)
		auth.PUT("/articles/:id", m.Handler.Update)
		auth.DELETE("/articles/:id", m.Handler.Delete)
	}
}
