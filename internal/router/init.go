package router

import (
	"github.com/okisetiana/blog-api/internal/application"
	"github.com/okisetiana/blog-api/internal/container"
	pginfra "github.com/okisetiana/blog-api/internal/infrastructure/postgres"
	handlers "github.com/okisetiana/blog-api/internal/interface/http"
	"github.com/okisetiana/blog-api/internal/router/modules"
)

// InitModules builds repositories, services, and handlers from the
// container singletons and registers every feature module. Called once at
// startup.
func InitModules(r *Registry) {
	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	articleRepo := pginfra.NewArticleRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		userRepo,
		articleRepo,
		container.GetJWT(),
		container.GetLogger(),
		container.GetRabbitPub(),
	)
	articleSvc := application.NewArticleService(articleRepo, container.GetLogger())

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, container.GetLogger())))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(authSvc, container.GetLogger())))
	r.Add(modules.NewArticleModule(handlers.NewArticleHandler(articleSvc, container.GetLogger())))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
