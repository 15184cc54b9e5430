package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appsvc "github.com/taskflow/taskflow-api/internal/application"
	"github.com/taskflow/taskflow-api/internal/container"
	pginfra "github.com/taskflow/taskflow-api/internal/infrastructure/postgres"
	handlers "github.com/taskflow/taskflow-api/internal/interface/http"
	"github.com/taskflow/taskflow-api/internal/interface/middleware"
	"github.com/taskflow/taskflow-api/internal/router/modules"
)

// InitModules builds all repositories, services and handlers from the
// container singletons and registers every feature module. Called once during
// startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	listRepo := pginfra.NewListRepository(container.GetPGPool())

	userSvc := appsvc.NewService(userRepo, container.GetJWT(), container.GetGCS(), cfg.GCSBucket, logger)
	listSvc := appsvc.NewListService(listRepo, logger)

	auth := middleware.Auth(container.GetJWT(), userRepo)

	authHandler := handlers.NewAuthHandler(userSvc, logger, cfg, container.GetRabbitPub())
	userHandler := handlers.NewUserHandler(userSvc, logger)
	listHandler := handlers.NewListHandler(listSvc, logger)
	taskHandler := handlers.NewTaskHandler(listSvc, logger)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewListModule(listHandler, taskHandler, auth))
	r.Add(modules.NewUserModule(userHandler, auth))

	r.Engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
