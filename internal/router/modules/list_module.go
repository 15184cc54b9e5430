package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/container"
	handlers "github.com/taskflow/taskflow-api/internal/interface/http"
	"github.com/taskflow/taskflow-api/internal/interface/middleware"
)

// ListModule registers the authenticated list and task endpoints. Every route
// here runs the bearer-token middleware first, so handlers always see a
// resolved actor id.
type ListModule struct {
	Lists *handlers.ListHandler
	Tasks *handlers.TaskHandler
	Auth  gin.HandlerFunc
}

func NewListModule(lists *handlers.ListHandler, tasks *handlers.TaskHandler, auth gin.HandlerFunc) *ListModule {
	return &ListModule{Lists: lists, Tasks: tasks, Auth: auth}
}

func (m *ListModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/")
	grp.Use(m.Auth)
	grp.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		grp.GET("/lists", m.Lists.List)
		grp.POST("/lists", m.Lists.Create)
		grp.GET("/lists/:listId", m.Lists.Get)
		grp.PUT("/lists/:listId", m.Lists.Update)
		grp.DELETE("/lists/:listId", m.Lists.Delete)

		grp.PUT("/lists/:listId/tasks/:taskId", m.Tasks.Update)
		grp.PATCH("/lists/:listId/tasks/:taskId", m.Tasks.Patch)
		grp.DELETE("/lists/:listId/tasks/:taskId", m.Tasks.Delete)
	}
}
