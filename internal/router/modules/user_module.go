package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/container"
	handlers "github.com/taskflow/taskflow-api/internal/interface/http"
	"github.com/taskflow/taskflow-api/internal/interface/middleware"
)

// UserModule registers the authenticated profile endpoints.
// GET /profile, PUT /profile, POST /profile/avatar
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/")
	grp.Use(m.Auth)
	grp.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		grp.GET("/profile", m.Handler.GetProfile)
		grp.PUT("/profile", m.Handler.UpdateProfile)
		grp.POST("/profile/avatar", m.Handler.UploadAvatar)
	}
}
