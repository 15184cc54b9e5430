package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/container"
	handlers "github.com/taskflow/taskflow-api/internal/interface/http"
	"github.com/taskflow/taskflow-api/internal/interface/middleware"
)

// AuthModule registers the public authentication endpoints.
// POST /auth/register, POST /auth/login, POST /auth/refresh
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)
}
