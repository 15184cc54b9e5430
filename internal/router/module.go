package router

import "github.com/gin-gonic/gin"

// Module is a route bundle. Each feature area implements it and hangs its
// endpoints off the group the Registry hands in.
type Module interface {
	Register(rg *gin.RouterGroup)
}
