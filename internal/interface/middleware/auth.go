package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	repo "github.com/taskflow/taskflow-api/internal/domain/repository"
	"github.com/taskflow/taskflow-api/pkg/helpers"
	"github.com/taskflow/taskflow-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth resolves the Authorization Bearer token into an actor id. A token is
// only accepted when its user still exists in the store, so a resolved id
// always names a live account. Any failure is a uniform 401; ownership is
// never consulted here.
func Auth(jwt *helpers.JWTManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || u == nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
