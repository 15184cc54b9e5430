package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/application"
	"github.com/taskflow/taskflow-api/pkg/response"
)

// writeServiceError translates application errors to the transport taxonomy.
// An unknown task reference reads as 404 because it is indistinguishable from
// "that task doesn't exist here". Anything unrecognized becomes an opaque 500.
func writeServiceError(c *gin.Context, err error) {
	var invalidRef *application.InvalidReferenceError
	switch {
	case errors.As(err, &invalidRef):
		response.Error[any](c, http.StatusNotFound, "unknown task reference",
			map[string]string{"task_id": invalidRef.TaskID, "list_id": invalidRef.ListID})
	case errors.Is(err, application.ErrListNotFound), errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusBadRequest, "email already registered", nil)
	case errors.Is(err, application.ErrBlankTitle),
		errors.Is(err, application.ErrBlankTaskText),
		errors.Is(err, application.ErrDuplicateTaskID):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrIDMismatch):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
