package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	listapp "github.com/taskflow/taskflow-api/internal/application"
	"github.com/taskflow/taskflow-api/internal/interface/middleware"
	"github.com/taskflow/taskflow-api/pkg/response"
	"github.com/taskflow/taskflow-api/pkg/validation"
)

// TaskHandler exposes single-task convenience endpoints. Each one delegates
// to the list update path, so ownership checks and the atomic full-replace
// semantics are identical to PUT /lists/:listId.
type TaskHandler struct {
	Svc    *listapp.ListService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *listapp.ListService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type updateTaskRequest struct {
	Text string `json:"text" binding:"required"`
	Done bool   `json:"done"`
}

type patchTaskRequest struct {
	Text *string `json:"text"`
	Done *bool   `json:"done"`
}

// Update - PUT /lists/:listId/tasks/:taskId
func (h *TaskHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Svc.UpdateTask(c.Request.Context(), uid, c.Param("listId"), c.Param("taskId"), req.Text, req.Done)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toListResponse(l), "task updated", nil)
}

// Patch - PATCH /lists/:listId/tasks/:taskId
func (h *TaskHandler) Patch(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req patchTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Svc.PatchTask(c.Request.Context(), uid, c.Param("listId"), c.Param("taskId"), req.Text, req.Done)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toListResponse(l), "task updated", nil)
}

// Delete - DELETE /lists/:listId/tasks/:taskId
func (h *TaskHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	l, err := h.Svc.DeleteTask(c.Request.Context(), uid, c.Param("listId"), c.Param("taskId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toListResponse(l), "task deleted", nil)
}
