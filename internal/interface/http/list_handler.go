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

type ListHandler struct {
	Svc    *listapp.ListService
	Logger *logrus.Logger
}

func NewListHandler(svc *listapp.ListService, logger *logrus.Logger) *ListHandler {
	return &ListHandler{Svc: svc, Logger: logger}
}

type createListRequest struct {
	Title string        `json:"title" binding:"required"`
	Tasks []taskPayload `json:"tasks" binding:"omitempty,dive"`
}

type updateListRequest struct {
	ID    string        `json:"id"`
	Title string        `json:"title" binding:"required"`
	Tasks []taskPayload `json:"tasks" binding:"omitempty,dive"`
}

// List - GET /lists
func (h *ListHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	lists, err := h.Svc.ListByOwner(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toListResponses(lists), "lists", nil)
}

// Create - POST /lists
func (h *ListHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Svc.Create(c.Request.Context(), uid, listapp.CreateListInput{
		Title: req.Title,
		Tasks: toTaskInputs(req.Tasks),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toListResponse(l), "list created", nil)
}

// Get - GET /lists/:listId
func (h *ListHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	l, err := h.Svc.Get(c.Request.Context(), uid, c.Param("listId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toListResponse(l), "list", nil)
}

// Update - PUT /lists/:listId
func (h *ListHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	listID := c.Param("listId")
	var req updateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.ID != "" && req.ID != listID {
		writeServiceError(c, listapp.ErrIDMismatch)
		return
	}
	l, err := h.Svc.Update(c.Request.Context(), uid, listID, listapp.UpdateListInput{
		Title: req.Title,
		Tasks: toTaskInputs(req.Tasks),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toListResponse(l), "list updated", nil)
}

// Delete - DELETE /lists/:listId
func (h *ListHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("listId")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
