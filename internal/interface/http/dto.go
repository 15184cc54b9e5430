package handlers

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/application"
	"github.com/taskflow/taskflow-api/internal/domain/entity"
)

type taskPayload struct {
	ID   string `json:"id"`
	Text string `json:"text" binding:"required"`
	Done bool   `json:"done"`
}

type taskResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

type listResponse struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"owner_id"`
	Title     string         `json:"title"`
	Tasks     []taskResponse `json:"tasks"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toTaskInputs(in []taskPayload) []application.TaskInput {
	out := make([]application.TaskInput, 0, len(in))
	for _, t := range in {
		out = append(out, application.TaskInput{ID: t.ID, Text: t.Text, Done: t.Done})
	}
	return out
}

func toListResponse(l *entity.TodoList) listResponse {
	tasks := make([]taskResponse, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		tasks = append(tasks, taskResponse{ID: t.ID, Text: t.Text, Done: t.Done, CreatedAt: t.CreatedAt})
	}
	return listResponse{
		ID:        l.ID,
		OwnerID:   l.OwnerID,
		Title:     l.Title,
		Tasks:     tasks,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toListResponses(ls []*entity.TodoList) []listResponse {
	out := make([]listResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, toListResponse(l))
	}
	return out
}
