package application

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/domain/entity"
)

// TaskInput is one client-submitted task representation. An empty ID marks a
// creation; a non-empty ID must match a task already stored on the list.
type TaskInput struct {
	ID   string
	Text string
	Done bool
}

// ReconcileTasks computes the next task set for a list from the client's
// submitted set. This is a full replace, not a patch:
//
//   - input without an id becomes a new task (fresh id, CreatedAt = now)
//   - input with a known id overwrites Text and Done but keeps the stored
//     id and CreatedAt
//   - input with an unknown id fails the whole call with
//     InvalidReferenceError; nothing is applied
//   - an id named more than once fails the whole call with
//     ErrDuplicateTaskID; ids stay unique in the stored set
//   - any stored task absent from the input is dropped
//
// The result follows input order. Callers persist it atomically together
// with any list-level field changes.
func ReconcileTasks(list *entity.TodoList, incoming []TaskInput, now time.Time) ([]entity.Task, error) {
	existing := list.TaskByID()
	next := make([]entity.Task, 0, len(incoming))
	seen := make(map[string]struct{}, len(incoming))

	for _, in := range incoming {
		if strings.TrimSpace(in.Text) == "" {
			return nil, ErrBlankTaskText
		}
		if in.ID == "" {
			next = append(next, entity.Task{
				ID:        uuid.NewString(),
				ListID:    list.ID,
				Text:      in.Text,
				Done:      in.Done,
				CreatedAt: now,
			})
			continue
		}
		if _, dup := seen[in.ID]; dup {
			return nil, ErrDuplicateTaskID
		}
		seen[in.ID] = struct{}{}
		cur, ok := existing[in.ID]
		if !ok {
			return nil, &InvalidReferenceError{ListID: list.ID, TaskID: in.ID}
		}
		cur.Text = in.Text
		cur.Done = in.Done
		next = append(next, cur)
	}
	return next, nil
}
