package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/taskflow/taskflow-api/internal/domain/entity"
	repo "github.com/taskflow/taskflow-api/internal/domain/repository"
)

// ListService orchestrates CRUD on TodoList aggregates. Every operation on
// an existing list re-runs the ownership check against the freshly loaded
// aggregate before anything is read back or mutated.
type ListService struct {
	Lists  repo.ListRepository
	Logger *logrus.Logger
}

func NewListService(lists repo.ListRepository, logger *logrus.Logger) *ListService {
	return &ListService{Lists: lists, Logger: logger}
}

type CreateListInput struct {
	Title string
	Tasks []TaskInput
}

type UpdateListInput struct {
	Title string
	Tasks []TaskInput
}

// Create persists a new list for ownerID. ID, OwnerID and CreatedAt are
// assigned here; every submitted task is treated as a creation, ids carried
// on the input are ignored.
func (s *ListService) Create(ctx context.Context, ownerID string, in CreateListInput) (*entity.TodoList, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrBlankTitle
	}
	now := time.Now().UTC()
	l := &entity.TodoList{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     in.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, t := range in.Tasks {
		if strings.TrimSpace(t.Text) == "" {
			return nil, ErrBlankTaskText
		}
		l.Tasks = append(l.Tasks, entity.Task{
			ID:        uuid.NewString(),
			ListID:    l.ID,
			Text:      t.Text,
			Done:      t.Done,
			CreatedAt: now,
		})
	}
	if err := s.Lists.Create(ctx, l); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("owner_id", ownerID).Error("create list failed")
		}
		return nil, err
	}
	return l, nil
}

// Get returns the list when it exists and belongs to actorID.
func (s *ListService) Get(ctx context.Context, actorID, listID string) (*entity.TodoList, error) {
	l, err := s.load(ctx, actorID, listID)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListByOwner returns every list owned by ownerID.
func (s *ListService) ListByOwner(ctx context.Context, ownerID string) ([]*entity.TodoList, error) {
	return s.Lists.ListByOwner(ctx, ownerID)
}

// Update overwrites the title and reconciles the task set in one transaction.
// On any failure, InvalidReferenceError included, the stored aggregate is
// left exactly as it was.
func (s *ListService) Update(ctx context.Context, actorID, listID string, in UpdateListInput) (*entity.TodoList, error) {
	l, err := s.load(ctx, actorID, listID)
	if err != nil {
		return nil, err
	}
	// existence and ownership answer first; input validation only after
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrBlankTitle
	}
	next, err := ReconcileTasks(l, in.Tasks, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	l.Title = in.Title
	l.Tasks = next
	l.UpdatedAt = time.Now().UTC()
	if err := s.Lists.Replace(ctx, l); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("list_id", listID).Error("replace list failed")
		}
		return nil, err
	}
	return l, nil
}

// Delete removes the list and, cascading, all of its tasks.
func (s *ListService) Delete(ctx context.Context, actorID, listID string) error {
	if _, err := s.load(ctx, actorID, listID); err != nil {
		return err
	}
	return s.Lists.Delete(ctx, listID)
}

// UpdateTask replaces one task's text and done flag, leaving the rest of the
// list untouched. It builds a full-replacement payload from the current task
// set and goes through the same reconciliation path as a list update.
func (s *ListService) UpdateTask(ctx context.Context, actorID, listID, taskID, text string, done bool) (*entity.TodoList, error) {
	l, err := s.load(ctx, actorID, listID)
	if err != nil {
		return nil, err
	}
	in, found := replaceTask(l, taskID, func(t TaskInput) TaskInput {
		t.Text = text
		t.Done = done
		return t
	})
	if !found {
		return nil, &InvalidReferenceError{ListID: listID, TaskID: taskID}
	}
	return s.Update(ctx, actorID, listID, UpdateListInput{Title: l.Title, Tasks: in})
}

// PatchTask applies only the provided fields of one task.
func (s *ListService) PatchTask(ctx context.Context, actorID, listID, taskID string, text *string, done *bool) (*entity.TodoList, error) {
	l, err := s.load(ctx, actorID, listID)
	if err != nil {
		return nil, err
	}
	in, found := replaceTask(l, taskID, func(t TaskInput) TaskInput {
		if text != nil {
			t.Text = *text
		}
		if done != nil {
			t.Done = *done
		}
		return t
	})
	if !found {
		return nil, &InvalidReferenceError{ListID: listID, TaskID: taskID}
	}
	return s.Update(ctx, actorID, listID, UpdateListInput{Title: l.Title, Tasks: in})
}

// DeleteTask removes one task by resubmitting the list without it.
func (s *ListService) DeleteTask(ctx context.Context, actorID, listID, taskID string) (*entity.TodoList, error) {
	l, err := s.load(ctx, actorID, listID)
	if err != nil {
		return nil, err
	}
	in := make([]TaskInput, 0, len(l.Tasks))
	found := false
	for _, t := range l.Tasks {
		if t.ID == taskID {
			found = true
			continue
		}
		in = append(in, TaskInput{ID: t.ID, Text: t.Text, Done: t.Done})
	}
	if !found {
		return nil, &InvalidReferenceError{ListID: listID, TaskID: taskID}
	}
	return s.Update(ctx, actorID, listID, UpdateListInput{Title: l.Title, Tasks: in})
}

// load fetches the aggregate and runs the ownership check against it.
func (s *ListService) load(ctx context.Context, actorID, listID string) (*entity.TodoList, error) {
	l, err := s.Lists.GetByID(ctx, listID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	exists := err == nil && l != nil
	ownerID := ""
	if exists {
		ownerID = l.OwnerID
	}
	if accessErr := CheckOwnership(actorID, ownerID, exists).Err(); accessErr != nil {
		return nil, accessErr
	}
	return l, nil
}

func replaceTask(l *entity.TodoList, taskID string, apply func(TaskInput) TaskInput) ([]TaskInput, bool) {
	in := make([]TaskInput, 0, len(l.Tasks))
	found := false
	for _, t := range l.Tasks {
		ti := TaskInput{ID: t.ID, Text: t.Text, Done: t.Done}
		if t.ID == taskID {
			ti = apply(ti)
			found = true
		}
		in = append(in, ti)
	}
	return in, found
}
