package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/taskflow/taskflow-api/internal/domain/entity"
	"github.com/taskflow/taskflow-api/internal/domain/repository"
)

type ListRepository struct {
	mu    sync.RWMutex
	lists map[string]entity.TodoList
}

func NewListRepository() *ListRepository {
	return &ListRepository{lists: make(map[string]entity.TodoList)}
}

func (r *ListRepository) Create(_ context.Context, l *entity.TodoList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[l.ID] = clone(l)
	return nil
}

func (r *ListRepository) GetByID(_ context.Context, id string) (*entity.TodoList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.lists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := clone(&l)
	return &out, nil
}

func (r *ListRepository) ListByOwner(_ context.Context, ownerID string) ([]*entity.TodoList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*entity.TodoList{}
	for _, l := range r.lists {
		if l.OwnerID != ownerID {
			continue
		}
		c := clone(&l)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ListRepository) Replace(_ context.Context, l *entity.TodoList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lists[l.ID]; !ok {
		return repository.ErrNotFound
	}
	r.lists[l.ID] = clone(l)
	return nil
}

func (r *ListRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lists[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.lists, id)
	return nil
}

// clone copies the aggregate so callers never share task slices with the store.
func clone(l *entity.TodoList) entity.TodoList {
	c := *l
	c.Tasks = make([]entity.Task, len(l.Tasks))
	copy(c.Tasks, l.Tasks)
	return c
}

var _ repository.ListRepository = (*ListRepository)(nil)
