package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskflow/taskflow-api/internal/domain/entity"
	"github.com/taskflow/taskflow-api/internal/domain/repository"
)

// ListRepository persists TodoList aggregates. All multi-row writes run in a
// single transaction so a list and its tasks are never observable half
// committed. Task row order is kept in a position column mirroring the
// aggregate's slice order.
type ListRepository struct {
	pool *pgxpool.Pool
}

func NewListRepository(pool *pgxpool.Pool) *ListRepository {
	return &ListRepository{pool: pool}
}

func (r *ListRepository) Create(ctx context.Context, l *entity.TodoList) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO lists (id, owner_id, title, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, l.ID, l.OwnerID, l.Title, l.CreatedAt, l.UpdatedAt)
		if err != nil {
			return err
		}
		return insertTasks(ctx, tx, l)
	})
}

func (r *ListRepository) GetByID(ctx context.Context, id string) (*entity.TodoList, error) {
	l := &entity.TodoList{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, created_at, updated_at
		FROM lists
		WHERE id = $1
	`, id)
	if err := row.Scan(&l.ID, &l.OwnerID, &l.Title, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	tasks, err := r.tasksFor(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	l.Tasks = tasks
	return l, nil
}

func (r *ListRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.TodoList, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, title, created_at, updated_at
		FROM lists
		WHERE owner_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []*entity.TodoList{}
	for rows.Next() {
		l := &entity.TodoList{}
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Title, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, l := range lists {
		tasks, err := r.tasksFor(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		l.Tasks = tasks
	}
	return lists, nil
}

// Replace overwrites the list row and swaps its entire task set for l.Tasks,
// all in one transaction.
func (r *ListRepository) Replace(ctx context.Context, l *entity.TodoList) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `
			UPDATE lists
			SET title = $1, updated_at = $2
			WHERE id = $3
		`, l.Title, l.UpdatedAt, l.ID)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE list_id = $1`, l.ID); err != nil {
			return err
		}
		return insertTasks(ctx, tx, l)
	})
}

func (r *ListRepository) Delete(ctx context.Context, id string) error {
	// tasks go with the list via ON DELETE CASCADE
	res, err := r.pool.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ListRepository) tasksFor(ctx context.Context, listID string) ([]entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, list_id, text, done, created_at
		FROM tasks
		WHERE list_id = $1
		ORDER BY position
	`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []entity.Task
	for rows.Next() {
		t := entity.Task{}
		if err := rows.Scan(&t.ID, &t.ListID, &t.Text, &t.Done, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func insertTasks(ctx context.Context, tx pgx.Tx, l *entity.TodoList) error {
	if len(l.Tasks) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for pos, t := range l.Tasks {
		batch.Queue(`
			INSERT INTO tasks (id, list_id, text, done, position, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, t.ID, l.ID, t.Text, t.Done, pos, t.CreatedAt)
	}
	return tx.SendBatch(ctx, batch).Close()
}

var _ repository.ListRepository = (*ListRepository)(nil)
