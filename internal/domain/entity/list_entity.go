package entity

import "time"

// TodoList is the aggregate root for the list domain. It exclusively owns
// its Tasks: they are loaded, persisted and deleted as one unit, and a task
// never exists without its list.
//
// ID, OwnerID and CreatedAt are assigned server-side at creation and never
// change afterwards, regardless of what a client sends.
type TodoList struct {
	ID        string
	OwnerID   string
	Title     string
	Tasks     []Task
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Task belongs to exactly one TodoList, referenced by ListID. Its effective
// owner is the parent list's OwnerID; ownership is never duplicated here.
// CreatedAt is set once when the task is first persisted.
type Task struct {
	ID        string
	ListID    string
	Text      string
	Done      bool
	CreatedAt time.Time
}

// TaskByID indexes the list's tasks by id.
func (l *TodoList) TaskByID() map[string]Task {
	m := make(map[string]Task, len(l.Tasks))
	for _, t := range l.Tasks {
		m[t.ID] = t
	}
	return m
}
