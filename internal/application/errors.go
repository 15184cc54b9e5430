package application

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrListNotFound       = errors.New("list not found")
	ErrForbidden          = errors.New("forbidden")
	ErrBlankTitle         = errors.New("title must not be blank")
	ErrBlankTaskText      = errors.New("task text must not be blank")
	ErrDuplicateTaskID    = errors.New("task id appears more than once")
	ErrIDMismatch         = errors.New("body id does not match path id")
)

// InvalidReferenceError reports an update payload that names a task id not
// belonging to the target list. The whole reconciliation is rejected when
// this is returned; nothing is persisted.
type InvalidReferenceError struct {
	ListID string
	TaskID string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("task %q does not belong to list %q", e.TaskID, e.ListID)
}
