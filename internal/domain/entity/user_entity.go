package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash, never the raw value.
//
// ID and Email are immutable after registration.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
