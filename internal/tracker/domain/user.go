package domain

import (
	"strings"
	"time"
)

type User struct {
	ID        string
	Email     string
	FirstName string // optional
	LastName  string // optional
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns "first last" when either name field is present,
// falling back to the email address otherwise.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
