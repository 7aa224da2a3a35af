// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"
)

// User is an account as the backend reports it. The signed-in user is the
// client's Session; admin screens list the rest.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Contact   *int64    `json:"contact,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	IsBlocked bool      `json:"isblocked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Token is the bearer token issued at login, if the backend issues one.
	Token string `json:"token,omitempty"`
}

// Clone returns a copy that shares no memory with u
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Contact != nil {
		contact := *u.Contact
		c.Contact = &contact
	}
	return &c
}

// GetDisplayName returns the username, falling back to the email address
func (u User) GetDisplayName() string {
	if name := strings.TrimSpace(u.Username); name != "" {
		return name
	}
	return u.Email
}

// Role names the account kind for display
func (u User) Role() string {
	if u.IsAdmin {
		return "Admin"
	}
	return "User"
}

// StatusLabel names the blocked state for display
func (u User) StatusLabel() string {
	if u.IsBlocked {
		return "Blocked"
	}
	return "Active"
}
