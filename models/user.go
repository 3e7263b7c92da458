package models

import "time"

// User represents a registered author account
type User struct {
	ID                string     `json:"id"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"passwordHash"`
	Institution       string     `json:"institution"`
	Department        string     `json:"department,omitempty"`
	Position          string     `json:"position,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	PasswordChangedAt *time.Time `json:"passwordChangedAt,omitempty"`
	Deleted           bool       `json:"deleted"`
	DeletedAt         *time.Time `json:"deletedAt,omitempty"`
}

// FullName returns the display name used in sessions and exports
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Sanitized returns a copy safe to hand to the HTTP layer
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
