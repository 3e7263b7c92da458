package models

import "time"

// Session roles
const (
	RoleAuthor = "author"
	RoleAdmin  = "admin"
)

// Session is a time-bounded proof of a prior login. One user session and
// one admin session exist at most per store; a new login overwrites the
// previous one.
type Session struct {
	SubjectID   string    `json:"subjectId"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	FullName    string    `json:"fullName,omitempty"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	Institution string    `json:"institution,omitempty"`
	Department  string    `json:"department,omitempty"`
	Position    string    `json:"position,omitempty"`
	LoginTime   time.Time `json:"loginTime"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Expired reports whether the session has passed its expiry
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
