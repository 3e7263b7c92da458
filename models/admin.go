package models

import "time"

// AdminAccount is a privileged portal account. Exactly one bootstrap
// account is auto-created the first time the collection is found empty.
type AdminAccount struct {
	ID                   string     `json:"id"`
	Email                string     `json:"email"`
	PasswordHash         string     `json:"passwordHash"`
	Role                 string     `json:"role"`
	Name                 string     `json:"name"`
	CreatedAt            time.Time  `json:"createdAt"`
	CredentialsChangedAt *time.Time `json:"credentialsChangedAt,omitempty"`
}
