package models

import "time"

// Admin audit actions
const (
	ActionStatusUpdate     = "status_update"
	ActionPaymentUpdate    = "payment_update"
	ActionDeleteSubmission = "delete_submission"
	ActionDeleteUser       = "delete_user"
)

// MaxActionLogs caps the audit trail; the oldest entries are evicted first
const MaxActionLogs = 1000

// ActionLog is one append-only audit entry for a privileged operation
type ActionLog struct {
	ID         string                 `json:"id"`
	AdminID    string                 `json:"adminId"`
	AdminEmail string                 `json:"adminEmail"`
	Action     string                 `json:"action"`
	TargetID   string                 `json:"targetId"`
	Details    map[string]interface{} `json:"details"`
	Timestamp  time.Time              `json:"timestamp"`
}
