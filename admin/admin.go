package admin

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"paperdesk/auth"
	"paperdesk/models"
	"paperdesk/storage"
	"paperdesk/utils"
)

// PaymentDetails carries the optional fields recorded when a submission
// is marked Paid
type PaymentDetails struct {
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	TransactionID string  `json:"transactionId"`
}

// Service implements the privileged operations over users and
// submissions. Every mutation appends an audit entry attributed to the
// acting admin session.
type Service struct {
	store *storage.Store
	auth  *auth.AdminManager
}

// NewService creates an admin service
func NewService(store *storage.Store, authMgr *auth.AdminManager) *Service {
	return &Service{store: store, auth: authMgr}
}

// AllSubmissions returns every non-deleted submission
func (s *Service) AllSubmissions() ([]models.Submission, error) {
	subs, err := s.store.GetSubmissions()
	if err != nil {
		return nil, err
	}

	var out []models.Submission
	for _, sub := range subs {
		if !sub.Deleted {
			out = append(out, sub)
		}
	}
	return out, nil
}

// AllUsers returns every non-deleted user
func (s *Service) AllUsers() ([]models.User, error) {
	users, err := s.store.GetUsers()
	if err != nil {
		return nil, err
	}

	var out []models.User
	for _, u := range users {
		if !u.Deleted {
			out = append(out, u)
		}
	}
	return out, nil
}

// UpdateSubmissionStatus merge-patches the review status and records a
// status_update audit entry
func (s *Service) UpdateSubmissionStatus(id, status string) (*models.Submission, error) {
	sub, err := s.patchSubmission(id, func(sub *models.Submission) {
		sub.Status = status
	})
	if err != nil {
		return nil, err
	}

	s.logAction(models.ActionStatusUpdate, id, map[string]interface{}{"status": status})
	return sub, nil
}

// UpdatePaymentStatus merge-patches the payment status and records a
// payment_update audit entry. Marking Paid stamps the payment date,
// amount (default 0), method (default "Unknown") and transaction id.
func (s *Service) UpdatePaymentStatus(id, paymentStatus string, details *PaymentDetails) (*models.Submission, error) {
	sub, err := s.patchSubmission(id, func(sub *models.Submission) {
		sub.PaymentStatus = paymentStatus

		if paymentStatus == models.PaymentPaid {
			now := time.Now()
			sub.PaymentDate = &now
			sub.PaymentAmount = 0
			sub.PaymentMethod = "Unknown"
			sub.TransactionID = ""
			if details != nil {
				sub.PaymentAmount = details.Amount
				if details.Method != "" {
					sub.PaymentMethod = details.Method
				}
				sub.TransactionID = details.TransactionID
			}
		}
	})
	if err != nil {
		return nil, err
	}

	logDetails := map[string]interface{}{"paymentStatus": paymentStatus}
	if details != nil {
		logDetails["amount"] = details.Amount
		logDetails["method"] = details.Method
		logDetails["transactionId"] = details.TransactionID
	}
	s.logAction(models.ActionPaymentUpdate, id, logDetails)
	return sub, nil
}

// DeleteSubmission soft-deletes one submission and records the action
func (s *Service) DeleteSubmission(id string) error {
	subs, err := s.store.GetSubmissions()
	if err != nil {
		return err
	}

	idx := -1
	for i := range subs {
		if subs[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return utils.NotFoundError("Submission not found").WithContext("id", id)
	}

	now := time.Now()
	subs[idx].Deleted = true
	subs[idx].DeletedAt = &now
	if err := s.store.SetSubmissions(subs); err != nil {
		return err
	}

	s.logAction(models.ActionDeleteSubmission, id, map[string]interface{}{})
	return nil
}

// DeleteUser soft-deletes a user and cascades the soft delete to every
// submission the user owns
func (s *Service) DeleteUser(id string) error {
	users, err := s.store.GetUsers()
	if err != nil {
		return err
	}

	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return utils.NotFoundError("User not found").WithContext("id", id)
	}

	now := time.Now()
	users[idx].Deleted = true
	users[idx].DeletedAt = &now
	if err := s.store.SetUsers(users); err != nil {
		return err
	}

	subs, err := s.store.GetSubmissions()
	if err != nil {
		return err
	}
	changed := false
	for i := range subs {
		if subs[i].UserID == id && !subs[i].Deleted {
			subs[i].Deleted = true
			subs[i].DeletedAt = &now
			changed = true
		}
	}
	if changed {
		if err := s.store.SetSubmissions(subs); err != nil {
			return err
		}
	}

	s.logAction(models.ActionDeleteUser, id, map[string]interface{}{})
	return nil
}

// PaymentRecords returns the flat payment view of all non-deleted
// submissions
func (s *Service) PaymentRecords() ([]models.PaymentRecord, error) {
	subs, err := s.AllSubmissions()
	if err != nil {
		return nil, err
	}

	records := make([]models.PaymentRecord, 0, len(subs))
	for _, sub := range subs {
		records = append(records, models.PaymentRecord{
			ID:            sub.ID,
			UserID:        sub.UserID,
			Title:         sub.Title,
			PaymentStatus: sub.PaymentStatus,
			PaymentDate:   sub.PaymentDate,
			PaymentAmount: sub.PaymentAmount,
			PaymentMethod: sub.PaymentMethod,
			TransactionID: sub.TransactionID,
			DateSubmitted: sub.DateSubmitted,
		})
	}
	return records, nil
}

// Statistics computes the admin dashboard aggregate: totals, breakdowns,
// revenue over Paid submissions and the 10 most recent records
func (s *Service) Statistics() (*models.Statistics, error) {
	subs, err := s.AllSubmissions()
	if err != nil {
		return nil, err
	}
	users, err := s.AllUsers()
	if err != nil {
		return nil, err
	}

	stats := &models.Statistics{
		TotalUsers:       len(users),
		TotalSubmissions: len(subs),
	}

	for _, sub := range subs {
		switch sub.Status {
		case models.StatusUnderReview:
			stats.StatusBreakdown.UnderReview++
		case models.StatusAccepted:
			stats.StatusBreakdown.Accepted++
		case models.StatusRejected:
			stats.StatusBreakdown.Rejected++
		case models.StatusPublished:
			stats.StatusBreakdown.Published++
		case models.StatusRevisionRequired:
			stats.StatusBreakdown.Revision++
		}
		switch sub.PaymentStatus {
		case models.PaymentPending:
			stats.PaymentBreakdown.Pending++
		case models.PaymentPaid:
			stats.PaymentBreakdown.Paid++
			stats.TotalRevenue += sub.PaymentAmount
		case models.PaymentFailed:
			stats.PaymentBreakdown.Failed++
		}
	}

	recent := make([]models.Submission, len(subs))
	copy(recent, subs)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].DateSubmitted.After(recent[j].DateSubmitted)
	})
	if len(recent) > 10 {
		recent = recent[:10]
	}
	stats.RecentSubmissions = recent

	return stats, nil
}

// Search matches the query case-insensitively against id, title, author
// email and corresponding author, returning hits in storage order
func (s *Service) Search(query string) ([]models.Submission, error) {
	subs, err := s.AllSubmissions()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var out []models.Submission
	for _, sub := range subs {
		if strings.Contains(strings.ToLower(sub.ID), q) ||
			strings.Contains(strings.ToLower(sub.Title), q) ||
			strings.Contains(strings.ToLower(sub.AuthorEmail), q) ||
			strings.Contains(strings.ToLower(sub.CorrespondingAuthor), q) {
			out = append(out, sub)
		}
	}
	return out, nil
}

// ActionLogs returns the most recent limit entries, newest first
func (s *Service) ActionLogs(limit int) ([]models.ActionLog, error) {
	logs, err := s.store.GetActionLogs()
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}

	out := make([]models.ActionLog, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		out = append(out, logs[i])
	}
	return out, nil
}

// patchSubmission merge-patches the submission with the given id and
// stamps lastUpdated
func (s *Service) patchSubmission(id string, apply func(*models.Submission)) (*models.Submission, error) {
	subs, err := s.store.GetSubmissions()
	if err != nil {
		return nil, err
	}

	for i := range subs {
		if subs[i].ID == id {
			apply(&subs[i])
			subs[i].LastUpdated = time.Now()
			if err := s.store.SetSubmissions(subs); err != nil {
				return nil, err
			}
			return &subs[i], nil
		}
	}
	return nil, utils.NotFoundError("Submission not found").WithContext("id", id)
}

// logAction appends an audit entry attributed to the current admin
// session, evicting the oldest entries past the cap. Audit failures are
// logged but never fail the operation they describe.
func (s *Service) logAction(action, targetID string, details map[string]interface{}) {
	logs, err := s.store.GetActionLogs()
	if err != nil {
		utils.Log.Error("Failed to read action logs: %v", err)
		return
	}

	adminID, adminEmail := "unknown", "unknown"
	if session, err := s.auth.CurrentSession(); err == nil {
		adminID = session.SubjectID
		adminEmail = session.Email
	}

	logs = append(logs, models.ActionLog{
		ID:         "LOG-" + uuid.New().String(),
		AdminID:    adminID,
		AdminEmail: adminEmail,
		Action:     action,
		TargetID:   targetID,
		Details:    details,
		Timestamp:  time.Now(),
	})

	if len(logs) > models.MaxActionLogs {
		logs = logs[len(logs)-models.MaxActionLogs:]
	}

	if err := s.store.SetActionLogs(logs); err != nil {
		utils.Log.Error("Failed to write action log for %s on %s: %v", action, targetID, err)
	}
}
