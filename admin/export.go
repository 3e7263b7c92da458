package admin

import (
	"fmt"
	"io"
	"time"

	"paperdesk/utils"
)

// CSV export shaping. Header order is fixed so spreadsheets come out
// stable across exports.

var submissionHeaders = []string{
	"id", "userId", "title", "journal", "correspondingAuthor", "authorEmail",
	"affiliation", "status", "paymentStatus", "fileName", "dateSubmitted", "lastUpdated",
}

var paymentHeaders = []string{
	"id", "userId", "title", "paymentStatus", "paymentDate", "paymentAmount",
	"paymentMethod", "transactionId", "dateSubmitted",
}

var userHeaders = []string{
	"id", "firstName", "lastName", "email", "institution", "department", "position", "createdAt",
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

// ExportSubmissionsCSV writes all non-deleted submissions as CSV
func (s *Service) ExportSubmissionsCSV(w io.Writer) error {
	subs, err := s.AllSubmissions()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, []string{
			sub.ID, sub.UserID, sub.Title, sub.Journal, sub.CorrespondingAuthor,
			sub.AuthorEmail, sub.Affiliation, sub.Status, sub.PaymentStatus,
			sub.FileName, formatTime(sub.DateSubmitted), formatTime(sub.LastUpdated),
		})
	}
	return utils.WriteCSV(w, submissionHeaders, rows)
}

// ExportPaymentsCSV writes the payment view of all submissions as CSV
func (s *Service) ExportPaymentsCSV(w io.Writer) error {
	records, err := s.PaymentRecords()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.ID, rec.UserID, rec.Title, rec.PaymentStatus,
			formatTimePtr(rec.PaymentDate), fmt.Sprintf("%g", rec.PaymentAmount),
			rec.PaymentMethod, rec.TransactionID, formatTime(rec.DateSubmitted),
		})
	}
	return utils.WriteCSV(w, paymentHeaders, rows)
}

// ExportUsersCSV writes all non-deleted users as CSV
func (s *Service) ExportUsersCSV(w io.Writer) error {
	users, err := s.AllUsers()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.ID, u.FirstName, u.LastName, u.Email, u.Institution,
			u.Department, u.Position, formatTime(u.CreatedAt),
		})
	}
	return utils.WriteCSV(w, userHeaders, rows)
}
