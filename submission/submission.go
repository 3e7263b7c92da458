package submission

import (
	"context"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"paperdesk/auth"
	"paperdesk/models"
	"paperdesk/storage"
	"paperdesk/upload"
	"paperdesk/utils"
)

// MaxFileSize is the manuscript upload limit
const MaxFileSize = 50 * 1024 * 1024 // 50MB

// allowedTypes are the accepted manuscript MIME types
var allowedTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// CreateInput carries the submission form fields
type CreateInput struct {
	Title               string `json:"title"`
	Abstract            string `json:"abstract"`
	Keywords            string `json:"keywords"`
	Journal             string `json:"journal"`
	CorrespondingAuthor string `json:"correspondingAuthor"`
	AuthorEmail         string `json:"authorEmail"`
	CoAuthors           string `json:"coAuthors"`
	Affiliation         string `json:"affiliation"`
}

// Service implements the author-facing manuscript operations
type Service struct {
	store    *storage.Store
	auth     *auth.Manager
	uploader upload.Uploader
}

// NewService creates a submission service
func NewService(store *storage.Store, authMgr *auth.Manager, uploader upload.Uploader) *Service {
	return &Service{store: store, auth: authMgr, uploader: uploader}
}

// GenerateID builds a submission id: SUB- plus a base36 timestamp and a
// random 5-character suffix. Collision probability is negligible but not
// zero; uniqueness is not enforced by the store.
func GenerateID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := strings.ToUpper(strconv.FormatInt(rand.Int63n(60466176), 36)) // 36^5
	for len(suffix) < 5 {
		suffix = "0" + suffix
	}
	return "SUB-" + ts + "-" + suffix
}

// ValidateFile checks presence, size and type. Pure validation, no side
// effects.
func ValidateFile(meta *upload.FileMeta) error {
	if meta == nil || meta.Name == "" {
		return utils.NoFileError()
	}
	if meta.Size > MaxFileSize {
		return utils.FileTooLargeError(meta.Size, MaxFileSize)
	}
	if !allowedTypes[meta.ContentType] {
		return utils.UnsupportedTypeError(meta.ContentType)
	}
	return nil
}

// Create validates and persists a new manuscript for the current session
// owner. The external upload is best effort: its failure is logged and
// never aborts local persistence.
func (s *Service) Create(ctx context.Context, input CreateInput, meta *upload.FileMeta, file io.Reader) (*models.Submission, error) {
	session, err := s.auth.CurrentSession()
	if err != nil {
		return nil, utils.UnauthenticatedError()
	}

	if err := ValidateFile(meta); err != nil {
		return nil, err
	}

	now := time.Now()
	sub := models.Submission{
		ID:                  GenerateID(),
		UserID:              session.SubjectID,
		Title:               utils.Escape(input.Title),
		Abstract:            utils.Escape(input.Abstract),
		Keywords:            utils.Escape(input.Keywords),
		Journal:             utils.Escape(input.Journal),
		CorrespondingAuthor: utils.Escape(input.CorrespondingAuthor),
		AuthorEmail:         utils.Escape(input.AuthorEmail),
		CoAuthors:           utils.Escape(input.CoAuthors),
		Affiliation:         utils.Escape(input.Affiliation),
		Status:              models.StatusUnderReview,
		PaymentStatus:       models.PaymentPending,
		FileName:            meta.Name,
		FileSize:            meta.Size,
		FileType:            meta.ContentType,
		DateSubmitted:       now,
		LastUpdated:         now,
		Deleted:             false,
	}

	result, err := s.uploader.SubmitManuscript(ctx, &sub, *meta, file)
	if err != nil {
		utils.Log.Warn("External manuscript upload failed for %s: %v", sub.ID, err)
	} else if result != nil && result.FileUpload.FileURL != "" {
		sub.FileURL = result.FileUpload.FileURL
	}

	subs, err := s.store.GetSubmissions()
	if err != nil {
		return nil, err
	}
	subs = append(subs, sub)
	if err := s.store.SetSubmissions(subs); err != nil {
		return nil, err
	}

	utils.Log.Info("Submission %s created by %s", sub.ID, session.Email)
	return &sub, nil
}

// UserSubmissions returns the current user's non-deleted submissions in
// storage order
func (s *Service) UserSubmissions() ([]models.Submission, error) {
	session, err := s.auth.CurrentSession()
	if err != nil {
		return nil, err
	}

	subs, err := s.store.GetSubmissions()
	if err != nil {
		return nil, err
	}

	var out []models.Submission
	for _, sub := range subs {
		if sub.UserID == session.SubjectID && !sub.Deleted {
			out = append(out, sub)
		}
	}
	return out, nil
}

// ByID returns the non-deleted submission with the given id
func (s *Service) ByID(id string) (*models.Submission, error) {
	subs, err := s.store.GetSubmissions()
	if err != nil {
		return nil, err
	}

	for i := range subs {
		if subs[i].ID == id && !subs[i].Deleted {
			return &subs[i], nil
		}
	}
	return nil, utils.NotFoundError("Submission not found").WithContext("id", id)
}

// patch merge-patches the submission with the given id and stamps
// lastUpdated
func patch(store *storage.Store, id string, apply func(*models.Submission)) (*models.Submission, error) {
	subs, err := store.GetSubmissions()
	if err != nil {
		return nil, err
	}

	for i := range subs {
		if subs[i].ID == id {
			apply(&subs[i])
			subs[i].LastUpdated = time.Now()
			if err := store.SetSubmissions(subs); err != nil {
				return nil, err
			}
			return &subs[i], nil
		}
	}
	return nil, utils.NotFoundError("Submission not found").WithContext("id", id)
}

// UpdateStatus sets the review status. Any status may follow any other;
// there is no transition graph.
func (s *Service) UpdateStatus(id, status string) (*models.Submission, error) {
	return patch(s.store, id, func(sub *models.Submission) {
		sub.Status = status
	})
}

// UpdatePaymentStatus sets the payment status
func (s *Service) UpdatePaymentStatus(id, paymentStatus string) (*models.Submission, error) {
	return patch(s.store, id, func(sub *models.Submission) {
		sub.PaymentStatus = paymentStatus
	})
}

// Stats aggregates the current user's submissions into status and
// payment buckets
func (s *Service) Stats() (*models.UserStats, error) {
	subs, err := s.UserSubmissions()
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{Total: len(subs)}
	for _, sub := range subs {
		switch sub.Status {
		case models.StatusUnderReview:
			stats.UnderReview++
		case models.StatusAccepted:
			stats.Accepted++
		case models.StatusRejected:
			stats.Rejected++
		}
		switch sub.PaymentStatus {
		case models.PaymentPending:
			stats.PendingPayment++
		case models.PaymentPaid:
			stats.Paid++
		}
	}
	return stats, nil
}
