package models

import "time"

// Manuscript review statuses
const (
	StatusUnderReview      = "Under Review"
	StatusAccepted         = "Accepted"
	StatusRejected         = "Rejected"
	StatusPublished        = "Published"
	StatusRevisionRequired = "Revision Required"
)

// Payment statuses
const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
	PaymentFailed  = "Failed"
)

// ValidStatus reports whether s is a known review status
func ValidStatus(s string) bool {
	switch s {
	case StatusUnderReview, StatusAccepted, StatusRejected, StatusPublished, StatusRevisionRequired:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// Submission represents a manuscript record. File bytes are never stored
// here; only metadata and, when the external upload succeeded, a URL.
type Submission struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"userId"`
	Title               string     `json:"title"`
	Abstract            string     `json:"abstract"`
	Keywords            string     `json:"keywords"`
	Journal             string     `json:"journal"`
	CorrespondingAuthor string     `json:"correspondingAuthor"`
	AuthorEmail         string     `json:"authorEmail"`
	CoAuthors           string     `json:"coAuthors,omitempty"`
	Affiliation         string     `json:"affiliation"`
	Status              string     `json:"status"`
	PaymentStatus       string     `json:"paymentStatus"`
	FileName            string     `json:"fileName"`
	FileSize            int64      `json:"fileSize"`
	FileType            string     `json:"fileType"`
	FileURL             string     `json:"fileUrl,omitempty"`
	DateSubmitted       time.Time  `json:"dateSubmitted"`
	LastUpdated         time.Time  `json:"lastUpdated"`
	Deleted             bool       `json:"deleted"`
	DeletedAt           *time.Time `json:"deletedAt,omitempty"`
	PaymentDate         *time.Time `json:"paymentDate,omitempty"`
	PaymentAmount       float64    `json:"paymentAmount,omitempty"`
	PaymentMethod       string     `json:"paymentMethod,omitempty"`
	TransactionID       string     `json:"transactionId,omitempty"`
}

// PaymentRecord is the flat payment view of a submission used by the
// admin payments page and CSV export
type PaymentRecord struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Title         string     `json:"title"`
	PaymentStatus string     `json:"paymentStatus"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	PaymentAmount float64    `json:"paymentAmount"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	TransactionID string     `json:"transactionId,omitempty"`
	DateSubmitted time.Time  `json:"dateSubmitted"`
}

// UserStats aggregates one author's submissions
type UserStats struct {
	Total          int `json:"total"`
	UnderReview    int `json:"underReview"`
	Accepted       int `json:"accepted"`
	Rejected       int `json:"rejected"`
	PendingPayment int `json:"pendingPayment"`
	Paid           int `json:"paidSubmissions"`
}

// StatusBreakdown counts submissions per review status
type StatusBreakdown struct {
	UnderReview int `json:"underReview"`
	Accepted    int `json:"accepted"`
	Rejected    int `json:"rejected"`
	Published   int `json:"published"`
	Revision    int `json:"revision"`
}

// PaymentBreakdown counts submissions per payment status
type PaymentBreakdown struct {
	Pending int `json:"pending"`
	Paid    int `json:"paid"`
	Failed  int `json:"failed"`
}

// Statistics is the admin dashboard aggregate
type Statistics struct {
	TotalUsers        int              `json:"totalUsers"`
	TotalSubmissions  int              `json:"totalSubmissions"`
	StatusBreakdown   StatusBreakdown  `json:"statusBreakdown"`
	PaymentBreakdown  PaymentBreakdown `json:"paymentBreakdown"`
	TotalRevenue      float64          `json:"totalRevenue"`
	RecentSubmissions []Submission     `json:"recentSubmissions"`
}
