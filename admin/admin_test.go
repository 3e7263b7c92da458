package admin

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"paperdesk/auth"
	"paperdesk/models"
	"paperdesk/storage"
	"paperdesk/utils"
)

func newTestService(t *testing.T) (*Service, *storage.Store) {
	t.Helper()
	store, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	mgr := auth.NewAdminManager(store)
	require.NoError(t, mgr.EnsureBootstrap())
	_, err = mgr.Login(auth.DefaultAdminEmail, auth.DefaultAdminPassword)
	require.NoError(t, err)

	return NewService(store, mgr), store
}

func seedSubmissions(t *testing.T, store *storage.Store, subs []models.Submission) {
	t.Helper()
	require.NoError(t, store.SetSubmissions(subs))
}

func TestAllSubmissionsExcludesDeleted(t *testing.T) {
	svc, store := newTestService(t)
	seedSubmissions(t, store, []models.Submission{
		{ID: "SUB-A"},
		{ID: "SUB-B", Deleted: true},
		{ID: "SUB-C"},
	})

	subs, err := svc.AllSubmissions()
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, "SUB-A", subs[0].ID)
	require.Equal(t, "SUB-C", subs[1].ID)
}

func TestAllUsersExcludesDeleted(t *testing.T) {
	svc, store := newTestService(t)
	require.NoError(t, store.SetUsers([]models.User{
		{ID: "u1"},
		{ID: "u2", Deleted: true},
	}))

	users, err := svc.AllUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "u1", users[0].ID)
}

func TestUpdateSubmissionStatusLogsAction(t *testing.T) {
	svc, store := newTestService(t)
	seedSubmissions(t, store, []models.Submission{{ID: "SUB-A", Status: models.StatusUnderReview}})

	sub, err := svc.UpdateSubmissionStatus("SUB-A", models.StatusAccepted)
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, sub.Status)

	logs, err := svc.ActionLogs(10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, models.ActionStatusUpdate, logs[0].Action)
	require.Equal(t, "SUB-A", logs[0].TargetID)
	require.Equal(t, auth.DefaultAdminEmail, logs[0].AdminEmail)
}

func TestUpdatePaymentStatusPaidStampsDetails(t *testing.T) {
	svc, store := newTestService(t)
	seedSubmissions(t, store, []models.Submission{{ID: "SUB-A", PaymentStatus: models.PaymentPending}})

	sub, err := svc.UpdatePaymentStatus("SUB-A", models.PaymentPaid, &PaymentDetails{
		Amount:        5000,
		Method:        "UPI",
		TransactionID: "TXN-1",
	})
	require.NoError(t, err)
	require.Equal(t, models.PaymentPaid, sub.PaymentStatus)
	require.NotNil(t, sub.PaymentDate)
	require.Equal(t, float64(5000), sub.PaymentAmount)
	require.Equal(t, "UPI", sub.PaymentMethod)
	require.Equal(t, "TXN-1", sub.TransactionID)

	logs, err := svc.ActionLogs(1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, models.ActionPaymentUpdate, logs[0].Action)
}

func TestUpdatePaymentStatusPaidDefaults(t *testing.T) {
	svc, store := newTestService(t)
	seedSubmissions(t, store, []models.Submission{{ID: "SUB-A", PaymentStatus: models.PaymentPending}})

	sub, err := svc.UpdatePaymentStatus("SUB-A", models.PaymentPaid, nil)
	require.NoError(t, err)
	require.Equal(t, float64(0), sub.PaymentAmount)
	require.Equal(t, "Unknown", sub.PaymentMethod)
	require.NotNil(t, sub.PaymentDate)
}

func TestUpdatePaymentStatusNonPaidLeavesDetails(t *testing.T) {
	svc, store := newTestService(t)
	seedSubmissions(t, store, []models.Submission{{ID: "SUB-A", PaymentStatus: models.PaymentPending}})

	sub, err := svc.UpdatePaymentStatus("SUB-A", models.PaymentFailed, nil)
	require.NoError(t, err)
	require.Equal(t, models.PaymentFailed, sub.PaymentStatus)
	require.Nil(t, sub.PaymentDate)
}

func TestDeleteSubmission(t *testing.T) {
	svc, store := newTestService(t)
	seedSubmissions(t, store, []models.Submission{{ID: "SUB-A"}})

	require.NoError(t, svc.DeleteSubmission("SUB-A"))

	subs, err := svc.AllSubmissions()
	require.NoError(t, err)
	require.Empty(t, subs)

	// Record is kept, only flagged
	raw, err := store.GetSubmissions()
	require.NoError(t, err)
	require.Len(t, raw, 1)
	require.True(t, raw[0].Deleted)
	require.NotNil(t, raw[0].DeletedAt)

	logs, err := svc.ActionLogs(1)
	require.NoError(t, err)
	require.Equal(t, models.ActionDeleteSubmission, logs[0].Action)

	require.True(t, utils.IsKind(svc.DeleteSubmission("SUB-X"), utils.KindNotFound))
}

func TestDeleteUserCascades(t *testing.T) {
	svc, store := newTestService(t)
	require.NoError(t, store.SetUsers([]models.User{{ID: "u1"}, {ID: "u2"}}))
	seedSubmissions(t, store, []models.Submission{
		{ID: "SUB-A", UserID: "u1"},
		{ID: "SUB-B", UserID: "u2"},
		{ID: "SUB-C", UserID: "u1"},
	})

	require.NoError(t, svc.DeleteUser("u1"))

	users, err := svc.AllUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "u2", users[0].ID)

	subs, err := svc.AllSubmissions()
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, "SUB-B", subs[0].ID)

	logs, err := svc.ActionLogs(1)
	require.NoError(t, err)
	require.Equal(t, models.ActionDeleteUser, logs[0].Action)
	require.Equal(t, "u1", logs[0].TargetID)
}

func TestPaymentRecords(t *testing.T) {
	svc, store := newTestService(t)
	paid := time.Now()
	seedSubmissions(t, store, []models.Submission{
		{ID: "SUB-A", UserID: "u1", Title: "Paper", PaymentStatus: models.PaymentPaid, PaymentDate: &paid, PaymentAmount: 5000, PaymentMethod: "UPI"},
		{ID: "SUB-B", UserID: "u2", PaymentStatus: models.PaymentPending},
		{ID: "SUB-C", UserID: "u1", Deleted: true},
	})

	records, err := svc.PaymentRecords()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, models.PaymentPaid, records[0].PaymentStatus)
	require.Equal(t, float64(5000), records[0].PaymentAmount)
}

func TestStatisticsRevenueAndBreakdowns(t *testing.T) {
	svc, store := newTestService(t)
	require.NoError(t, store.SetUsers([]models.User{{ID: "u1"}, {ID: "u2"}, {ID: "u3", Deleted: true}}))
	seedSubmissions(t, store, []models.Submission{
		{ID: "S1", Status: models.StatusUnderReview, PaymentStatus: models.PaymentPending},
		{ID: "S2", Status: models.StatusAccepted, PaymentStatus: models.PaymentPaid, PaymentAmount: 5000},
		{ID: "S3", Status: models.StatusPublished, PaymentStatus: models.PaymentPaid, PaymentAmount: 2500},
		{ID: "S4", Status: models.StatusRevisionRequired, PaymentStatus: models.PaymentFailed},
		// Deleted records never count, even when Paid
		{ID: "S5", Status: models.StatusAccepted, PaymentStatus: models.PaymentPaid, PaymentAmount: 9999, Deleted: true},
	})

	stats, err := svc.Statistics()
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalUsers)
	require.Equal(t, 4, stats.TotalSubmissions)
	require.Equal(t, 1, stats.StatusBreakdown.UnderReview)
	require.Equal(t, 1, stats.StatusBreakdown.Accepted)
	require.Equal(t, 1, stats.StatusBreakdown.Published)
	require.Equal(t, 1, stats.StatusBreakdown.Revision)
	require.Equal(t, 1, stats.PaymentBreakdown.Pending)
	require.Equal(t, 2, stats.PaymentBreakdown.Paid)
	require.Equal(t, 1, stats.PaymentBreakdown.Failed)
	require.Equal(t, float64(7500), stats.TotalRevenue)
}

func TestStatisticsRecentSubmissions(t *testing.T) {
	svc, store := newTestService(t)

	base := time.Now().Add(-24 * time.Hour)
	subs := make([]models.Submission, 0, 15)
	for i := 0; i < 15; i++ {
		subs = append(subs, models.Submission{
			ID:            fmt.Sprintf("S%02d", i),
			DateSubmitted: base.Add(time.Duration(i) * time.Minute),
		})
	}
	seedSubmissions(t, store, subs)

	stats, err := svc.Statistics()
	require.NoError(t, err)
	require.Len(t, stats.RecentSubmissions, 10)
	require.Equal(t, "S14", stats.RecentSubmissions[0].ID)
	require.Equal(t, "S05", stats.RecentSubmissions[9].ID)
}

func TestSearch(t *testing.T) {
	svc, store := newTestService(t)
	seedSubmissions(t, store, []models.Submission{
		{ID: "SUB-ALPHA", Title: "Basin Modelling", AuthorEmail: "ada@example.org", CorrespondingAuthor: "Ada Lovelace"},
		{ID: "SUB-BETA", Title: "Sequence Stratigraphy", AuthorEmail: "grace@example.org", CorrespondingAuthor: "Grace Hopper"},
		{ID: "SUB-GAMMA", Title: "Deleted Work", Deleted: true, AuthorEmail: "ada@example.org"},
	})

	byTitle, err := svc.Search("basin")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	require.Equal(t, "SUB-ALPHA", byTitle[0].ID)

	byEmail, err := svc.Search("GRACE@EXAMPLE")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	require.Equal(t, "SUB-BETA", byEmail[0].ID)

	byID, err := svc.Search("sub-")
	require.NoError(t, err)
	require.Len(t, byID, 2)

	none, err := svc.Search("nonexistent")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestActionLogsNewestFirstWithLimit(t *testing.T) {
	svc, store := newTestService(t)

	logs := make([]models.ActionLog, 0, 5)
	for i := 0; i < 5; i++ {
		logs = append(logs, models.ActionLog{
			ID:        fmt.Sprintf("LOG-%d", i),
			Timestamp: time.Now().Add(time.Duration(i) * time.Second),
		})
	}
	require.NoError(t, store.SetActionLogs(logs))

	got, err := svc.ActionLogs(3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "LOG-4", got[0].ID)
	require.Equal(t, "LOG-2", got[2].ID)
}

func TestActionLogCap(t *testing.T) {
	svc, store := newTestService(t)
	seedSubmissions(t, store, []models.Submission{{ID: "SUB-A"}})

	prefill := make([]models.ActionLog, 0, models.MaxActionLogs)
	for i := 0; i < models.MaxActionLogs; i++ {
		prefill = append(prefill, models.ActionLog{ID: fmt.Sprintf("LOG-%04d", i)})
	}
	require.NoError(t, store.SetActionLogs(prefill))

	// The 1001st entry evicts the oldest
	_, err := svc.UpdateSubmissionStatus("SUB-A", models.StatusAccepted)
	require.NoError(t, err)

	logs, err := store.GetActionLogs()
	require.NoError(t, err)
	require.Len(t, logs, models.MaxActionLogs)
	require.Equal(t, "LOG-0001", logs[0].ID)
	require.Equal(t, models.ActionStatusUpdate, logs[models.MaxActionLogs-1].Action)
}
