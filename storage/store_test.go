package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"paperdesk/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEmptyCollections(t *testing.T) {
	store := newTestStore(t)

	users, err := store.GetUsers()
	require.NoError(t, err)
	require.Empty(t, users)

	subs, err := store.GetSubmissions()
	require.NoError(t, err)
	require.Empty(t, subs)

	admins, err := store.GetAdmins()
	require.NoError(t, err)
	require.Empty(t, admins)

	logs, err := store.GetActionLogs()
	require.NoError(t, err)
	require.Empty(t, logs)
}

func TestUsersRoundTrip(t *testing.T) {
	store := newTestStore(t)

	users := []models.User{
		{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.org", CreatedAt: time.Now()},
		{ID: "u2", FirstName: "Alan", LastName: "Turing", Email: "alan@example.org", CreatedAt: time.Now(), Deleted: true},
	}
	require.NoError(t, store.SetUsers(users))

	got, err := store.GetUsers()
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "u1", got[0].ID)
	require.True(t, got[1].Deleted)
}

func TestSubmissionsPreserveStorageOrder(t *testing.T) {
	store := newTestStore(t)

	subs := []models.Submission{
		{ID: "SUB-1", UserID: "u1", Title: "First"},
		{ID: "SUB-2", UserID: "u1", Title: "Second"},
		{ID: "SUB-3", UserID: "u2", Title: "Third"},
	}
	require.NoError(t, store.SetSubmissions(subs))

	got, err := store.GetSubmissions()
	require.NoError(t, err)
	require.Equal(t, []string{"SUB-1", "SUB-2", "SUB-3"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestSessionLifecycle(t *testing.T) {
	store := newTestStore(t)

	sess, err := store.GetSession()
	require.NoError(t, err)
	require.Nil(t, sess)

	now := time.Now()
	require.NoError(t, store.SetSession(&models.Session{
		SubjectID: "u1",
		Email:     "ada@example.org",
		Role:      models.RoleAuthor,
		LoginTime: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}))

	sess, err = store.GetSession()
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "u1", sess.SubjectID)

	// New login overwrites the previous session
	require.NoError(t, store.SetSession(&models.Session{SubjectID: "u2", ExpiresAt: now.Add(time.Hour)}))
	sess, err = store.GetSession()
	require.NoError(t, err)
	require.Equal(t, "u2", sess.SubjectID)

	require.NoError(t, store.ClearSession())
	sess, err = store.GetSession()
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestUserAndAdminSessionsAreIndependent(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	require.NoError(t, store.SetSession(&models.Session{SubjectID: "u1", Role: models.RoleAuthor, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.SetAdminSession(&models.Session{SubjectID: "a1", Role: models.RoleAdmin, ExpiresAt: now.Add(time.Hour)}))

	require.NoError(t, store.ClearSession())

	adminSess, err := store.GetAdminSession()
	require.NoError(t, err)
	require.NotNil(t, adminSess)
	require.Equal(t, "a1", adminSess.SubjectID)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetUsers([]models.User{{ID: "u1", Email: "ada@example.org"}}))
	require.NoError(t, store.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	users, err := reopened.GetUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "ada@example.org", users[0].Email)
}
