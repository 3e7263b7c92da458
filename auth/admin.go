package auth

import (
	"time"

	"paperdesk/models"
	"paperdesk/storage"
	"paperdesk/utils"
)

// Bootstrap credentials for the very first run. Changed through
// ChangeCredentials once the portal is set up.
const (
	DefaultAdminEmail    = "admin@cspg.org"
	DefaultAdminPassword = "CSPGAdmin@2025"
	DefaultAdminName     = "System Administrator"
)

// AdminManager mirrors Manager over the AdminAccount collection
type AdminManager struct {
	store *storage.Store
}

// NewAdminManager creates an admin credential manager over the given store
func NewAdminManager(store *storage.Store) *AdminManager {
	return &AdminManager{store: store}
}

// EnsureBootstrap creates the default admin account if and only if the
// collection is empty. Safe to call on every startup.
func (m *AdminManager) EnsureBootstrap() error {
	admins, err := m.store.GetAdmins()
	if err != nil {
		return err
	}
	if len(admins) > 0 {
		return nil
	}

	account := models.AdminAccount{
		ID:           "admin-" + GenerateID(),
		Email:        DefaultAdminEmail,
		PasswordHash: HashPassword(DefaultAdminPassword),
		Role:         models.RoleAdmin,
		Name:         DefaultAdminName,
		CreatedAt:    time.Now(),
	}

	utils.Log.Info("Bootstrapping default admin account %s", account.Email)
	return m.store.SetAdmins([]models.AdminAccount{account})
}

// Login verifies admin credentials and persists a fresh 24h admin session
func (m *AdminManager) Login(email, password string) (*models.Session, error) {
	admins, err := m.store.GetAdmins()
	if err != nil {
		return nil, err
	}

	passwordHash := HashPassword(password)

	var admin *models.AdminAccount
	for i := range admins {
		if admins[i].Email == email && admins[i].PasswordHash == passwordHash {
			admin = &admins[i]
			break
		}
	}
	if admin == nil {
		return nil, utils.InvalidCredentialsError()
	}

	now := time.Now()
	session := &models.Session{
		SubjectID: admin.ID,
		Email:     admin.Email,
		Role:      models.RoleAdmin,
		FullName:  admin.Name,
		LoginTime: now,
		ExpiresAt: now.Add(SessionTTL),
	}

	if err := m.store.SetAdminSession(session); err != nil {
		return nil, err
	}

	return session, nil
}

// Logout clears the current admin session
func (m *AdminManager) Logout() error {
	return m.store.ClearAdminSession()
}

// IsAuthenticated reports whether a live admin session exists, clearing
// an expired one as a side effect
func (m *AdminManager) IsAuthenticated() bool {
	session, err := m.store.GetAdminSession()
	if err != nil || session == nil {
		return false
	}

	if session.Expired(time.Now()) {
		m.store.ClearAdminSession()
		return false
	}

	return true
}

// CurrentSession returns the live admin session or a NoSession error
func (m *AdminManager) CurrentSession() (*models.Session, error) {
	if !m.IsAuthenticated() {
		return nil, utils.NoSessionError()
	}
	return m.store.GetAdminSession()
}

// ChangeCredentials updates the session owner's email and/or password
// atomically under a single current-password check. Empty arguments
// leave the corresponding field unchanged.
func (m *AdminManager) ChangeCredentials(currentPassword, newEmail, newPassword string) error {
	session, err := m.CurrentSession()
	if err != nil {
		return err
	}

	admins, err := m.store.GetAdmins()
	if err != nil {
		return err
	}

	currentHash := HashPassword(currentPassword)
	idx := -1
	for i := range admins {
		if admins[i].ID == session.SubjectID && admins[i].PasswordHash == currentHash {
			idx = i
			break
		}
	}
	if idx == -1 {
		return utils.InvalidCredentialsError()
	}

	if newEmail != "" && newEmail != admins[idx].Email {
		admins[idx].Email = newEmail
		session.Email = newEmail
	}
	if newPassword != "" {
		admins[idx].PasswordHash = HashPassword(newPassword)
	}

	now := time.Now()
	admins[idx].CredentialsChangedAt = &now

	if err := m.store.SetAdmins(admins); err != nil {
		return err
	}
	return m.store.SetAdminSession(session)
}
