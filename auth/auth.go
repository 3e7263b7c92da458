package auth

import (
	"crypto/sha256"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"paperdesk/models"
	"paperdesk/storage"
	"paperdesk/utils"
)

// SessionTTL is how long a login remains valid. Expiry is checked lazily
// on each authentication query; there is no background timer.
const SessionTTL = 24 * time.Hour

// HashPassword returns the SHA-256 digest of the password as lowercase
// hex. Hashing is deterministic on purpose: login compares the stored
// digest against the digest of the presented password.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return fmt.Sprintf("%x", hash)
}

// GenerateID builds a compact record id from the current time plus a
// random suffix. Collisions are vanishingly unlikely but not impossible;
// the store does not enforce uniqueness.
func GenerateID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + strconv.FormatInt(rand.Int63n(1<<40), 36)
}

// RegisterInput carries the registration form fields
type RegisterInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Institution     string `json:"institution"`
	Department      string `json:"department"`
	Position        string `json:"position"`
}

// Manager implements registration, login and session handling for
// author accounts
type Manager struct {
	store *storage.Store
}

// NewManager creates an author credential manager over the given store
func NewManager(store *storage.Store) *Manager {
	return &Manager{store: store}
}

// Register creates a new author account. The email must not belong to a
// non-deleted user, and password and confirmation must match. Free-text
// fields are HTML-escaped before storage.
func (m *Manager) Register(input RegisterInput) (*models.User, error) {
	users, err := m.store.GetUsers()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == input.Email && !u.Deleted {
			return nil, utils.DuplicateEmailError(input.Email)
		}
	}

	if input.Password != input.ConfirmPassword {
		return nil, utils.PasswordMismatchError()
	}

	user := models.User{
		ID:           GenerateID(),
		FirstName:    utils.Escape(input.FirstName),
		LastName:     utils.Escape(input.LastName),
		Email:        utils.Escape(input.Email),
		PasswordHash: HashPassword(input.Password),
		Institution:  utils.Escape(input.Institution),
		Department:   utils.Escape(input.Department),
		Position:     utils.Escape(input.Position),
		CreatedAt:    time.Now(),
		Deleted:      false,
	}

	users = append(users, user)
	if err := m.store.SetUsers(users); err != nil {
		return nil, err
	}

	return &user, nil
}

// Login verifies the credentials against non-deleted users and persists
// a fresh 24h session as the sole active one
func (m *Manager) Login(email, password string) (*models.Session, error) {
	users, err := m.store.GetUsers()
	if err != nil {
		return nil, err
	}

	passwordHash := HashPassword(password)

	var user *models.User
	for i := range users {
		if users[i].Email == email && users[i].PasswordHash == passwordHash && !users[i].Deleted {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, utils.InvalidCredentialsError()
	}

	now := time.Now()
	session := &models.Session{
		SubjectID:   user.ID,
		Email:       user.Email,
		Role:        models.RoleAuthor,
		FullName:    user.FullName(),
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Institution: user.Institution,
		Department:  user.Department,
		Position:    user.Position,
		LoginTime:   now,
		ExpiresAt:   now.Add(SessionTTL),
	}

	if err := m.store.SetSession(session); err != nil {
		return nil, err
	}

	return session, nil
}

// Logout clears the current session
func (m *Manager) Logout() error {
	return m.store.ClearSession()
}

// IsAuthenticated reports whether a live session exists. An expired
// session is cleared as a side effect of the check.
func (m *Manager) IsAuthenticated() bool {
	session, err := m.store.GetSession()
	if err != nil || session == nil {
		return false
	}

	if session.Expired(time.Now()) {
		m.store.ClearSession()
		return false
	}

	return true
}

// CurrentSession returns the live session or a NoSession error
func (m *Manager) CurrentSession() (*models.Session, error) {
	if !m.IsAuthenticated() {
		return nil, utils.NoSessionError()
	}
	return m.store.GetSession()
}

// ChangePassword replaces the session owner's password after verifying
// the current one
func (m *Manager) ChangePassword(currentPassword, newPassword string) error {
	session, err := m.CurrentSession()
	if err != nil {
		return err
	}

	users, err := m.store.GetUsers()
	if err != nil {
		return err
	}

	currentHash := HashPassword(currentPassword)
	idx := -1
	for i := range users {
		if users[i].ID == session.SubjectID && users[i].PasswordHash == currentHash {
			idx = i
			break
		}
	}
	if idx == -1 {
		return utils.InvalidCredentialsError()
	}

	now := time.Now()
	users[idx].PasswordHash = HashPassword(newPassword)
	users[idx].PasswordChangedAt = &now

	return m.store.SetUsers(users)
}
