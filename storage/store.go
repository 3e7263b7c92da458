package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.etcd.io/bbolt"

	"paperdesk/models"
	"paperdesk/utils"
)

// Keys inside each collection bucket. Every collection is stored as one
// JSON-serialized array under a single key, so a write is an atomic
// replace of the whole collection: a failed serialize-and-write leaves
// prior state untouched.
const (
	keyCollection   = "records"
	keyUserSession  = "user"
	keyAdminSession = "admin"
)

// Store is the single component touching persistent state. All service
// packages read and write through it; calls are serialized by a mutex.
type Store struct {
	db *bbolt.DB
	mu sync.RWMutex
}

// Open creates the data directory if needed and opens the store
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	db, err := openDB(dataDir)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// getCollection unmarshals the whole collection into out (a pointer to a
// slice). A missing key yields an empty collection.
func (s *Store) getCollection(bucket string, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucket)).Get([]byte(keyCollection))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("malformed %s collection: %v", bucket, err)
		}
		return nil
	})
	if err != nil {
		return utils.StorageError("failed to read "+bucket, err)
	}
	return nil
}

// setCollection marshals v and replaces the whole collection in one write
func (s *Store) setCollection(bucket string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return utils.StorageError("failed to serialize "+bucket, err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(keyCollection), data)
	})
	if err != nil {
		return utils.StorageError("failed to write "+bucket, err)
	}
	return nil
}

// GetUsers returns the full user collection, deleted records included
func (s *Store) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := s.getCollection(bucketUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetUsers replaces the user collection
func (s *Store) SetUsers(users []models.User) error {
	return s.setCollection(bucketUsers, users)
}

// GetSubmissions returns the full submission collection, deleted records included
func (s *Store) GetSubmissions() ([]models.Submission, error) {
	var subs []models.Submission
	if err := s.getCollection(bucketSubmissions, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// SetSubmissions replaces the submission collection
func (s *Store) SetSubmissions(subs []models.Submission) error {
	return s.setCollection(bucketSubmissions, subs)
}

// GetAdmins returns the admin account collection
func (s *Store) GetAdmins() ([]models.AdminAccount, error) {
	var admins []models.AdminAccount
	if err := s.getCollection(bucketAdmins, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// SetAdmins replaces the admin account collection
func (s *Store) SetAdmins(admins []models.AdminAccount) error {
	return s.setCollection(bucketAdmins, admins)
}

// GetActionLogs returns the audit trail, oldest first
func (s *Store) GetActionLogs() ([]models.ActionLog, error) {
	var logs []models.ActionLog
	if err := s.getCollection(bucketActionLogs, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// SetActionLogs replaces the audit trail
func (s *Store) SetActionLogs(logs []models.ActionLog) error {
	return s.setCollection(bucketActionLogs, logs)
}

// getSession loads the session stored under key, or nil when absent
func (s *Store) getSession(key string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var session *models.Session
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketSessions)).Get([]byte(key))
		if data == nil {
			return nil
		}
		var sess models.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			return fmt.Errorf("malformed session: %v", err)
		}
		session = &sess
		return nil
	})
	if err != nil {
		return nil, utils.StorageError("failed to read session", err)
	}
	return session, nil
}

func (s *Store) setSession(key string, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(session)
	if err != nil {
		return utils.StorageError("failed to serialize session", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketSessions)).Put([]byte(key), data)
	})
	if err != nil {
		return utils.StorageError("failed to write session", err)
	}
	return nil
}

func (s *Store) clearSession(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketSessions)).Delete([]byte(key))
	})
	if err != nil {
		return utils.StorageError("failed to clear session", err)
	}
	return nil
}

// GetSession returns the current user session, or nil when absent
func (s *Store) GetSession() (*models.Session, error) {
	return s.getSession(keyUserSession)
}

// SetSession replaces the current user session
func (s *Store) SetSession(session *models.Session) error {
	return s.setSession(keyUserSession, session)
}

// ClearSession removes the current user session
func (s *Store) ClearSession() error {
	return s.clearSession(keyUserSession)
}

// GetAdminSession returns the current admin session, or nil when absent
func (s *Store) GetAdminSession() (*models.Session, error) {
	return s.getSession(keyAdminSession)
}

// SetAdminSession replaces the current admin session
func (s *Store) SetAdminSession(session *models.Session) error {
	return s.setSession(keyAdminSession, session)
}

// ClearAdminSession removes the current admin session
func (s *Store) ClearAdminSession() error {
	return s.clearSession(keyAdminSession)
}
