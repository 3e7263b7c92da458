package storage

import (
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

// Bucket names for the namespaced collections
const (
	bucketUsers       = "Users"
	bucketSubmissions = "Submissions"
	bucketAdmins      = "AdminAccounts"
	bucketActionLogs  = "ActionLogs"
	bucketSessions    = "Sessions"
)

// openDB opens the portal database, creating it and its buckets if needed
func openDB(dataDir string) (*bbolt.DB, error) {
	dbPath := filepath.Join(dataDir, "paperdesk.db")

	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := []string{bucketUsers, bucketSubmissions, bucketAdmins, bucketActionLogs, bucketSessions}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("create bucket %s: %s", bucket, err)
			}
		}
		return nil
	})

	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
