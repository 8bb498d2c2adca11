package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	berrors "github.com/zhubert/banter/internal/errors"
)

// prefsBucket is the single bucket preferences live in.
var prefsBucket = []byte("preferences")

// Bolt is a KV backed by a bbolt database file.
type Bolt struct {
	db   *bbolt.DB
	path string
	mu   sync.RWMutex
}

// OpenBolt opens or creates the database at path, creating parent directories.
func OpenBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, berrors.E(berrors.Op("store.Open"), berrors.KindIO, path, err)
	}
	// A second banter instance holding the lock should fail fast rather than hang.
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, berrors.E(berrors.Op("store.Open"), berrors.KindIO, fmt.Sprintf("failed to open %s", path), err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(prefsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, berrors.E(berrors.Op("store.Open"), berrors.KindIO, "failed to create preferences bucket", err)
	}
	return &Bolt{db: db, path: path}, nil
}

// Path returns the database file path.
func (b *Bolt) Path() string {
	return b.path
}

// Get returns the value stored under key.
func (b *Bolt) Get(key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var (
		value string
		found bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(prefsBucket)
		if bucket == nil {
			return nil
		}
		// Copy out: the slice is only valid for the life of the transaction.
		if data := bucket.Get([]byte(key)); data != nil {
			value = string(data)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, berrors.StoreFailed("Get", key, err)
	}
	return value, found, nil
}

// Set stores value under key.
func (b *Bolt) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(prefsBucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return berrors.StoreFailed("Set", key, err)
	}
	return nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.db.Close()
}

var _ KV = (*Bolt)(nil)
