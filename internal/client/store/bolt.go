package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

// bucketState holds all client state under string keys: the complaint
// ledger, credential token, cached user profile, and UI flags.
const bucketState = "state"

// Bolt is the client's local key-value store.
type Bolt struct {
	storage *bbolt.DB
}

// Open opens (or creates) the state database at path.
func Open(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketState))
		return err
	}); err != nil {
		_ = instance.Close()
		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

// Get returns the value for key, or nil when the key is absent.
func (b *Bolt) Get(key string) ([]byte, error) {
	var value []byte
	err := b.storage.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(bucketState)).Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

// Put replaces the whole value for key. Writes are whole-value
// replacements; a partially written value is never observable.
func (b *Bolt) Put(key string, value []byte) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketState)).Put([]byte(key), value)
	})
}

// Delete removes key. Deleting an absent key is not an error.
func (b *Bolt) Delete(key string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketState)).Delete([]byte(key))
	})
}
