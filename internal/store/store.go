// Package store persists the client's durable state: the auth token and the
// serialized current-user record, each under a fixed, well-known key.
package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Well-known keys. Absence of either means "not authenticated".
const (
	KeyAuthToken = "auth_token"
	KeyUser      = "user"
)

// entry is a single persisted key/value pair.
type entry struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"not null"`
}

// TableName keeps the table name stable across gorm naming-strategy changes.
func (entry) TableName() string { return "credentials" }

// Store is a sqlite-backed key-value store for client credentials.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the store at the given path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening state store: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrating state store: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the value for key, or "" when the key is absent.
func (s *Store) Get(key string) (string, error) {
	var e entry
	if err := s.db.First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading %q: %w", key, err)
	}
	return e.Value, nil
}

// Set writes the value for key, overwriting any previous value.
func (s *Store) Set(key, value string) error {
	e := entry{Key: key, Value: value}
	if err := s.db.Save(&e).Error; err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if err := s.db.Delete(&entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("getting underlying DB: %w", err)
	}
	return sqlDB.Close()
}
