package database

import "errors"

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Database is a string key-value store. Values are opaque to the backend.
type Database interface {
	Open(database, dsn string) error
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	// Keys lists the keys starting with prefix in ascending order.
	Keys(prefix string) ([]string, error)
	Close() error
}
