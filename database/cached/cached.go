package cached

import (
	"sync"

	"github.com/aquilax/blogboard/database"
)

// Cached keeps the values read from db in memory. Misses are not cached.
// Every write to a key bumps its generation; a read that raced a write does
// not fill the cache.
type Cached struct {
	db    database.Database
	mu    sync.RWMutex
	cache map[string]string
	gen   map[string]uint64
}

func New(db database.Database) *Cached {
	return &Cached{
		db:    db,
		cache: make(map[string]string),
		gen:   make(map[string]uint64),
	}
}

func (m *Cached) clear() {
	m.mu.Lock()
	m.cache = make(map[string]string)
	m.mu.Unlock()
}

func (m *Cached) Open(database, dsn string) error {
	m.clear()
	return m.db.Open(database, dsn)
}

func (m *Cached) Get(key string) (string, error) {
	m.mu.RLock()
	value, found := m.cache[key]
	gen := m.gen[key]
	m.mu.RUnlock()
	if found {
		return value, nil
	}
	value, err := m.db.Get(key)
	if err != nil {
		return value, err
	}
	m.mu.Lock()
	if m.gen[key] == gen {
		m.cache[key] = value
	}
	m.mu.Unlock()
	return value, nil
}

func (m *Cached) Set(key, value string) error {
	if err := m.db.Set(key, value); err != nil {
		m.forget(key)
		return err
	}
	m.mu.Lock()
	m.gen[key]++
	m.cache[key] = value
	m.mu.Unlock()
	return nil
}

func (m *Cached) Delete(key string) error {
	err := m.db.Delete(key)
	m.forget(key)
	return err
}

func (m *Cached) forget(key string) {
	m.mu.Lock()
	m.gen[key]++
	delete(m.cache, key)
	m.mu.Unlock()
}

func (m *Cached) Keys(prefix string) ([]string, error) {
	return m.db.Keys(prefix)
}

func (m *Cached) Close() error {
	m.clear()
	return m.db.Close()
}
