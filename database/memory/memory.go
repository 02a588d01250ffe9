package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/aquilax/blogboard/database"
)

type Memory struct {
	mu sync.RWMutex
	kv map[string]string
}

func New() *Memory {
	return &Memory{kv: make(map[string]string)}
}

func (m *Memory) Open(database, dsn string) error {
	return nil
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, found := m.kv[key]
	if !found {
		return "", database.ErrNotFound
	}
	return value, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	m.kv[key] = value
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.kv, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Keys(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.kv))
	for k := range m.kv {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Close() error {
	return nil
}
