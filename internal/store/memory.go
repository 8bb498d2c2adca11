package store

import "sync"

// Memory is an in-memory KV, used in tests and when no data directory is
// available. Err, when set, is returned from every call.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	writes []string

	Err error
}

// NewMemory creates a Memory seeded with the given values.
func NewMemory(seed map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(seed))}
	for k, v := range seed {
		m.values[k] = v
	}
	return m
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return "", false, m.Err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	m.writes = append(m.writes, key+"="+value)
	return nil
}

// Writes returns every successful Set as "key=value", oldest first.
func (m *Memory) Writes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.writes))
	copy(out, m.writes)
	return out
}

var _ KV = (*Memory)(nil)
