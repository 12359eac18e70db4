package storage

import "sync"

// MemoryStore keeps values in a map. It backs tests and the ephemeral
// `--backend memory` mode; nothing survives the process.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Load(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Save(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for key := range s.values {
		if hasAppPrefix(key) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func hasAppPrefix(key string) bool {
	return len(key) >= len(KeyPrefix) && key[:len(KeyPrefix)] == KeyPrefix
}
