package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MemoryStore is a mutex-guarded in-process implementation of Store. It backs
// `store.type: memory` deployments and the test suites; Transaction is
// genuinely atomic because the whole store shares one lock.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Get(ctx context.Context, path string, dest interface{}) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[path]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, wrapPathErr("decode", path, err)
	}
	return true, nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return wrapPathErr("encode", path, err)
	}
	s.mu.Lock()
	s.data[path] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, path string) error {
	prefix := path + "/"
	s.mu.Lock()
	delete(s.data, path)
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			delete(s.data, key)
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Children(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	prefix := path + "/"
	children := make(map[string]json.RawMessage)
	s.mu.Lock()
	for key, raw := range s.data {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if strings.Contains(rest, "/") {
			continue
		}
		cp := make(json.RawMessage, len(raw))
		copy(cp, raw)
		children[rest] = cp
	}
	s.mu.Unlock()
	return children, nil
}

func (s *MemoryStore) ChildSegments(ctx context.Context, path string) ([]string, error) {
	prefix := path + "/"
	seen := make(map[string]bool)
	var segments []string
	s.mu.Lock()
	for key := range s.data {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if i := strings.Index(rest, "/"); i >= 0 {
			rest = rest[:i]
		}
		if !seen[rest] {
			seen[rest] = true
			segments = append(segments, rest)
		}
	}
	s.mu.Unlock()
	return segments, nil
}

func (s *MemoryStore) Transaction(ctx context.Context, path string, update UpdateFunc) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current json.RawMessage
	if raw, ok := s.data[path]; ok {
		current = raw
	}

	value, commit := update(current)
	if !commit {
		return false, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return false, wrapPathErr("encode", path, err)
	}
	s.data[path] = raw
	return true, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
