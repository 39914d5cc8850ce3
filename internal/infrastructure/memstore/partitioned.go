// Package memstore holds process-lifetime state partitioned by tenant key.
package memstore

import (
	"sort"
	"sync"
)

type partition[T any] struct {
	mu    sync.Mutex
	value T
}

// Partitioned maps keys to independently locked values. The map lock is
// only held to find or create a partition, never while fn runs, so one
// tenant never blocks another.
type Partitioned[T any] struct {
	mu    sync.RWMutex
	parts map[string]*partition[T]
	init  func() T
}

// NewPartitioned creates an empty store. init builds the zero state of a
// new partition; nil means the zero value of T.
func NewPartitioned[T any](init func() T) *Partitioned[T] {
	return &Partitioned[T]{
		parts: make(map[string]*partition[T]),
		init:  init,
	}
}

func (s *Partitioned[T]) get(key string, create bool) *partition[T] {
	s.mu.RLock()
	p, ok := s.parts[key]
	s.mu.RUnlock()
	if ok || !create {
		return p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok = s.parts[key]; ok {
		return p
	}
	p = &partition[T]{}
	if s.init != nil {
		p.value = s.init()
	}
	s.parts[key] = p
	return p
}

// Update runs fn with exclusive access to key's value, creating the
// partition if needed.
func (s *Partitioned[T]) Update(key string, fn func(v *T)) {
	p := s.get(key, true)
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.value)
}

// View runs fn with exclusive access to key's value if the partition exists
// and reports whether it did. Unknown keys are not created.
func (s *Partitioned[T]) View(key string, fn func(v *T)) bool {
	p := s.get(key, false)
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.value)
	return true
}

// Keys returns the known partition keys in sorted order.
func (s *Partitioned[T]) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.parts))
	for k := range s.parts {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Len returns the number of partitions.
func (s *Partitioned[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.parts)
}
