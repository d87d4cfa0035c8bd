package testutil

import (
	"context"
	"sync"
)

// MemorySlots is an in-memory key-value slot store for tests.
//
// It records every successful write and can be told to fail reads or
// writes, which lets tests drive the persistence error paths without a
// broken database.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type MemorySlots struct {
	mu     sync.Mutex
	values map[string]string
	writes int
	getErr error
	setErr error
}

// NewMemorySlots creates an empty slot store.
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{values: make(map[string]string)}
}

// Get returns the value under key. found is false if it was never written.
func (m *MemorySlots) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set replaces the value under key unless writes are set to fail, in which
// case the prior value is kept.
func (m *MemorySlots) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	m.writes++
	return nil
}

// FailGets makes every Get return err. Pass nil to restore.
func (m *MemorySlots) FailGets(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// FailSets makes every Set return err. Pass nil to restore.
func (m *MemorySlots) FailSets(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

// Put seeds a raw value without counting it as a write.
func (m *MemorySlots) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Value returns the raw value under key, bypassing injected failures.
func (m *MemorySlots) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Writes returns the number of successful Set calls.
func (m *MemorySlots) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
