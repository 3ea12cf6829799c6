package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sportiq/picoin/internal/domain"
)

// MockStateStore is a map-backed mock of usecase.StateStore. JSON values
// round-trip through encoding/json so tests see realistic serialization.
type MockStateStore struct {
	mu        sync.RWMutex
	data      map[string][]byte
	storeErrs map[string]error

	LoadJSONFunc  func(ctx context.Context, key string, v any) error
	StoreJSONFunc func(ctx context.Context, key string, v any) error
	LoadRawFunc   func(ctx context.Context, key string) ([]byte, error)
	StoreRawFunc  func(ctx context.Context, key string, value []byte) error
}

func NewMockStateStore() *MockStateStore {
	return &MockStateStore{
		data:      make(map[string][]byte),
		storeErrs: make(map[string]error),
	}
}

// FailStoreJSON makes StoreJSON fail for one key while other keys keep the
// default map-backed behavior.
func (m *MockStateStore) FailStoreJSON(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeErrs[key] = err
}

func (m *MockStateStore) LoadJSON(ctx context.Context, key string, v any) error {
	if m.LoadJSONFunc != nil {
		return m.LoadJSONFunc(ctx, key, v)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("mock store: unmarshal %s: %w", key, err)
	}
	return nil
}

func (m *MockStateStore) StoreJSON(ctx context.Context, key string, v any) error {
	if m.StoreJSONFunc != nil {
		return m.StoreJSONFunc(ctx, key, v)
	}
	m.mu.RLock()
	failErr := m.storeErrs[key]
	m.mu.RUnlock()
	if failErr != nil {
		return failErr
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("mock store: marshal %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b
	return nil
}

func (m *MockStateStore) LoadRaw(ctx context.Context, key string) ([]byte, error) {
	if m.LoadRawFunc != nil {
		return m.LoadRawFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockStateStore) StoreRaw(ctx context.Context, key string, value []byte) error {
	if m.StoreRawFunc != nil {
		return m.StoreRawFunc(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// MockRateLimiter allows everything unless AllowFunc is set.
type MockRateLimiter struct {
	AllowFunc func(key string, limit int, window time.Duration) bool
}

func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{}
}

func (m *MockRateLimiter) Allow(key string, limit int, window time.Duration) bool {
	if m.AllowFunc != nil {
		return m.AllowFunc(key, limit, window)
	}
	return true
}

// MockIDGenerator returns sequential IDs unless GenerateFunc is set.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%04d", m.next)
}

// MockClock returns a settable instant.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set pins the clock to an instant.
func (m *MockClock) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// MockAuditLog collects recorded events.
type MockAuditLog struct {
	mu     sync.Mutex
	events []domain.SecurityEvent

	RecordFunc func(ctx context.Context, event domain.SecurityEvent)
}

func NewMockAuditLog() *MockAuditLog {
	return &MockAuditLog{}
}

func (m *MockAuditLog) Record(ctx context.Context, event domain.SecurityEvent) {
	if m.RecordFunc != nil {
		m.RecordFunc(ctx, event)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of everything recorded so far.
func (m *MockAuditLog) Events() []domain.SecurityEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.SecurityEvent, len(m.events))
	copy(out, m.events)
	return out
}
