package usecase

import (
	"context"
	"time"

	"github.com/sportiq/picoin/internal/domain"
)

// StateStore persists the ledger's logical tables as encrypted JSON blobs.
//
// LoadJSON leaves v at its zero value when the key is absent or the stored
// blob cannot be decrypted; callers must treat "no data" and "corrupt data"
// identically. StoreJSON may degrade to an unencrypted write when encryption
// fails. Raw variants bypass the encryption envelope entirely.
type StateStore interface {
	LoadJSON(ctx context.Context, key string, v any) error
	StoreJSON(ctx context.Context, key string, v any) error
	LoadRaw(ctx context.Context, key string) ([]byte, error)
	StoreRaw(ctx context.Context, key string, value []byte) error
}

// RateLimiter enforces a per-key windowed counter. Allow reports whether
// the operation may proceed; a rejection must not consume window budget.
type RateLimiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock abstracts time for deterministic idempotency and rate-limit tests.
type Clock interface {
	Now() time.Time
}

// AuditLog records rejected or anomalous operations. Recording must never
// fail the operation being audited.
type AuditLog interface {
	Record(ctx context.Context, event domain.SecurityEvent)
}

// Ledger is the subset of ledger behavior the reward and exchange policies
// depend on.
type Ledger interface {
	Append(ctx context.Context, userID string, amount int64, kind domain.TransactionKind, description string) (string, error)
	GetBalance(ctx context.Context, userID string) (domain.BalanceRecord, error)
	HasBalanceRecord(ctx context.Context, userID string) (bool, error)
}

// RealClock is the wall-clock implementation of Clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
