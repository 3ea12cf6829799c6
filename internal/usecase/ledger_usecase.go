package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sportiq/picoin/internal/domain"
	"github.com/sportiq/picoin/internal/infrastructure/metrics"
)

// LedgerUseCase owns the balance table and the bounded transaction log.
// All mutations are serialized through an internal mutex, so the
// read-modify-write of a balance record cannot lose an update even when
// callers overlap.
type LedgerUseCase struct {
	mu      sync.Mutex
	store   StateStore
	limiter RateLimiter
	audit   AuditLog
	idGen   IDGenerator
	clock   Clock
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(store StateStore, limiter RateLimiter, audit AuditLog, idGen IDGenerator, clock Clock) *LedgerUseCase {
	return &LedgerUseCase{
		store:   store,
		limiter: limiter,
		audit:   audit,
		idGen:   idGen,
		clock:   clock,
	}
}

// Append validates and records one signed amount delta for a user, updating
// the balance table synchronously. It returns the transaction ID, or an
// error with no committed state change when any precondition fails.
func (uc *LedgerUseCase) Append(ctx context.Context, userID string, amount int64, kind domain.TransactionKind, description string) (string, error) {
	cleanID := domain.SanitizeUserID(userID)
	if cleanID == "" {
		uc.audit.Record(ctx, domain.NewSecurityEvent(domain.EventInvalidUserID, userID, "ledger.append", "rejected empty or unusable user id"))
		return "", domain.ErrInvalidUserID
	}

	if !kind.IsValid() {
		return "", domain.ErrInvalidKind
	}

	if err := domain.ValidateAmount(amount); err != nil {
		uc.audit.Record(ctx, domain.NewSecurityEvent(domain.EventInvalidAmount, cleanID, "ledger.append",
			fmt.Sprintf("rejected amount %d", amount)))
		return "", err
	}

	if !uc.limiter.Allow("tx:"+cleanID, MaxTransactionsPerMinute, RateLimitWindow) {
		uc.audit.Record(ctx, domain.NewSecurityEvent(domain.EventRateLimited, cleanID, "ledger.append", "transaction rate limit exceeded"))
		return "", domain.ErrRateLimited
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.clock.Now().UTC()
	tx := domain.Transaction{
		ID:          uc.idGen.Generate(),
		UserID:      cleanID,
		Amount:      amount,
		Kind:        kind,
		Timestamp:   now,
		Description: domain.Sanitize(description),
	}

	var log []domain.Transaction
	if err := uc.store.LoadJSON(ctx, transactionsKey, &log); err != nil {
		return "", fmt.Errorf("load transaction log: %w", err)
	}
	log = append([]domain.Transaction{tx}, log...)
	if len(log) > MaxTransactionLogEntries {
		log = log[:MaxTransactionLogEntries]
	}

	balances := map[string]domain.BalanceRecord{}
	if err := uc.store.LoadJSON(ctx, balancesKey, &balances); err != nil {
		return "", fmt.Errorf("load balances: %w", err)
	}
	rec, ok := balances[cleanID]
	if !ok {
		rec = domain.NewBalanceRecord(cleanID, now)
	}
	rec.Apply(amount, now)
	balances[cleanID] = rec

	if err := uc.store.StoreJSON(ctx, transactionsKey, log); err != nil {
		return "", fmt.Errorf("store transaction log: %w", err)
	}
	if err := uc.store.StoreJSON(ctx, balancesKey, balances); err != nil {
		return "", fmt.Errorf("store balances: %w", err)
	}

	metrics.TransactionsAppended.WithLabelValues(string(kind)).Inc()

	return tx.ID, nil
}

// GetBalance returns the user's balance record, or a zeroed default for
// unknown users. It never returns a nil record.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, userID string) (domain.BalanceRecord, error) {
	cleanID := domain.SanitizeUserID(userID)

	balances := map[string]domain.BalanceRecord{}
	if err := uc.store.LoadJSON(ctx, balancesKey, &balances); err != nil {
		return domain.BalanceRecord{}, fmt.Errorf("load balances: %w", err)
	}

	if rec, ok := balances[cleanID]; ok {
		return rec, nil
	}
	return domain.NewBalanceRecord(cleanID, uc.clock.Now().UTC()), nil
}

// HasBalanceRecord reports whether a balance record already exists for the
// user, i.e. whether the ledger has ever seen them.
func (uc *LedgerUseCase) HasBalanceRecord(ctx context.Context, userID string) (bool, error) {
	cleanID := domain.SanitizeUserID(userID)

	balances := map[string]domain.BalanceRecord{}
	if err := uc.store.LoadJSON(ctx, balancesKey, &balances); err != nil {
		return false, fmt.Errorf("load balances: %w", err)
	}
	_, ok := balances[cleanID]
	return ok, nil
}

// GetTransactions returns the user's most recent entries, newest first,
// filtered from the global capped log.
func (uc *LedgerUseCase) GetTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	cleanID := domain.SanitizeUserID(userID)

	var log []domain.Transaction
	if err := uc.store.LoadJSON(ctx, transactionsKey, &log); err != nil {
		return nil, fmt.Errorf("load transaction log: %w", err)
	}

	out := make([]domain.Transaction, 0, MaxUserTransactionView)
	for _, tx := range log {
		if tx.UserID != cleanID {
			continue
		}
		out = append(out, tx)
		if len(out) == MaxUserTransactionView {
			break
		}
	}
	return out, nil
}

// LeaderboardEntry pairs a user with their current standing.
type LeaderboardEntry struct {
	UserID      string
	Balance     int64
	TotalEarned int64
}

// Leaderboard returns the top users by balance, richest first. Ties break on
// user ID so the ordering is stable across reads.
func (uc *LedgerUseCase) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > MaxLeaderboardSize {
		limit = DefaultLeaderboardSize
	}

	balances := map[string]domain.BalanceRecord{}
	if err := uc.store.LoadJSON(ctx, balancesKey, &balances); err != nil {
		return nil, fmt.Errorf("load balances: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(balances))
	for _, rec := range balances {
		entries = append(entries, LeaderboardEntry{
			UserID:      rec.UserID,
			Balance:     rec.Balance,
			TotalEarned: rec.TotalEarned,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Balance != entries[j].Balance {
			return entries[i].Balance > entries[j].Balance
		}
		return entries[i].UserID < entries[j].UserID
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// TotalSupply sums every user's balance. It reads the balance table, never
// the bounded log, so evicted transactions do not skew the total.
func (uc *LedgerUseCase) TotalSupply(ctx context.Context) (int64, error) {
	balances := map[string]domain.BalanceRecord{}
	if err := uc.store.LoadJSON(ctx, balancesKey, &balances); err != nil {
		return 0, fmt.Errorf("load balances: %w", err)
	}

	var total int64
	for _, rec := range balances {
		total += rec.Balance
	}
	return total, nil
}
