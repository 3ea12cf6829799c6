package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sportiq/picoin/internal/domain"
	"github.com/sportiq/picoin/internal/infrastructure/metrics"
	"github.com/sportiq/picoin/internal/infrastructure/ratelimit"
	"github.com/sportiq/picoin/internal/usecase"
	"github.com/sportiq/picoin/internal/usecase/mocks"
)

func newLedger(t *testing.T) (*usecase.LedgerUseCase, *mocks.MockStateStore, *mocks.MockAuditLog, *mocks.MockClock) {
	t.Helper()
	store := mocks.NewMockStateStore()
	audit := mocks.NewMockAuditLog()
	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	uc := usecase.NewLedgerUseCase(store, mocks.NewMockRateLimiter(), audit, mocks.NewMockIDGenerator(), clock)
	return uc, store, audit, clock
}

func TestLedgerAppend_BalanceIsSumOfAmounts(t *testing.T) {
	uc, _, _, _ := newLedger(t)
	ctx := context.Background()

	amounts := []int64{25, 10, 5, -15, 100, -5}
	var wantBalance, wantEarned int64
	for _, a := range amounts {
		if _, err := uc.Append(ctx, "user_1", a, domain.KindBonus, "test credit"); err != nil {
			t.Fatalf("append %d: %v", a, err)
		}
		wantBalance += a
		if a > 0 {
			wantEarned += a
		}
	}

	rec, err := uc.GetBalance(ctx, "user_1")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if rec.Balance != wantBalance {
		t.Errorf("expected balance %d, got %d", wantBalance, rec.Balance)
	}
	if rec.TotalEarned != wantEarned {
		t.Errorf("expected totalEarned %d, got %d", wantEarned, rec.TotalEarned)
	}
}

func TestLedgerAppend_RejectsOverLimitAmount(t *testing.T) {
	uc, _, audit, _ := newLedger(t)
	ctx := context.Background()

	if _, err := uc.Append(ctx, "user_1", 500, domain.KindBonus, "seed"); err != nil {
		t.Fatalf("seed append: %v", err)
	}

	_, err := uc.Append(ctx, "user_1", domain.MaxSingleTransaction+1, domain.KindBonus, "too big")
	if !errors.Is(err, domain.ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}

	rec, err := uc.GetBalance(ctx, "user_1")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if rec.Balance != 500 {
		t.Errorf("expected balance unchanged at 500, got %d", rec.Balance)
	}

	events := audit.Events()
	if len(events) != 1 || events[0].Event != domain.EventInvalidAmount {
		t.Errorf("expected one invalid_amount security event, got %+v", events)
	}
}

func TestLedgerAppend_RejectsEmptyUserID(t *testing.T) {
	uc, _, audit, _ := newLedger(t)

	for _, raw := range []string{"", "   ", "<>&\""} {
		if _, err := uc.Append(context.Background(), raw, 10, domain.KindBonus, "x"); !errors.Is(err, domain.ErrInvalidUserID) {
			t.Errorf("Append(%q): expected ErrInvalidUserID, got %v", raw, err)
		}
	}
	if len(audit.Events()) != 3 {
		t.Errorf("expected 3 audited rejections, got %d", len(audit.Events()))
	}
}

func TestLedgerAppend_RejectsUnknownKind(t *testing.T) {
	uc, _, _, _ := newLedger(t)

	if _, err := uc.Append(context.Background(), "user_1", 10, domain.TransactionKind("jackpot"), "x"); !errors.Is(err, domain.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestLedgerAppend_GlobalLogCapAndUserView(t *testing.T) {
	uc, store, _, _ := newLedger(t)
	ctx := context.Background()

	// 150 appends for one user; the global log holds only the newest 100
	// and the per-user view at most 20, but the balance reflects all 150.
	for i := 0; i < 150; i++ {
		if _, err := uc.Append(ctx, "user_1", 1, domain.KindBonus, "drip"); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	var raw []domain.Transaction
	if err := store.LoadJSON(ctx, "pi_coin_transactions", &raw); err != nil {
		t.Fatalf("load raw log: %v", err)
	}
	if len(raw) != 100 {
		t.Errorf("expected global log capped at 100, got %d", len(raw))
	}

	view, err := uc.GetTransactions(ctx, "user_1")
	if err != nil {
		t.Fatalf("get transactions: %v", err)
	}
	if len(view) != 20 {
		t.Errorf("expected user view capped at 20, got %d", len(view))
	}

	rec, err := uc.GetBalance(ctx, "user_1")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if rec.Balance != 150 {
		t.Errorf("expected balance 150 despite eviction, got %d", rec.Balance)
	}
}

func TestLedgerAppend_EvictsOldestAcrossUsers(t *testing.T) {
	uc, _, _, _ := newLedger(t)
	ctx := context.Background()

	// Fill the log with user_1, then push user_2 entries: the cap is
	// global, so user_1's oldest entries get evicted by user_2's activity.
	for i := 0; i < 100; i++ {
		if _, err := uc.Append(ctx, "user_1", 1, domain.KindBonus, "fill"); err != nil {
			t.Fatalf("fill append: %v", err)
		}
	}
	for i := 0; i < 90; i++ {
		if _, err := uc.Append(ctx, "user_2", 1, domain.KindBonus, "push"); err != nil {
			t.Fatalf("push append: %v", err)
		}
	}

	view, err := uc.GetTransactions(ctx, "user_1")
	if err != nil {
		t.Fatalf("get transactions: %v", err)
	}
	if len(view) != 10 {
		t.Errorf("expected only 10 surviving user_1 entries, got %d", len(view))
	}
}

func TestLedgerAppend_RateLimit(t *testing.T) {
	store := mocks.NewMockStateStore()
	audit := mocks.NewMockAuditLog()
	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	limiter := ratelimit.NewWindow(clock)
	uc := usecase.NewLedgerUseCase(store, limiter, audit, mocks.NewMockIDGenerator(), clock)
	ctx := context.Background()

	for i := 0; i < usecase.MaxTransactionsPerMinute; i++ {
		if _, err := uc.Append(ctx, "user_1", 1, domain.KindBonus, "ok"); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	// 21st within the same minute is rejected and leaves the balance alone.
	if _, err := uc.Append(ctx, "user_1", 1, domain.KindBonus, "over"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	rec, _ := uc.GetBalance(ctx, "user_1")
	if rec.Balance != int64(usecase.MaxTransactionsPerMinute) {
		t.Errorf("expected balance %d, got %d", usecase.MaxTransactionsPerMinute, rec.Balance)
	}

	var sawRateLimited bool
	for _, e := range audit.Events() {
		if e.Event == domain.EventRateLimited {
			sawRateLimited = true
		}
	}
	if !sawRateLimited {
		t.Error("expected a rate_limited security event")
	}

	// A different user is unaffected.
	if _, err := uc.Append(ctx, "user_2", 1, domain.KindBonus, "other"); err != nil {
		t.Fatalf("other user append: %v", err)
	}

	// After the window rolls, the same user may transact again.
	clock.Advance(61 * time.Second)
	if _, err := uc.Append(ctx, "user_1", 1, domain.KindBonus, "next window"); err != nil {
		t.Fatalf("append after window roll: %v", err)
	}
}

func TestLedgerGetBalance_UnknownUserDefaults(t *testing.T) {
	uc, _, _, _ := newLedger(t)

	rec, err := uc.GetBalance(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if rec.UserID != "nobody" || rec.Balance != 0 || rec.TotalEarned != 0 {
		t.Errorf("expected zeroed default record, got %+v", rec)
	}
}

func TestLedgerAppend_StoreWriteFailure(t *testing.T) {
	uc, store, _, _ := newLedger(t)
	ctx := context.Background()

	storeErr := errors.New("disk full")
	store.StoreJSONFunc = func(ctx context.Context, key string, v any) error {
		return storeErr
	}

	if _, err := uc.Append(ctx, "user_1", 10, domain.KindBonus, "x"); !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}

	store.StoreJSONFunc = nil
	rec, _ := uc.GetBalance(ctx, "user_1")
	if rec.Balance != 0 {
		t.Errorf("expected no committed balance change, got %d", rec.Balance)
	}
}

func TestLedgerAppend_CountsTransactionsByKind(t *testing.T) {
	uc, _, _, _ := newLedger(t)
	ctx := context.Background()

	counter := metrics.TransactionsAppended.WithLabelValues(string(domain.KindQuizComplete))
	before := testutil.ToFloat64(counter)

	if _, err := uc.Append(ctx, "user_1", 10, domain.KindQuizComplete, "a"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := uc.Append(ctx, "user_1", 25, domain.KindQuizComplete, "b"); err != nil {
		t.Fatalf("append: %v", err)
	}

	// A rejected append must not count.
	uc.Append(ctx, "user_1", domain.MaxSingleTransaction+1, domain.KindQuizComplete, "c")

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("expected 2 counted appends, got %v", got)
	}
}

func TestLedgerLeaderboard(t *testing.T) {
	uc, _, _, _ := newLedger(t)
	ctx := context.Background()

	uc.Append(ctx, "user_a", 100, domain.KindBonus, "a")
	uc.Append(ctx, "user_b", 300, domain.KindBonus, "b")
	uc.Append(ctx, "user_c", 200, domain.KindBonus, "c")
	uc.Append(ctx, "user_c", -50, domain.KindBonus, "d")

	entries, err := uc.Leaderboard(ctx, 2)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != "user_b" || entries[0].Balance != 300 {
		t.Errorf("expected user_b first with 300, got %+v", entries[0])
	}
	if entries[1].UserID != "user_c" || entries[1].Balance != 150 {
		t.Errorf("expected user_c second with 150, got %+v", entries[1])
	}
	if entries[1].TotalEarned != 200 {
		t.Errorf("expected user_c totalEarned 200, got %d", entries[1].TotalEarned)
	}

	// No limit: everyone fits under the default size.
	all, err := uc.Leaderboard(ctx, 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(all) != 3 || all[2].UserID != "user_a" {
		t.Errorf("expected 3 entries with user_a last, got %+v", all)
	}
}

func TestLedgerLeaderboard_TiesOrderByUserID(t *testing.T) {
	uc, _, _, _ := newLedger(t)
	ctx := context.Background()

	uc.Append(ctx, "user_z", 100, domain.KindBonus, "z")
	uc.Append(ctx, "user_a", 100, domain.KindBonus, "a")

	entries, err := uc.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 2 || entries[0].UserID != "user_a" || entries[1].UserID != "user_z" {
		t.Errorf("expected deterministic tie order, got %+v", entries)
	}
}

func TestLedgerTotalSupply(t *testing.T) {
	uc, _, _, _ := newLedger(t)
	ctx := context.Background()

	uc.Append(ctx, "user_1", 100, domain.KindBonus, "a")
	uc.Append(ctx, "user_2", 250, domain.KindBonus, "b")
	uc.Append(ctx, "user_2", -50, domain.KindBonus, "c")

	total, err := uc.TotalSupply(ctx)
	if err != nil {
		t.Fatalf("total supply: %v", err)
	}
	if total != 300 {
		t.Errorf("expected total supply 300, got %d", total)
	}
}
