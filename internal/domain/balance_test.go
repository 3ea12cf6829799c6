package domain

import (
	"testing"
	"time"
)

func TestBalanceRecordApply(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := NewBalanceRecord("user_1", now)

	rec.Apply(25, now)
	rec.Apply(10, now)
	rec.Apply(-15, now.Add(time.Hour))

	if rec.Balance != 20 {
		t.Errorf("expected balance 20, got %d", rec.Balance)
	}
	if rec.TotalEarned != 35 {
		t.Errorf("expected totalEarned 35 (debits excluded), got %d", rec.TotalEarned)
	}
	if !rec.LastUpdated.Equal(now.Add(time.Hour)) {
		t.Errorf("expected lastUpdated to follow the latest mutation, got %v", rec.LastUpdated)
	}
}

func TestBalanceRecordCanDebit(t *testing.T) {
	rec := BalanceRecord{UserID: "u", Balance: 1000}

	if !rec.CanDebit(1000) {
		t.Error("expected debit of the full balance to be allowed")
	}
	if rec.CanDebit(1001) {
		t.Error("expected debit above the balance to be rejected")
	}
}

func TestTransactionKindIsValid(t *testing.T) {
	for _, k := range []TransactionKind{KindQuizComplete, KindDailyLogin, KindPredictionCorrect, KindBonus, KindVoting} {
		if !k.IsValid() {
			t.Errorf("expected %q to be valid", k)
		}
	}
	if TransactionKind("jackpot").IsValid() {
		t.Error("expected unknown kind to be invalid")
	}
}
