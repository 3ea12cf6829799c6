package domain

import "time"

// BalanceRecord is the derived balance state for one user. It is created
// lazily on the first transaction and mutated only by the ledger.
type BalanceRecord struct {
	UserID      string    `json:"userId"`
	Balance     int64     `json:"balance"`
	TotalEarned int64     `json:"totalEarned"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// NewBalanceRecord returns the zeroed default record for a user.
func NewBalanceRecord(userID string, at time.Time) BalanceRecord {
	return BalanceRecord{
		UserID:      userID,
		Balance:     0,
		TotalEarned: 0,
		LastUpdated: at,
	}
}

// Apply mutates the record by a signed amount. TotalEarned only ever
// grows, and only by credits.
func (b *BalanceRecord) Apply(amount int64, at time.Time) {
	b.Balance += amount
	if amount > 0 {
		b.TotalEarned += amount
	}
	b.LastUpdated = at
}

// CanDebit reports whether the balance covers a debit of amount.
func (b *BalanceRecord) CanDebit(amount int64) bool {
	return b.Balance >= amount
}
