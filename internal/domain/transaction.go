package domain

import "time"

// TransactionKind categorizes how a balance changed.
type TransactionKind string

const (
	KindQuizComplete      TransactionKind = "quiz_complete"
	KindDailyLogin        TransactionKind = "daily_login"
	KindPredictionCorrect TransactionKind = "prediction_correct"
	KindBonus             TransactionKind = "bonus"
	KindVoting            TransactionKind = "voting"
)

// IsValid reports whether k is a known transaction kind.
func (k TransactionKind) IsValid() bool {
	switch k {
	case KindQuizComplete, KindDailyLogin, KindPredictionCorrect, KindBonus, KindVoting:
		return true
	}
	return false
}

// Transaction is one signed amount delta in the ledger log.
// The log is a bounded recent-activity view; evicted entries remain
// reflected in the balance they produced.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      int64           `json:"amount"`
	Kind        TransactionKind `json:"type"`
	Timestamp   time.Time       `json:"timestamp"`
	Description string          `json:"description"`
}
