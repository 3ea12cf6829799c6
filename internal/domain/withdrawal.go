package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus tracks the settlement state of a withdrawal. Only the
// transition to Pending happens inside this process; later transitions are
// driven by the external settlement collaborator.
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalCompleted WithdrawalStatus = "completed"
	WithdrawalConfirmed WithdrawalStatus = "confirmed"
)

// WithdrawalRecord is one coin-to-external-asset exchange, immutable once
// completed.
type WithdrawalRecord struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"userId"`
	PiCoinsExchanged   int64            `json:"piCoinsExchanged"`
	ExternalAmount     decimal.Decimal  `json:"externalAmount"`
	DestinationAddress string           `json:"destinationAddress"`
	Timestamp          time.Time        `json:"timestamp"`
	Status             WithdrawalStatus `json:"status"`
}
