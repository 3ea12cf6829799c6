package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sportiq/picoin/internal/domain"
	"github.com/sportiq/picoin/internal/usecase"
)

// BalanceResponse represents a wallet balance in API responses.
type BalanceResponse struct {
	UserID      string    `json:"user_id"`
	Balance     int64     `json:"balance"`
	TotalEarned int64     `json:"total_earned"`
	LastUpdated time.Time `json:"last_updated"`
}

// BalanceFromDomain converts a domain balance record to a response.
func BalanceFromDomain(r domain.BalanceRecord) *BalanceResponse {
	return &BalanceResponse{
		UserID:      r.UserID,
		Balance:     r.Balance,
		TotalEarned: r.TotalEarned,
		LastUpdated: r.LastUpdated,
	}
}

// TransactionResponse represents a ledger transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      int64     `json:"amount"`
	Kind        string    `json:"kind"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Amount:      t.Amount,
		Kind:        string(t.Kind),
		Timestamp:   t.Timestamp,
		Description: t.Description,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// WithdrawalResponse represents a withdrawal record in API responses.
type WithdrawalResponse struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	PiCoinsExchanged   int64           `json:"pi_coins_exchanged"`
	ExternalAmount     decimal.Decimal `json:"external_amount"`
	DestinationAddress string          `json:"destination_address"`
	Timestamp          time.Time       `json:"timestamp"`
	Status             string          `json:"status"`
}

// WithdrawalFromDomain converts a domain withdrawal record to a response.
func WithdrawalFromDomain(w domain.WithdrawalRecord) *WithdrawalResponse {
	return &WithdrawalResponse{
		ID:                 w.ID,
		UserID:             w.UserID,
		PiCoinsExchanged:   w.PiCoinsExchanged,
		ExternalAmount:     w.ExternalAmount,
		DestinationAddress: w.DestinationAddress,
		Timestamp:          w.Timestamp,
		Status:             string(w.Status),
	}
}

// WithdrawalsFromDomain converts domain withdrawal records to responses.
func WithdrawalsFromDomain(records []domain.WithdrawalRecord) []*WithdrawalResponse {
	result := make([]*WithdrawalResponse, len(records))
	for i, w := range records {
		result[i] = WithdrawalFromDomain(w)
	}
	return result
}

// ExchangeResponse represents a successful exchange in API responses.
type ExchangeResponse struct {
	WithdrawalID     string          `json:"withdrawal_id"`
	PiCoinsExchanged int64           `json:"pi_coins_exchanged"`
	ExternalAmount   decimal.Decimal `json:"external_amount"`
	Status           string          `json:"status"`
}

// RewardResponse represents the outcome of a reward request.
type RewardResponse struct {
	UserID string `json:"user_id"`
	Amount int64  `json:"amount"`
}

// LeaderboardEntryResponse represents one leaderboard row.
type LeaderboardEntryResponse struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	Balance     int64  `json:"balance"`
	TotalEarned int64  `json:"total_earned"`
}

// LeaderboardFromUseCase converts leaderboard entries to responses,
// assigning 1-based ranks in order.
func LeaderboardFromUseCase(entries []usecase.LeaderboardEntry) []*LeaderboardEntryResponse {
	result := make([]*LeaderboardEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = &LeaderboardEntryResponse{
			Rank:        i + 1,
			UserID:      e.UserID,
			Balance:     e.Balance,
			TotalEarned: e.TotalEarned,
		}
	}
	return result
}

// SupplyResponse represents the circulating supply.
type SupplyResponse struct {
	TotalSupply int64 `json:"total_supply"`
}

// SecurityEventResponse represents an audited security event.
type SecurityEventResponse struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	UserID    string    `json:"user_id"`
	Operation string    `json:"operation"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// SecurityEventFromDomain converts a domain security event to a response.
func SecurityEventFromDomain(e domain.SecurityEvent) *SecurityEventResponse {
	return &SecurityEventResponse{
		ID:        e.ID,
		Event:     e.Event,
		UserID:    e.UserID,
		Operation: e.Operation,
		Detail:    e.Detail,
		CreatedAt: e.CreatedAt,
	}
}

// SecurityEventsFromDomain converts domain security events to responses.
func SecurityEventsFromDomain(events []domain.SecurityEvent) []*SecurityEventResponse {
	result := make([]*SecurityEventResponse, len(events))
	for i, e := range events {
		result[i] = SecurityEventFromDomain(e)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
