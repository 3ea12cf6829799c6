package domain

import "time"

// SecurityEvent is an append-only record of a rejected or anomalous
// operation, consumed by an external monitoring collaborator.
type SecurityEvent struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	UserID    string    `json:"userId"`
	Operation string    `json:"operation"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}

// Security event names.
const (
	EventInvalidUserID       = "invalid_user_id"
	EventInvalidAmount       = "invalid_amount"
	EventRateLimited         = "rate_limited"
	EventInvalidAddress      = "invalid_address"
	EventInsufficientBalance = "insufficient_balance"
	EventBelowMinimum        = "below_minimum_exchange"
)

// NewSecurityEvent builds an event with sanitized fields. The identifier is
// sanitized again here so a rejected raw identifier never lands in the log
// verbatim.
func NewSecurityEvent(event, userID, operation, detail string) SecurityEvent {
	return SecurityEvent{
		Event:     event,
		UserID:    SanitizeUserID(userID),
		Operation: Sanitize(operation),
		Detail:    Sanitize(detail),
	}
}
