package domain

import "errors"

var (
	// Ledger errors
	ErrInvalidUserID  = errors.New("user id is empty or invalid")
	ErrInvalidAmount  = errors.New("amount must be a non-zero integer")
	ErrAmountTooLarge = errors.New("amount exceeds the single-transaction limit")
	ErrInvalidKind    = errors.New("unknown transaction kind")
	ErrRateLimited    = errors.New("transaction rate limit exceeded")

	// Exchange errors
	ErrBelowMinimumExchange = errors.New("amount below the minimum exchange")
	ErrInsufficientBalance  = errors.New("balance does not cover the requested amount")
	ErrInvalidAddress       = errors.New("destination address is not a valid wallet address")

	// Reward errors
	ErrInvalidQuizResult = errors.New("quiz score/total out of range")
)
