package domain

import (
	"regexp"
	"strings"
)

// Validation constants
const (
	MaxInputLength  = 1000
	MaxUserIDLength = 64

	// MaxSingleTransaction bounds the absolute value of any single delta.
	MaxSingleTransaction = 10_000
)

// Wallet addresses start with the network prefix followed by at least 24
// alphanumeric characters.
var addressRegex = regexp.MustCompile(`^G[A-Za-z0-9]{24,}$`)

// Characters stripped from free text before it reaches persisted state.
var unsafeChars = strings.NewReplacer(
	"<", "",
	">", "",
	`"`, "",
	"/", "",
	`\`, "",
	"&", "",
)

// Sanitize strips characters that could corrupt stored JSON or leak into a
// downstream renderer, trims whitespace, and caps the length. It never
// fails; unusable input degrades to an empty string.
func Sanitize(input string) string {
	cleaned := strings.TrimSpace(unsafeChars.Replace(input))
	if len(cleaned) > MaxInputLength {
		cleaned = cleaned[:MaxInputLength]
	}
	return cleaned
}

// SanitizeUserID reduces an identifier to the allowed alphabet
// (alphanumerics, underscore, hyphen). Returns "" for anything unusable.
func SanitizeUserID(userID string) string {
	cleaned := Sanitize(userID)

	var b strings.Builder
	for _, r := range cleaned {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
		if b.Len() >= MaxUserIDLength {
			break
		}
	}
	return b.String()
}

// ValidateAddress checks a sanitized destination address against the
// required wallet address format.
func ValidateAddress(address string) error {
	if !addressRegex.MatchString(address) {
		return ErrInvalidAddress
	}
	return nil
}

// ValidateAmount checks a signed transaction amount against the
// single-transaction limit.
func ValidateAmount(amount int64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	if amount > MaxSingleTransaction || amount < -MaxSingleTransaction {
		return ErrAmountTooLarge
	}
	return nil
}
