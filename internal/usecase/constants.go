package usecase

import "time"

// Reward amounts. These values are part of the external contract and must
// not drift.
const (
	RewardQuizComplete      int64 = 10
	RewardQuizPerfect       int64 = 25
	RewardDailyLogin        int64 = 5
	RewardPredictionCorrect int64 = 15
	RewardWeeklyStreak      int64 = 50
	RewardMonthlyBonus      int64 = 100
	RewardWelcomeBonus      int64 = 50
)

// Exchange parameters.
const (
	// MinExchangeAmount is the smallest withdrawal, in coins.
	MinExchangeAmount int64 = 1000

	// ExchangeRate is how many coins buy one unit of the external asset.
	ExchangeRate int64 = 200
)

// Ledger bounds.
const (
	// MaxTransactionLogEntries caps the global recent-activity log. Older
	// entries are evicted; their cumulative effect stays in the balances.
	MaxTransactionLogEntries = 100

	// MaxUserTransactionView caps how many entries a per-user query returns.
	MaxUserTransactionView = 20

	// MaxWithdrawalRecords caps the withdrawal history across all users.
	MaxWithdrawalRecords = 100

	// MaxSecurityEvents caps the security audit log.
	MaxSecurityEvents = 100

	// MaxTransactionsPerMinute is the per-user mutation rate limit.
	MaxTransactionsPerMinute = 20

	// RateLimitWindow is the span the transaction counter covers.
	RateLimitWindow = time.Minute

	// DefaultLeaderboardSize is how many entries a leaderboard query returns
	// when the caller gives no limit.
	DefaultLeaderboardSize = 10

	// MaxLeaderboardSize caps a caller-supplied leaderboard limit.
	MaxLeaderboardSize = 100
)

// Store keys for the persisted tables.
const (
	balancesKey     = "pi_coin_data"
	transactionsKey = "pi_coin_transactions"
	withdrawalsKey  = "pi_withdrawals"
	securityLogKey  = "security_logs"

	lastLoginKeyPrefix = "last_login_"
)

// lastLoginDateLayout formats the per-user daily-login marker.
const lastLoginDateLayout = "2006-01-02"
