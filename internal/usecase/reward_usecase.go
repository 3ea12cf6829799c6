package usecase

import (
	"context"
	"fmt"

	"github.com/sportiq/picoin/internal/domain"
)

// RewardUseCase translates application events into ledger credits. Amounts
// are fixed policy (see constants.go); idempotency rules live here, not in
// the ledger.
type RewardUseCase struct {
	ledger Ledger
	store  StateStore
	clock  Clock
}

// NewRewardUseCase creates a new RewardUseCase.
func NewRewardUseCase(ledger Ledger, store StateStore, clock Clock) *RewardUseCase {
	return &RewardUseCase{
		ledger: ledger,
		store:  store,
		clock:  clock,
	}
}

// AwardQuizCompletion credits the quiz reward, upgraded to the perfect-score
// amount when every question was answered correctly. Returns the amount
// actually credited; 0 when the underlying append was rejected.
func (uc *RewardUseCase) AwardQuizCompletion(ctx context.Context, userID string, score, total int) (int64, error) {
	if total <= 0 || score < 0 || score > total {
		return 0, domain.ErrInvalidQuizResult
	}

	amount := RewardQuizComplete
	description := fmt.Sprintf("Quiz completed: %d/%d", score, total)
	if score == total {
		amount = RewardQuizPerfect
		description = fmt.Sprintf("Perfect quiz score! %d/%d", score, total)
	}

	if _, err := uc.ledger.Append(ctx, userID, amount, domain.KindQuizComplete, description); err != nil {
		return 0, err
	}
	return amount, nil
}

// AwardDailyLogin credits the daily bonus at most once per calendar day per
// user, tracked by a plain date marker. A repeat call on the same day
// returns 0 with no side effects.
func (uc *RewardUseCase) AwardDailyLogin(ctx context.Context, userID string) (int64, error) {
	cleanID := domain.SanitizeUserID(userID)
	if cleanID == "" {
		return 0, domain.ErrInvalidUserID
	}

	today := uc.clock.Now().UTC().Format(lastLoginDateLayout)

	marker, err := uc.store.LoadRaw(ctx, lastLoginKeyPrefix+cleanID)
	if err != nil {
		return 0, fmt.Errorf("load login marker: %w", err)
	}
	if string(marker) == today {
		return 0, nil
	}

	// Credit first, mark the day after: a rejected append must leave the
	// bonus claimable on retry.
	if _, err := uc.ledger.Append(ctx, cleanID, RewardDailyLogin, domain.KindDailyLogin, "Daily login bonus"); err != nil {
		return 0, err
	}

	if err := uc.store.StoreRaw(ctx, lastLoginKeyPrefix+cleanID, []byte(today)); err != nil {
		return 0, fmt.Errorf("store login marker: %w", err)
	}
	return RewardDailyLogin, nil
}

// AwardPredictionCorrect credits the fixed prediction reward. The match
// label only feeds the transaction description.
func (uc *RewardUseCase) AwardPredictionCorrect(ctx context.Context, userID, match string) (int64, error) {
	description := "Correct prediction"
	if cleaned := domain.Sanitize(match); cleaned != "" {
		description = "Correct prediction: " + cleaned
	}

	if _, err := uc.ledger.Append(ctx, userID, RewardPredictionCorrect, domain.KindPredictionCorrect, description); err != nil {
		return 0, err
	}
	return RewardPredictionCorrect, nil
}

// AwardWeeklyStreak credits the weekly streak bonus. The cadence is decided
// by the external trigger, not here.
func (uc *RewardUseCase) AwardWeeklyStreak(ctx context.Context, userID string) (int64, error) {
	if _, err := uc.ledger.Append(ctx, userID, RewardWeeklyStreak, domain.KindBonus, "Weekly streak bonus"); err != nil {
		return 0, err
	}
	return RewardWeeklyStreak, nil
}

// AwardMonthlyBonus credits the monthly activity bonus. The cadence is
// decided by the external trigger, not here.
func (uc *RewardUseCase) AwardMonthlyBonus(ctx context.Context, userID string) (int64, error) {
	if _, err := uc.ledger.Append(ctx, userID, RewardMonthlyBonus, domain.KindBonus, "Monthly activity bonus"); err != nil {
		return 0, err
	}
	return RewardMonthlyBonus, nil
}

// AwardWelcomeBonus credits the one-time welcome bonus, issued only while no
// balance record exists for the user yet.
func (uc *RewardUseCase) AwardWelcomeBonus(ctx context.Context, userID string) (int64, error) {
	exists, err := uc.ledger.HasBalanceRecord(ctx, userID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}

	if _, err := uc.ledger.Append(ctx, userID, RewardWelcomeBonus, domain.KindBonus, "Welcome bonus"); err != nil {
		return 0, err
	}
	return RewardWelcomeBonus, nil
}
