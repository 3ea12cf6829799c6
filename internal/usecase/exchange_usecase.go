package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/sportiq/picoin/internal/domain"
)

// ExchangeUseCase converts coins into the external asset at a fixed rate.
// Only the Requested -> Debited(Pending) transition happens here; settlement
// of the external transfer is driven by an outside collaborator.
type ExchangeUseCase struct {
	mu     sync.Mutex
	ledger Ledger
	store  StateStore
	audit  AuditLog
	idGen  IDGenerator
	clock  Clock
}

// NewExchangeUseCase creates a new ExchangeUseCase.
func NewExchangeUseCase(ledger Ledger, store StateStore, audit AuditLog, idGen IDGenerator, clock Clock) *ExchangeUseCase {
	return &ExchangeUseCase{
		ledger: ledger,
		store:  store,
		audit:  audit,
		idGen:  idGen,
		clock:  clock,
	}
}

// ExchangeResult reports a successful withdrawal request.
type ExchangeResult struct {
	WithdrawalID     string
	PiCoinsExchanged int64
	ExternalAmount   decimal.Decimal
}

// Exchange validates a withdrawal request, debits the ledger, and records a
// pending withdrawal. Validation failures are distinct errors with no state
// change; a failed debit aborts the whole exchange.
func (uc *ExchangeUseCase) Exchange(ctx context.Context, userID string, coinAmount int64, destinationAddress string) (*ExchangeResult, error) {
	cleanID := domain.SanitizeUserID(userID)
	if cleanID == "" {
		uc.audit.Record(ctx, domain.NewSecurityEvent(domain.EventInvalidUserID, userID, "exchange.create", "rejected empty or unusable user id"))
		return nil, domain.ErrInvalidUserID
	}
	address := domain.Sanitize(destinationAddress)

	if coinAmount < MinExchangeAmount {
		uc.audit.Record(ctx, domain.NewSecurityEvent(domain.EventBelowMinimum, cleanID, "exchange.create",
			fmt.Sprintf("requested %d, minimum is %d", coinAmount, MinExchangeAmount)))
		return nil, domain.ErrBelowMinimumExchange
	}

	// The balance check and the debit must not interleave with another
	// exchange for the same store, or two requests could both pass the check.
	uc.mu.Lock()
	defer uc.mu.Unlock()

	balance, err := uc.ledger.GetBalance(ctx, cleanID)
	if err != nil {
		return nil, err
	}
	if !balance.CanDebit(coinAmount) {
		uc.audit.Record(ctx, domain.NewSecurityEvent(domain.EventInsufficientBalance, cleanID, "exchange.create",
			fmt.Sprintf("requested %d, balance is %d", coinAmount, balance.Balance)))
		return nil, domain.ErrInsufficientBalance
	}

	if err := domain.ValidateAddress(address); err != nil {
		uc.audit.Record(ctx, domain.NewSecurityEvent(domain.EventInvalidAddress, cleanID, "exchange.create", "rejected malformed destination address"))
		return nil, err
	}

	externalAmount := decimal.NewFromInt(coinAmount).Div(decimal.NewFromInt(ExchangeRate))

	description := fmt.Sprintf("Exchanged %d Pi Coins for %s Pi", coinAmount, externalAmount.String())
	if _, err := uc.ledger.Append(ctx, cleanID, -coinAmount, domain.KindBonus, description); err != nil {
		return nil, fmt.Errorf("debit for exchange: %w", err)
	}

	record := domain.WithdrawalRecord{
		ID:                 uc.idGen.Generate(),
		UserID:             cleanID,
		PiCoinsExchanged:   coinAmount,
		ExternalAmount:     externalAmount,
		DestinationAddress: address,
		Timestamp:          uc.clock.Now().UTC(),
		Status:             domain.WithdrawalPending,
	}

	// The debit is committed; a failure to record the withdrawal must give
	// the coins back, or the user ends up debited with nothing pending.
	var history []domain.WithdrawalRecord
	if err := uc.store.LoadJSON(ctx, withdrawalsKey, &history); err != nil {
		uc.refund(ctx, cleanID, coinAmount)
		return nil, fmt.Errorf("load withdrawal history: %w", err)
	}
	history = append([]domain.WithdrawalRecord{record}, history...)
	if len(history) > MaxWithdrawalRecords {
		history = history[:MaxWithdrawalRecords]
	}
	if err := uc.store.StoreJSON(ctx, withdrawalsKey, history); err != nil {
		uc.refund(ctx, cleanID, coinAmount)
		return nil, fmt.Errorf("store withdrawal history: %w", err)
	}

	return &ExchangeResult{
		WithdrawalID:     record.ID,
		PiCoinsExchanged: coinAmount,
		ExternalAmount:   externalAmount,
	}, nil
}

func (uc *ExchangeUseCase) refund(ctx context.Context, userID string, amount int64) {
	description := fmt.Sprintf("Exchange reversal: %d Pi Coins returned", amount)
	if _, err := uc.ledger.Append(ctx, userID, amount, domain.KindBonus, description); err != nil {
		log.Error().Err(err).Str("user_id", userID).Int64("amount", amount).
			Msg("failed to refund aborted exchange")
	}
}

// ListWithdrawals returns the user's withdrawal records, newest first,
// filtered from the global capped history.
func (uc *ExchangeUseCase) ListWithdrawals(ctx context.Context, userID string) ([]domain.WithdrawalRecord, error) {
	cleanID := domain.SanitizeUserID(userID)

	var history []domain.WithdrawalRecord
	if err := uc.store.LoadJSON(ctx, withdrawalsKey, &history); err != nil {
		return nil, fmt.Errorf("load withdrawal history: %w", err)
	}

	var out []domain.WithdrawalRecord
	for _, rec := range history {
		if rec.UserID == cleanID {
			out = append(out, rec)
		}
	}
	return out, nil
}
