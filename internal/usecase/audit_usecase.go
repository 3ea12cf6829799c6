package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/sportiq/picoin/internal/domain"
)

// AuditUseCase keeps the bounded security event log. It implements AuditLog
// for the other use cases; failures to persist an event are logged and
// swallowed so auditing can never fail the audited operation.
type AuditUseCase struct {
	mu    sync.Mutex
	store StateStore
	idGen IDGenerator
	clock Clock
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(store StateStore, idGen IDGenerator, clock Clock) *AuditUseCase {
	return &AuditUseCase{
		store: store,
		idGen: idGen,
		clock: clock,
	}
}

// Record appends a security event to the capped log, newest first.
func (uc *AuditUseCase) Record(ctx context.Context, event domain.SecurityEvent) {
	if event.ID == "" {
		event.ID = uc.idGen.Generate()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = uc.clock.Now().UTC()
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	var events []domain.SecurityEvent
	if err := uc.store.LoadJSON(ctx, securityLogKey, &events); err != nil {
		log.Warn().Err(err).Str("event", event.Event).Msg("failed to load security log")
		return
	}

	events = append([]domain.SecurityEvent{event}, events...)
	if len(events) > MaxSecurityEvents {
		events = events[:MaxSecurityEvents]
	}

	if err := uc.store.StoreJSON(ctx, securityLogKey, events); err != nil {
		log.Warn().Err(err).Str("event", event.Event).Msg("failed to store security log")
	}
}

// List returns up to limit events, newest first.
func (uc *AuditUseCase) List(ctx context.Context, limit int) ([]domain.SecurityEvent, error) {
	if limit <= 0 || limit > MaxSecurityEvents {
		limit = MaxSecurityEvents
	}

	var events []domain.SecurityEvent
	if err := uc.store.LoadJSON(ctx, securityLogKey, &events); err != nil {
		return nil, fmt.Errorf("load security log: %w", err)
	}

	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
