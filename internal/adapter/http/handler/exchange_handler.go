package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sportiq/picoin/internal/adapter/http/dto"
	"github.com/sportiq/picoin/internal/domain"
	"github.com/sportiq/picoin/internal/infrastructure/metrics"
	"github.com/sportiq/picoin/internal/usecase"
)

// ExchangeService defines the behavior needed by ExchangeHandler.
type ExchangeService interface {
	Exchange(ctx context.Context, userID string, coinAmount int64, destinationAddress string) (*usecase.ExchangeResult, error)
	ListWithdrawals(ctx context.Context, userID string) ([]domain.WithdrawalRecord, error)
}

// ExchangeHandler handles exchange and withdrawal HTTP requests.
type ExchangeHandler struct {
	exchangeUC ExchangeService
}

// NewExchangeHandler creates a new ExchangeHandler.
func NewExchangeHandler(exchangeUC ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeUC: exchangeUC}
}

// Create exchanges coins for the external asset and records a pending
// withdrawal.
func (h *ExchangeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	res, err := h.exchangeUC.Exchange(r.Context(), req.UserID, req.Amount, req.DestinationAddress)
	if err != nil {
		writeDomainError(w, err, "failed to create exchange")
		return
	}

	metrics.WithdrawalsCreated.Inc()
	writeJSON(w, http.StatusCreated, dto.ExchangeResponse{
		WithdrawalID:     res.WithdrawalID,
		PiCoinsExchanged: res.PiCoinsExchanged,
		ExternalAmount:   res.ExternalAmount,
		Status:           string(domain.WithdrawalPending),
	})
}

// ListByUser returns a user's withdrawal records, newest first.
func (h *ExchangeHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	records, err := h.exchangeUC.ListWithdrawals(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, "failed to list withdrawals")
		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalsFromDomain(records))
}
