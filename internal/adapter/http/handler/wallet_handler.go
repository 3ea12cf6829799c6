package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sportiq/picoin/internal/adapter/http/dto"
	"github.com/sportiq/picoin/internal/domain"
	"github.com/sportiq/picoin/internal/usecase"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	GetBalance(ctx context.Context, userID string) (domain.BalanceRecord, error)
	GetTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
	TotalSupply(ctx context.Context) (int64, error)
	Leaderboard(ctx context.Context, limit int) ([]usecase.LeaderboardEntry, error)
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	ledgerUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerUC WalletService) *WalletHandler {
	return &WalletHandler{ledgerUC: ledgerUC}
}

// GetBalance returns a user's balance record.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	record, err := h.ledgerUC.GetBalance(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, "failed to get balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(record))
}

// GetTransactions returns a user's recent transactions, newest first.
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	txs, err := h.ledgerUC.GetTransactions(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, "failed to get transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txs))
}

// GetSupply returns the circulating supply across all users.
func (h *WalletHandler) GetSupply(w http.ResponseWriter, r *http.Request) {
	total, err := h.ledgerUC.TotalSupply(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to compute supply")
		return
	}

	writeJSON(w, http.StatusOK, dto.SupplyResponse{TotalSupply: total})
}

// GetLeaderboard returns the top users by balance, richest first.
func (h *WalletHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 0)

	entries, err := h.ledgerUC.Leaderboard(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err, "failed to build leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, dto.LeaderboardFromUseCase(entries))
}
