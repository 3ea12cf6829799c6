package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sportiq/picoin/internal/adapter/http/dto"
	"github.com/sportiq/picoin/internal/infrastructure/metrics"
)

// RewardService defines the behavior needed by RewardHandler.
type RewardService interface {
	AwardQuizCompletion(ctx context.Context, userID string, score, total int) (int64, error)
	AwardDailyLogin(ctx context.Context, userID string) (int64, error)
	AwardPredictionCorrect(ctx context.Context, userID, match string) (int64, error)
	AwardWeeklyStreak(ctx context.Context, userID string) (int64, error)
	AwardMonthlyBonus(ctx context.Context, userID string) (int64, error)
	AwardWelcomeBonus(ctx context.Context, userID string) (int64, error)
}

// RewardHandler handles reward issuance HTTP requests.
type RewardHandler struct {
	rewardUC RewardService
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(rewardUC RewardService) *RewardHandler {
	return &RewardHandler{rewardUC: rewardUC}
}

// Quiz credits a quiz completion reward.
func (h *RewardHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	var req dto.QuizRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := h.rewardUC.AwardQuizCompletion(r.Context(), req.UserID, req.Score, req.Total)
	h.respond(w, "quiz", req.UserID, amount, err)
}

// DailyLogin credits the once-per-day login reward.
func (h *RewardHandler) DailyLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.UserRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := h.rewardUC.AwardDailyLogin(r.Context(), req.UserID)
	h.respond(w, "daily_login", req.UserID, amount, err)
}

// Prediction credits a correct-prediction reward.
func (h *RewardHandler) Prediction(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictionRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := h.rewardUC.AwardPredictionCorrect(r.Context(), req.UserID, req.Match)
	h.respond(w, "prediction", req.UserID, amount, err)
}

// WeeklyStreak credits the weekly streak bonus.
func (h *RewardHandler) WeeklyStreak(w http.ResponseWriter, r *http.Request) {
	var req dto.UserRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := h.rewardUC.AwardWeeklyStreak(r.Context(), req.UserID)
	h.respond(w, "weekly_streak", req.UserID, amount, err)
}

// MonthlyBonus credits the monthly activity bonus.
func (h *RewardHandler) MonthlyBonus(w http.ResponseWriter, r *http.Request) {
	var req dto.UserRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := h.rewardUC.AwardMonthlyBonus(r.Context(), req.UserID)
	h.respond(w, "monthly_bonus", req.UserID, amount, err)
}

// Welcome credits the one-time welcome bonus for new users.
func (h *RewardHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	var req dto.UserRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := h.rewardUC.AwardWelcomeBonus(r.Context(), req.UserID)
	h.respond(w, "welcome", req.UserID, amount, err)
}

func (h *RewardHandler) respond(w http.ResponseWriter, reward, userID string, amount int64, err error) {
	if err != nil {
		writeDomainError(w, err, "failed to issue reward")
		return
	}
	if amount > 0 {
		metrics.RewardsIssued.WithLabelValues(reward).Inc()
	}
	writeJSON(w, http.StatusOK, dto.RewardResponse{UserID: userID, Amount: amount})
}
