package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sportiq/picoin/internal/adapter/http/dto"
	"github.com/sportiq/picoin/internal/domain"
	"github.com/sportiq/picoin/internal/usecase"
)

type exchangeServiceStub struct {
	exchangeFn func(ctx context.Context, userID string, coinAmount int64, destinationAddress string) (*usecase.ExchangeResult, error)
	listFn     func(ctx context.Context, userID string) ([]domain.WithdrawalRecord, error)
}

func (s *exchangeServiceStub) Exchange(ctx context.Context, userID string, coinAmount int64, destinationAddress string) (*usecase.ExchangeResult, error) {
	return s.exchangeFn(ctx, userID, coinAmount, destinationAddress)
}

func (s *exchangeServiceStub) ListWithdrawals(ctx context.Context, userID string) ([]domain.WithdrawalRecord, error) {
	return s.listFn(ctx, userID)
}

func TestExchangeHandler_Create_Success(t *testing.T) {
	var gotUser string
	var gotAmount int64

	handler := NewExchangeHandler(&exchangeServiceStub{
		exchangeFn: func(ctx context.Context, userID string, coinAmount int64, destinationAddress string) (*usecase.ExchangeResult, error) {
			gotUser, gotAmount = userID, coinAmount
			return &usecase.ExchangeResult{
				WithdrawalID:     "wd-1",
				PiCoinsExchanged: coinAmount,
				ExternalAmount:   decimal.NewFromInt(5),
			}, nil
		},
	})

	body, _ := json.Marshal(dto.ExchangeRequest{
		UserID:             "user_1",
		Amount:             1000,
		DestinationAddress: "GDW6AUTBXTOC7FIKUO5BOO3OGLK4SF7ZPOBLMQHMZDI45J2Z6VXRB5NR",
	})

	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/exchange", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotUser != "user_1" || gotAmount != 1000 {
		t.Fatalf("expected input to match request, got user=%s amount=%d", gotUser, gotAmount)
	}

	var resp dto.ExchangeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.WithdrawalID != "wd-1" || resp.Status != "pending" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestExchangeHandler_Create_InvalidBody(t *testing.T) {
	handler := NewExchangeHandler(&exchangeServiceStub{
		exchangeFn: func(ctx context.Context, userID string, coinAmount int64, destinationAddress string) (*usecase.ExchangeResult, error) {
			t.Fatal("Exchange should not be called")
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/exchange", bytes.NewBufferString("{bad json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExchangeHandler_Create_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"below minimum", domain.ErrBelowMinimumExchange, http.StatusBadRequest},
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{"invalid address", domain.ErrInvalidAddress, http.StatusBadRequest},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewExchangeHandler(&exchangeServiceStub{
				exchangeFn: func(ctx context.Context, userID string, coinAmount int64, destinationAddress string) (*usecase.ExchangeResult, error) {
					return nil, tt.err
				},
			})

			body, _ := json.Marshal(dto.ExchangeRequest{UserID: "user_1", Amount: 1000})
			rec := httptest.NewRecorder()
			handler.Create(rec, httptest.NewRequest(http.MethodPost, "/exchange", bytes.NewReader(body)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestExchangeHandler_ListByUser(t *testing.T) {
	handler := NewExchangeHandler(&exchangeServiceStub{
		listFn: func(ctx context.Context, userID string) ([]domain.WithdrawalRecord, error) {
			return []domain.WithdrawalRecord{
				{ID: "wd-1", UserID: userID, PiCoinsExchanged: 1000, Status: domain.WithdrawalPending},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.ListByUser(rec, requestWithUserID(http.MethodGet, "/wallets/user_1/withdrawals", "user_1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []dto.WithdrawalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "wd-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
