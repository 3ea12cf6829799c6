package handler

import (
	"context"
	"net/http"

	"github.com/sportiq/picoin/internal/adapter/http/dto"
	"github.com/sportiq/picoin/internal/domain"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	List(ctx context.Context, limit int) ([]domain.SecurityEvent, error)
}

// AuditHandler handles security event HTTP requests.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// List returns recorded security events, newest first.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 0)

	events, err := h.auditUC.List(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err, "failed to list security events")
		return
	}

	writeJSON(w, http.StatusOK, dto.SecurityEventsFromDomain(events))
}
