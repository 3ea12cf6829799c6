package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestLogger_EmitsOneLine(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/supply", nil))

	line := buf.String()
	if !strings.Contains(line, `"status":418`) || !strings.Contains(line, `"path":"/api/v1/supply"`) {
		t.Errorf("unexpected log line: %s", line)
	}
	if !strings.Contains(line, `"bytes":5`) {
		t.Errorf("expected response size in log line: %s", line)
	}
}

func TestRecover_PanicBecomes500(t *testing.T) {
	h := Recover(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api/v1/wallets/alice", "/api/v1/wallets/:id"},
		{"/api/v1/wallets/alice/transactions", "/api/v1/wallets/:id/transactions"},
		{"/api/v1/supply", "/api/v1/supply"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Errorf("normalizePath(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
