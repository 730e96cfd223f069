package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-records-portal/internal/platform/logger"
	"health-records-portal/internal/ports/auth"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
}

func (s stubVerifier) Verify(context.Context, string) (auth.Claims, error) {
	return s.claims, s.err
}

func echoUserID(w http.ResponseWriter, r *http.Request) {
	id, ok := UserID(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(id)
}

func TestAuthContext(t *testing.T) {
	tests := []struct {
		name       string
		verifier   auth.AuthVerifier
		allowDebug bool
		headers    map[string]string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "bearer ok",
			verifier:   stubVerifier{claims: auth.Claims{UserID: "7"}},
			headers:    map[string]string{"Authorization": "Bearer abc"},
			wantStatus: http.StatusOK,
			wantBody:   "7",
		},
		{
			name:       "bearer rejected",
			verifier:   stubVerifier{err: errors.New("bad")},
			headers:    map[string]string{"Authorization": "Bearer abc"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "debug header ignored outside dev",
			headers:    map[string]string{DebugUserHeader: "3"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "debug header in dev",
			allowDebug: true,
			headers:    map[string]string{DebugUserHeader: "3"},
			wantStatus: http.StatusOK,
			wantBody:   "3",
		},
		{
			name:       "non numeric user id",
			allowDebug: true,
			headers:    map[string]string{DebugUserHeader: "abc"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AuthContext(tt.verifier, tt.allowDebug)(http.HandlerFunc(echoUserID))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
			}
		})
	}
}

func TestRecover_ReturnsJSON500AndLogs(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: zerolog.DebugLevel, Format: logger.FormatJSON, Out: &buf})

	h := Recover(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chatbot", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "boom")
}

func TestRequestLog_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: zerolog.DebugLevel, Format: logger.FormatJSON, Out: &buf})

	h := RequestLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.Equal(t, "/health", entry["path"])
}
