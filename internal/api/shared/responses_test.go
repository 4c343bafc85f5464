package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/trello-manager/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithJSON(w, r, http.StatusCreated, map[string]int{"affected": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"affected":1}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/cards", nil)
	r = r.WithContext(WithTraceID(r.Context(), "trace-123"))

	RespondWithError(w, r, http.StatusNotFound, "Card not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Card not found", resp.Error)
	assert.Equal(t, "trace-123", resp.TraceID)
}

func TestRespondWithErrorNoTraceID(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithError(w, r, http.StatusBadRequest, "bad")

	assert.JSONEq(t, `{"error":"bad"}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "rate limited", status: http.StatusTooManyRequests, wantLevel: "WARN"},
		{name: "unauthorized", status: http.StatusUnauthorized, wantLevel: "WARN"},
		{name: "bad request", status: http.StatusBadRequest, wantLevel: "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/cards/trello-manager", nil)
			r = r.WithContext(logger.WithLogger(r.Context(), log))

			secretErr := errors.New("dial postgres://admin:pw@db:5432/cards failed")
			RespondWithErrorAndLog(w, r, tt.status, "An unexpected error occurred", secretErr)

			assert.Equal(t, tt.status, w.Code)
			assert.NotContains(t, w.Body.String(), "postgres://")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.NotContains(t, entry["error"], "admin:pw")
			assert.Equal(t, "*errors.errorString", entry["error_type"])
		})
	}
}
