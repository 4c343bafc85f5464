package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/trello-manager/internal/api"
	apiMiddleware "github.com/phrazzld/trello-manager/internal/api/middleware"
	"github.com/phrazzld/trello-manager/internal/config"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) (*application, *httptest.Server) {
	t.Helper()
	cfg := testConfig(config.StorageDriverMemory)
	if mutate != nil {
		mutate(cfg)
	}

	app, err := newApplication(context.Background(), cfg, testLogger())
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return app, srv
}

func send(t *testing.T, method, url, body string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealth(t *testing.T) {
	_, srv := newTestServer(t, nil)

	resp, body := send(t, http.MethodGet, srv.URL+"/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
	assert.NotEmpty(t, resp.Header.Get(apiMiddleware.TraceIDHeader))
}

func TestCardLifecycle(t *testing.T) {
	_, srv := newTestServer(t, nil)
	base := srv.URL + CardsBasePath

	resp, body := send(t, http.MethodPost, base, `{"type":"BUG","title":"mine","description":"crash on load"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var bug api.CardResponse
	require.NoError(t, json.Unmarshal(body, &bug))
	assert.Positive(t, bug.ID)
	assert.Equal(t, "crash on load", bug.Description)
	assert.Regexp(t, regexp.MustCompile(`^Bug-RandomWord-\d{1,3}$`), bug.Title)

	resp, body = send(t, http.MethodGet, fmt.Sprintf("%s/bug/%d", base, bug.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched api.CardResponse
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, bug.Title, fetched.Title)

	resp, body = send(t, http.MethodGet, base+"/BUG", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []api.CardResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)

	resp, body = send(t, http.MethodDelete, fmt.Sprintf("%s/bug/%d", base, bug.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"affected":1}`, string(body))

	resp, _ = send(t, http.MethodGet, fmt.Sprintf("%s/bug/%d", base, bug.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = send(t, http.MethodDelete, fmt.Sprintf("%s/bug/%d", base, bug.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateCardValidation(t *testing.T) {
	_, srv := newTestServer(t, nil)
	base := srv.URL + CardsBasePath

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"issue missing description", `{"type":"ISSUE","title":"Test"}`, "Invalid ISSUE card: missing description"},
		{"bug missing description", `{"type":"BUG","title":"x"}`, "Invalid BUG card: missing description"},
		{"task missing category", `{"type":"TASK","title":"x"}`, "Invalid TASK card: missing category"},
		{"task bad category", `{"type":"TASK","title":"x","category":"CHORE"}`, "Invalid TASK card: invalid category"},
		{"unknown type", `{"type":"EPIC","title":"x"}`, "Unsupported card type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := send(t, http.MethodPost, base, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errResp struct {
				Error   string `json:"error"`
				TraceID string `json:"trace_id"`
			}
			require.NoError(t, json.Unmarshal(body, &errResp))
			assert.Equal(t, tt.wantMsg, errResp.Error)
			assert.NotEmpty(t, errResp.TraceID)
		})
	}

	resp, body := send(t, http.MethodGet, base+"/issue", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body), "failed creates must not persist anything")
}

func TestVariantsAreIsolated(t *testing.T) {
	_, srv := newTestServer(t, nil)
	base := srv.URL + CardsBasePath

	resp, body := send(t, http.MethodPost, base, `{"type":"task","title":"benchmark","category":"research"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var task api.CardResponse
	require.NoError(t, json.Unmarshal(body, &task))
	assert.Equal(t, "RESEARCH", task.Category)

	resp, _ = send(t, http.MethodGet, fmt.Sprintf("%s/issue/%d", base, task.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthRequiredWhenConfigured(t *testing.T) {
	app, srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth.JWTSecret = "a-test-secret-that-is-at-least-32-chars"
	})
	base := srv.URL + CardsBasePath

	resp, _ := send(t, http.MethodGet, base+"/bug", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := app.jwtService.GenerateToken(context.Background(), "tester")
	require.NoError(t, err)

	resp, _ = send(t, http.MethodGet, base+"/bug", "", http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = send(t, http.MethodGet, srv.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "health stays public")
}

func TestRateLimit(t *testing.T) {
	_, srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.RateLimitPerMinute = 2
	})

	for i := 0; i < 2; i++ {
		resp, _ := send(t, http.MethodGet, srv.URL+"/health", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := send(t, http.MethodGet, srv.URL+"/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, string(body), "Too many requests")
}

func TestCORSPreflight(t *testing.T) {
	_, srv := newTestServer(t, nil)

	resp, _ := send(t, http.MethodOptions, srv.URL+CardsBasePath, "", http.Header{
		"Origin":                        {"http://localhost:3000"},
		"Access-Control-Request-Method": {http.MethodPost},
	})

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
