package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/diffsense/internal/config"
	"github.com/aleister1102/diffsense/internal/differ"
)

func testConfig() *config.GlobalConfig {
	cfg := config.NewDefaultGlobalConfig()
	cfg.ServerConfig.PacingRPS = 0
	return cfg
}

func newTestServer(t *testing.T, cfg *config.GlobalConfig) *Server {
	t.Helper()
	s, err := NewBuilder(zerolog.Nop()).
		WithGlobalConfig(cfg).
		WithEngine(differ.NewEngine()).
		Build()
	require.NoError(t, err)
	return s
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestBuilder_RequiresConfigAndEngine(t *testing.T) {
	_, err := NewBuilder(zerolog.Nop()).WithEngine(differ.NewEngine()).Build()
	assert.Error(t, err)

	_, err = NewBuilder(zerolog.Nop()).WithGlobalConfig(testConfig()).Build()
	assert.Error(t, err)
}

func TestHandleDiff(t *testing.T) {
	s := newTestServer(t, testConfig())
	handler := s.routes()

	rec := postJSON(t, handler, "/api/v1/diff", DiffRequest{
		Original: "line one\nline two",
		Modified: "line one\nline 2",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp diffResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Cached)
	assert.Equal(t, 1, resp.Result.Stats.Unchanged)
	assert.Equal(t, 1, resp.Result.Stats.Modified)
}

func TestHandleDiff_SecondCallIsCached(t *testing.T) {
	s := newTestServer(t, testConfig())
	handler := s.routes()
	body := DiffRequest{Original: "a", Modified: "b"}

	first := postJSON(t, handler, "/api/v1/diff", body)
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(t, handler, "/api/v1/diff", body)
	require.Equal(t, http.StatusOK, second.Code)

	var resp diffResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
}

func TestHandleDiff_OptionOverrides(t *testing.T) {
	s := newTestServer(t, testConfig())
	handler := s.routes()

	semantic := true
	rec := postJSON(t, handler, "/api/v1/diff", DiffRequest{
		Original: "the quick brown fox",
		Modified: "the slow brown fox",
		Options: DiffOptionsPayload{
			Granularity:      "word",
			SemanticAnalysis: &semantic,
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp diffResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Result.Stats.Modified)
	for _, change := range resp.Result.Changes {
		if change.Kind == differ.ChangeModified {
			assert.NotNil(t, change.Similarity)
		}
	}
}

func TestHandleDiff_BadGranularity(t *testing.T) {
	s := newTestServer(t, testConfig())
	rec := postJSON(t, s.routes(), "/api/v1/diff", DiffRequest{
		Original: "a",
		Modified: "b",
		Options:  DiffOptionsPayload{Granularity: "token"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDiff_ThresholdOutOfRange(t *testing.T) {
	s := newTestServer(t, testConfig())
	threshold := 1.5
	rec := postJSON(t, s.routes(), "/api/v1/diff", DiffRequest{
		Original: "a",
		Modified: "b",
		Options:  DiffOptionsPayload{SimilarityThreshold: &threshold},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDiff_MalformedBody(t *testing.T) {
	s := newTestServer(t, testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/diff", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDiff_InputTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.DiffConfig.MaxInputBytes = 16
	s := newTestServer(t, cfg)

	rec := postJSON(t, s.routes(), "/api/v1/diff", DiffRequest{
		Original: strings.Repeat("a", 32),
		Modified: "b",
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleDiff_HTMLExtraction(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := postJSON(t, s.routes(), "/api/v1/diff", DiffRequest{
		Original: "<html><body><p>hello</p><script>x()</script></body></html>",
		Modified: "<html><body><p>hello</p></body></html>",
		HTML:     true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp diffResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// Script content is invisible, so the pages compare equal.
	assert.Equal(t, 1, resp.Result.Stats.Unchanged)
	assert.Zero(t, resp.Result.Stats.Total()-resp.Result.Stats.Unchanged)
}

func TestRateLimit_WindowExhaustion(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitConfig = config.RateLimitConfig{Enabled: true, WindowSecs: 60, MaxRequests: 2}
	s := newTestServer(t, cfg)
	handler := s.routes()

	body := DiffRequest{Original: "a", Modified: "b"}
	assert.Equal(t, http.StatusOK, postJSON(t, handler, "/api/v1/diff", body).Code)
	assert.Equal(t, http.StatusOK, postJSON(t, handler, "/api/v1/diff", body).Code)

	rec := postJSON(t, handler, "/api/v1/diff", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimit_ForwardedForSeparatesCallers(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitConfig = config.RateLimitConfig{Enabled: true, WindowSecs: 60, MaxRequests: 1}
	s := newTestServer(t, cfg)
	handler := s.routes()

	send := func(identity string) int {
		payload, err := json.Marshal(DiffRequest{Original: "a", Modified: "b"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/diff", bytes.NewReader(payload))
		req.Header.Set("X-Forwarded-For", identity)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

func TestHandleStreamDiff(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := postJSON(t, s.routes(), "/api/v1/diff/stream", DiffRequest{
		Original: "one\ntwo",
		Modified: "one\nthree",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/x-ndjson", rec.Header().Get("Content-Type"))

	var events []differ.ProgressEvent
	scanner := bufio.NewScanner(rec.Body)
	for scanner.Scan() {
		var event differ.ProgressEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		events = append(events, event)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, events, 2)
	assert.False(t, events[0].Complete)
	final := events[len(events)-1]
	assert.True(t, final.Complete)
	assert.Equal(t, 100.0, final.Progress)
	assert.Equal(t, 1, final.Partial.Stats.Modified)
}

func TestHandleInsights(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := postJSON(t, s.routes(), "/api/v1/diff/insights", DiffRequest{
		Original: "a\nb\nc\nd",
		Modified: "a\nb\nc\nD",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp insightsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Insights.TotalChanges)
	assert.InDelta(t, 25.0, resp.Insights.ChangePercentage, 1e-9)
	assert.Equal(t, differ.ImpactMedium, resp.Insights.Impact)
}

func TestHandleHealthz(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["cache_active"])
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/diff", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCallerIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:1234"
	assert.Equal(t, "192.0.2.7", callerIdentity(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 192.0.2.7")
	assert.Equal(t, "203.0.113.9", callerIdentity(req))
}
