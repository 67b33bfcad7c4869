package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportero-ai/reportero/apimodels"
	"github.com/reportero-ai/reportero/internal/analyzer"
	"github.com/reportero-ai/reportero/internal/assign"
	"github.com/reportero-ai/reportero/internal/config"
	"github.com/reportero-ai/reportero/internal/extract"
	"github.com/reportero-ai/reportero/internal/llm"
	"github.com/reportero-ai/reportero/internal/narrative"
	"github.com/reportero-ai/reportero/internal/normalize"
)

type stubProvider struct {
	response string
	err      error
	healthy  bool
}

func (s *stubProvider) GenerateText(context.Context, string, ...llm.Option) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubProvider) HealthCheck(context.Context) bool { return s.healthy }

func (s *stubProvider) Name() string { return "stub" }

func newTestServer(p llm.Provider) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	extractor := extract.New(logger)
	normalizer := normalize.New(logger)
	synthesizer := narrative.New(p, extractor, normalizer, logger)
	pipeline := analyzer.New(p, extractor, normalizer, synthesizer, 50, logger)
	assigner := assign.New(0.3, logger)

	cfg := config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: "0"}}
	return New(cfg, pipeline, synthesizer, assigner, p, logger)
}

func doRequest(s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleAnalyze(t *testing.T) {
	s := newTestServer(&stubProvider{
		response: `{"summary":"Revenue grew","insights":[],"trends":[],"recommendations":[]}`,
		healthy:  true,
	})

	rec := doRequest(s, http.MethodPost, "/api/v1/analyze", apimodels.AnalysisRequest{
		Data: [][]interface{}{{"Month", "Revenue"}, {"Jan", "100"}},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp apimodels.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Revenue grew", resp.Result.Summary)
	assert.Equal(t, "Revenue grew", resp.Narrative.Content)
}

func TestHandleAnalyzeDegradedStillReturns200(t *testing.T) {
	s := newTestServer(&stubProvider{response: "I cannot comply.", healthy: true})

	rec := doRequest(s, http.MethodPost, "/api/v1/analyze", apimodels.AnalysisRequest{
		Data: [][]interface{}{{"A"}, {"1"}},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp apimodels.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Metadata.Degraded)
	assert.Contains(t, resp.Result.Summary, "I cannot comply.")
}

func TestHandleAnalyzeTransportErrorIs502(t *testing.T) {
	s := newTestServer(&stubProvider{
		err: &llm.TransportError{Provider: "stub", StatusCode: 500, Body: "boom"},
	})

	rec := doRequest(s, http.MethodPost, "/api/v1/analyze", apimodels.AnalysisRequest{
		Data: [][]interface{}{{"A"}, {"1"}},
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleAnalyzeBadRequest(t *testing.T) {
	s := newTestServer(&stubProvider{healthy: true})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAssignments(t *testing.T) {
	s := newTestServer(&stubProvider{healthy: true})

	rec := doRequest(s, http.MethodPost, "/api/v1/assignments", apimodels.AssignmentRequest{
		Sections: []apimodels.PDFSection{{ID: "s1", Keywords: []string{"budget", "forecast"}}},
		Areas:    []apimodels.Area{{ID: 2, Name: "Finance"}},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var assignments []apimodels.AreaAssignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assignments))
	require.Len(t, assignments, 1)
	assert.Equal(t, 2, assignments[0].AreaID)
	assert.NotEmpty(t, assignments[0].Reasoning)
}

func TestHandleCustomizeNarrative(t *testing.T) {
	s := newTestServer(&stubProvider{
		response: `{"title":"T","content":"Edited.","keyPoints":[],"sections":{}}`,
		healthy:  true,
	})

	rec := doRequest(s, http.MethodPost, "/api/v1/narrative/customize", apimodels.NarrativeCustomizationRequest{
		NarrativeID:   "n-1",
		Narrative:     apimodels.NarrativeResult{Title: "Old", Content: "Old prose."},
		Modifications: "shorten it",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var updated apimodels.NarrativeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "n-1", updated.ID)
	assert.Equal(t, "Edited.", updated.Content)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&stubProvider{healthy: true})
	rec := doRequest(s, http.MethodGet, "/api/v1/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "stub", health["provider"])

	s = newTestServer(&stubProvider{healthy: false})
	rec = doRequest(s, http.MethodGet, "/api/v1/health", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "degraded", health["status"])
	assert.Equal(t, false, health["providerHealthy"])
}
