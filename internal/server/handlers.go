package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/reportero-ai/reportero/apimodels"
	"github.com/reportero-ai/reportero/internal/llm"
)

// Degraded model output still answers 200 with a typed fallback result;
// only genuine transport failures surface as error statuses. The UI
// depends on always receiving a narratively-shaped object.

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req apimodels.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	defer r.Body.Close()

	resp, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.logger.Error("analysis request failed", "error", err)
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCustomizeNarrative(w http.ResponseWriter, r *http.Request) {
	var req apimodels.NarrativeCustomizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	defer r.Body.Close()

	narrative := req.Narrative
	if narrative.ID == "" {
		narrative.ID = req.NarrativeID
	}

	updated, err := s.synthesizer.Customize(r.Context(), narrative, req.Modifications,
		llm.WithModel(req.Options.Model),
		llm.WithMaxTokens(req.Options.MaxTokens),
		llm.WithTemperature(req.Options.Temperature),
	)
	if err != nil {
		s.logger.Error("narrative customization failed", "error", err)
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleAssignments(w http.ResponseWriter, r *http.Request) {
	var req apimodels.AssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	defer r.Body.Close()

	assignments := s.assigner.SuggestAssignments(req.Sections, req.Areas)
	s.writeJSON(w, http.StatusOK, assignments)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	healthy := s.provider.HealthCheck(r.Context())
	status := "ok"
	if !healthy {
		status = "degraded"
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          status,
		"provider":        s.provider.Name(),
		"providerHealthy": healthy,
	})
}

// statusFor maps transport failures to 502 and everything else to 500.
func statusFor(err error) int {
	var terr *llm.TransportError
	if errors.As(err, &terr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
