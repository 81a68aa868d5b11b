package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/orchestrator"
)

type chatRequest struct {
	Message *string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status,omitempty"`
}

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status              string `json:"status"`
	KnowledgeBaseLoaded bool   `json:"knowledge_base_loaded"`
	TotalDocuments      int    `json:"total_documents"`

	// ProviderReachable is only reported for ?deep=1.
	ProviderReachable *bool `json:"provider_reachable,omitempty"`
}

// StatusResponse is the JSON response for GET /status.
type StatusResponse struct {
	Status         string                  `json:"status"`
	TotalDocuments int                     `json:"total_documents"`
	Categories     map[corpus.Category]int `json:"categories"`
	APIModel       string                  `json:"api_model"`
}

func (s *Server) handleChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&req); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "Message too large"})
				return
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
			return
		}
		if req.Message == nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing message field"})
			return
		}
		if strings.TrimSpace(*req.Message) == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Empty message"})
			return
		}

		ans := s.pipeline.Answer(r.Context(), *req.Message)
		s.metrics.ObserveAnswer(ans)

		if ans.Outcome == orchestrator.OutcomeInternal {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: ans.Text, Status: "error"})
			return
		}
		writeJSON(w, http.StatusOK, chatResponse{Response: ans.Text, Status: "success"})
	}
}

// handleHealth reports corpus readiness; ?deep=1 also pings the provider.
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := s.pipeline.Stats()
		resp := HealthResponse{
			Status:              "healthy",
			KnowledgeBaseLoaded: stats.TotalDocuments > 0,
			TotalDocuments:      stats.TotalDocuments,
		}

		if deep := r.URL.Query().Get("deep"); deep == "1" || deep == "true" {
			ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
			defer cancel()

			reachable := true
			if err := s.pipeline.Ping(ctx); err != nil {
				s.logger.Warn("provider ping failed", "error", err)
				reachable = false
			}
			resp.ProviderReachable = &reachable
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		stats := s.pipeline.Stats()
		writeJSON(w, http.StatusOK, StatusResponse{
			Status:         "online",
			TotalDocuments: stats.TotalDocuments,
			Categories:     stats.Categories,
			APIModel:       s.pipeline.Model(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
