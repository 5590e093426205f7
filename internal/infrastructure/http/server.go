// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tanaybasak/lawai/internal/config"
	"github.com/tanaybasak/lawai/internal/domain/entities"
	"github.com/tanaybasak/lawai/internal/domain/usecases"
	"github.com/tanaybasak/lawai/internal/metrics"
)

// Server is the HTTP server for the legal assistant API.
type Server struct {
	assistant    *usecases.Assistant
	metrics      *metrics.Metrics
	legalSources []config.LegalSource
	addr         string
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewServer creates the HTTP server around an injected assistant.
func NewServer(assistant *usecases.Assistant, m *metrics.Metrics, cfg *config.AppConfig) *Server {
	return &Server{
		assistant:    assistant,
		metrics:      m,
		legalSources: cfg.LegalSources,
		addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		readTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
		writeTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
	}
}

// Handler builds the route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/query", s.handleQuery)
	mux.HandleFunc("/query-stream", s.handleQueryStream)
	mux.HandleFunc("/reload-documents", s.handleReload)
	mux.HandleFunc("/generate-agreement", s.handleGenerateAgreement)
	mux.HandleFunc("/legal-sources", s.handleLegalSources)
	mux.Handle("/metrics", metrics.Handler())

	return corsMiddleware(s.loggingMiddleware(mux))
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout, // long: covers streaming responses
	}

	log.Info().Str("addr", s.addr).Msg("server starting")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type queryRequest struct {
	Question    string              `json:"question"`
	ChatHistory []entities.ChatTurn `json:"chat_history"`
	Domain      string              `json:"domain,omitempty"`
}

type queryResponse struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources"`
	Success  bool     `json:"success"`
}

type agreementRequest struct {
	AgreementType string `json:"agreement_type"`
	Requirements  string `json:"requirements"`
	IsMutual      *bool  `json:"is_mutual"`
}

type agreementResponse struct {
	AgreementType string   `json:"agreement_type"`
	Document      string   `json:"document"`
	ClausesUsed   []string `json:"clauses_used"`
	Sources       []string `json:"sources"`
	Success       bool     `json:"success"`
}

// handleHealth reports service and index readiness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"index_ready": s.assistant.Ready(),
	})
}

// handleQuery processes a blocking legal query.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeQueryRequest(w, r)
	if !ok {
		return
	}

	result, err := s.assistant.Query(r.Context(), req.Question, req.ChatHistory, entities.Domain(req.Domain))
	if err != nil {
		s.metrics.QueriesTotal.WithLabelValues("blocking", "error").Inc()
		writeAssistantError(w, err)
		return
	}

	s.metrics.QueriesTotal.WithLabelValues("blocking", "ok").Inc()
	s.metrics.RetrievedPassages.Observe(float64(len(result.Sources)))
	writeJSON(w, http.StatusOK, queryResponse{
		Question: result.Question,
		Answer:   result.Answer,
		Sources:  result.Sources,
		Success:  true,
	})
}

// handleQueryStream processes a legal query with a server-push event stream.
// Each event is a JSON payload framed as an SSE data line; the sequence ends
// with a literal [DONE] sentinel, or early after an error event.
func (s *Server) handleQueryStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeQueryRequest(w, r)
	if !ok {
		return
	}

	events, err := s.assistant.QueryStream(r.Context(), req.Question, req.ChatHistory, entities.Domain(req.Domain))
	if err != nil {
		s.metrics.QueriesTotal.WithLabelValues("streaming", "error").Inc()
		writeAssistantError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	for ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()

		if ev.Type == entities.StreamError {
			// Terminate early: no [DONE] after an error event.
			s.metrics.QueriesTotal.WithLabelValues("streaming", "error").Inc()
			return
		}
		if ev.Type == entities.StreamSources {
			s.metrics.RetrievedPassages.Observe(float64(len(ev.Sources)))
		}
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
	s.metrics.QueriesTotal.WithLabelValues("streaming", "ok").Inc()
}

// handleReload re-runs index loading to pick up rebuilt indexes.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.assistant.Reload(r.Context()); err != nil {
		log.Error().Err(err).Msg("reload failed")
		writeError(w, http.StatusInternalServerError, "error reloading documents")
		return
	}

	s.metrics.ReloadsTotal.Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Documents reloaded successfully",
		"success": true,
	})
}

// handleGenerateAgreement drafts an agreement from the clause libraries.
func (s *Server) handleGenerateAgreement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req agreementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AgreementType == "" {
		writeError(w, http.StatusBadRequest, "agreement_type is required")
		return
	}
	isMutual := true
	if req.IsMutual != nil {
		isMutual = *req.IsMutual
	}

	result, err := s.assistant.GenerateAgreement(r.Context(), req.AgreementType, req.Requirements, isMutual)
	if err != nil {
		writeAssistantError(w, err)
		return
	}

	s.metrics.AgreementsTotal.Inc()
	writeJSON(w, http.StatusOK, agreementResponse{
		AgreementType: result.AgreementType,
		Document:      result.Document,
		ClausesUsed:   result.ClausesUsed,
		Sources:       result.Sources,
		Success:       true,
	})
}

// handleLegalSources lists the configured legal acts.
func (s *Server) handleLegalSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sources": s.legalSources,
		"success": true,
	})
}

// decodeQueryRequest parses and validates the shared query request body.
func (s *Server) decodeQueryRequest(w http.ResponseWriter, r *http.Request) (*queryRequest, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return nil, false
	}
	for _, turn := range req.ChatHistory {
		if !turn.Role.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid chat history role: %q", turn.Role))
			return nil, false
		}
	}
	if req.Domain != "" && !entities.Domain(req.Domain).Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown domain: %q", req.Domain))
		return nil, false
	}
	return &req, true
}

// writeAssistantError maps the error taxonomy onto HTTP statuses without
// leaking internals.
func writeAssistantError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecases.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, "legal assistant not initialized")
	case errors.Is(err, usecases.ErrUnknownDomain):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("query failed")
		writeError(w, http.StatusInternalServerError, "error processing query")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   msg,
		"success": false,
	})
}
