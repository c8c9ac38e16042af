// Package httpapi serves the local chat shell: a chi router exposing the
// answer and history endpoints plus the embedded single-page UI.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"insurance-agent/internal/domain"
	"insurance-agent/internal/usecase"
	"insurance-agent/web"
)

const requestTimeout = 15 * time.Second

// askService is the orchestration surface the server exposes over HTTP.
type askService interface {
	Ask(ctx context.Context, in usecase.AskInput) (usecase.AskOutput, error)
	History(ctx context.Context, conversationID string) ([]domain.ChatMessage, error)
}

type Server struct {
	service   askService
	logger    *slog.Logger
	rateLimit RateLimitConfig
	router    *chi.Mux
}

// NewServer wires the router. The returned Server is an http.Handler.
func NewServer(service askService, logger *slog.Logger, rateLimit RateLimitConfig) (*Server, error) {
	if service == nil {
		return nil, errors.New("httpapi: service must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{service: service, logger: logger, rateLimit: rateLimit}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestID())
	r.Use(Logging(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimit(s.rateLimit, s.logger))
		r.Post("/answer", s.handleAnswer)
		r.Get("/conversations/{id}", s.handleHistory)
	})

	r.Get("/", s.handleIndex)

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type answerRequest struct {
	Question       string `json:"question"`
	ConversationID string `json:"conversationId"`
}

type answerResponse struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversationId"`
	Category       string `json:"category"`
}

type historyResponse struct {
	ConversationID string               `json:"conversationId"`
	Messages       []domain.ChatMessage `json:"messages"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(usecase.ErrorInvalidInput), "malformed_body")
		return
	}

	out, err := s.service.Ask(r.Context(), usecase.AskInput{
		Question:       req.Question,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		s.respondUseCaseError(w, r, err)
		return
	}

	s.logger.InfoContext(r.Context(), "question answered", appendRequestID(r.Context(), []any{
		"category", out.Category,
		"conversationId", out.ConversationID,
	})...)
	respondJSON(w, http.StatusOK, answerResponse{
		Answer:         out.Answer,
		ConversationID: out.ConversationID,
		Category:       string(out.Category),
	})
}

// handleHistory returns the persisted turns of one conversation so a
// reloaded page can re-render its session. Unknown IDs yield an empty
// message list, not 404.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")

	messages, err := s.service.History(r.Context(), conversationID)
	if err != nil {
		s.respondUseCaseError(w, r, err)
		return
	}
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	respondJSON(w, http.StatusOK, historyResponse{
		ConversationID: conversationID,
		Messages:       messages,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(web.Index)
}

func (s *Server) respondUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "request failed", appendRequestID(r.Context(), []any{"error", err})...)

	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		status := http.StatusInternalServerError
		if ucErr.Code == usecase.ErrorInvalidInput {
			status = http.StatusBadRequest
		}
		respondError(w, status, string(ucErr.Code), ucErr.Reason)
		return
	}
	respondError(w, http.StatusInternalServerError, string(usecase.ErrorInternal), "unexpected_error")
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, reason string) {
	respondJSON(w, status, errorResponse{Error: code, Reason: reason})
}
