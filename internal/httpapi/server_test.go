package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"insurance-agent/internal/domain"
	"insurance-agent/internal/respond"
	"insurance-agent/internal/usecase"
)

type stubService struct {
	askOut     usecase.AskOutput
	askErr     error
	askIn      usecase.AskInput
	history    []domain.ChatMessage
	historyErr error
	historyID  string
}

func (s *stubService) Ask(_ context.Context, in usecase.AskInput) (usecase.AskOutput, error) {
	s.askIn = in
	return s.askOut, s.askErr
}

func (s *stubService) History(_ context.Context, conversationID string) ([]domain.ChatMessage, error) {
	s.historyID = conversationID
	return s.history, s.historyErr
}

func newTestServer(t *testing.T, service askService) *Server {
	t.Helper()
	s, err := NewServer(service, discardLogger(), RateLimitConfig{})
	require.NoError(t, err)
	return s
}

func parseBody[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func TestNewServer_ValidatesService(t *testing.T) {
	_, err := NewServer(nil, nil, RateLimitConfig{})
	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &stubService{})

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestAnswer_HappyPath(t *testing.T) {
	service := &stubService{askOut: usecase.AskOutput{
		Answer:         "CTPL is required by law.",
		Category:       respond.CategoryDefinition,
		ConversationID: "conv-1",
	}}
	s := newTestServer(t, service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/answer",
		strings.NewReader(`{"question":"what is ctpl?","conversationId":"conv-1"}`))
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, usecase.AskInput{Question: "what is ctpl?", ConversationID: "conv-1"}, service.askIn)
	require.NotEmpty(t, rr.Header().Get(requestIDHeader))

	out := parseBody[answerResponse](t, rr.Body.String())
	require.Equal(t, "CTPL is required by law.", out.Answer)
	require.Equal(t, "conv-1", out.ConversationID)
	require.Equal(t, "definition", out.Category)
}

func TestAnswer_MalformedBody(t *testing.T) {
	s := newTestServer(t, &stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/answer", strings.NewReader("not-json"))
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	out := parseBody[errorResponse](t, rr.Body.String())
	require.Equal(t, string(usecase.ErrorInvalidInput), out.Error)
	require.Equal(t, "malformed_body", out.Reason)
}

func TestAnswer_MapsUseCaseErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "invalid input", err: &usecase.Error{Code: usecase.ErrorInvalidInput, Reason: "empty_question"}, status: http.StatusBadRequest, code: string(usecase.ErrorInvalidInput)},
		{name: "internal", err: &usecase.Error{Code: usecase.ErrorInternal, Reason: "state_save_error"}, status: http.StatusInternalServerError, code: string(usecase.ErrorInternal)},
		{name: "unexpected", err: errors.New("boom"), status: http.StatusInternalServerError, code: string(usecase.ErrorInternal)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, &stubService{askErr: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/answer",
				strings.NewReader(`{"question":"what is ctpl?"}`))
			rr := httptest.NewRecorder()
			s.ServeHTTP(rr, req)

			require.Equal(t, tc.status, rr.Code)
			out := parseBody[errorResponse](t, rr.Body.String())
			require.Equal(t, tc.code, out.Error)
		})
	}
}

func TestHistory_HappyPath(t *testing.T) {
	service := &stubService{history: []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "what is ctpl?"},
		{Role: domain.RoleAssistant, Content: "CTPL is required by law."},
	}}
	s := newTestServer(t, service)

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/conversations/conv-1", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "conv-1", service.historyID)

	out := parseBody[historyResponse](t, rr.Body.String())
	require.Equal(t, "conv-1", out.ConversationID)
	require.Len(t, out.Messages, 2)
	require.Equal(t, domain.RoleAssistant, out.Messages[1].Role)
}

func TestHistory_UnknownConversationReturnsEmptyList(t *testing.T) {
	s := newTestServer(t, &stubService{history: nil})

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/conversations/unknown", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"messages":[]`)
}

func TestHistory_ServiceError(t *testing.T) {
	s := newTestServer(t, &stubService{
		historyErr: &usecase.Error{Code: usecase.ErrorInternal, Reason: "state_history_error"},
	})

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/conversations/conv-1", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestIndex_ServesEmbeddedPage(t *testing.T) {
	s := newTestServer(t, &stubService{})

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	require.Contains(t, rr.Body.String(), "Car Insurance Chatbot")
}

func TestAnswerRoute_RateLimited(t *testing.T) {
	s, err := NewServer(&stubService{}, discardLogger(), RateLimitConfig{RequestsPerMinute: 60, Burst: 1})
	require.NoError(t, err)

	body := `{"question":"what is ctpl?"}`

	first := httptest.NewRecorder()
	s.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/v1/answer", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	s.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/v1/answer", strings.NewReader(body)))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.Equal(t, "1", second.Header().Get("Retry-After"))

	// The health route sits outside the limited group.
	health := httptest.NewRecorder()
	s.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, health.Code)
}
