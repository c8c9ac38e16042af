// Package handler adapts API Gateway proxy events to the ask service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"insurance-agent/internal/usecase"
)

// useCase is the operation consumed by the handler.
type useCase interface {
	Ask(ctx context.Context, in usecase.AskInput) (usecase.AskOutput, error)
}

type Handler struct {
	uc useCase
}

func NewHandler(uc useCase) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: usecase must not be nil")
	}
	return &Handler{uc: uc}, nil
}

type askRequest struct {
	Question       string `json:"question"`
	ConversationID string `json:"conversationId"`
}

type askResponse struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversationId"`
	Category       string `json:"category"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// Handle answers one question event. Transport-level failures are
// returned as proxy responses, never as Go errors, so API Gateway always
// gets a well-formed reply.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := correlationIDFrom(event.Headers)

	var req askRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		return errorResp(http.StatusBadRequest, string(usecase.ErrorInvalidInput), "malformed_body", correlationID), nil
	}

	out, err := h.uc.Ask(ctx, usecase.AskInput{
		Question:       req.Question,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		slog.ErrorContext(ctx, "ask failed", "error", err, "correlationId", correlationID)
		return mapError(err, correlationID), nil
	}

	slog.InfoContext(ctx, "question answered",
		"category", out.Category,
		"conversationId", out.ConversationID,
		"correlationId", correlationID,
	)
	return jsonResp(http.StatusOK, askResponse{
		Answer:         out.Answer,
		ConversationID: out.ConversationID,
		Category:       string(out.Category),
	}, correlationID), nil
}

func mapError(err error, correlationID string) events.APIGatewayProxyResponse {
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		status := http.StatusInternalServerError
		if ucErr.Code == usecase.ErrorInvalidInput {
			status = http.StatusBadRequest
		}
		return errorResp(status, string(ucErr.Code), ucErr.Reason, correlationID)
	}
	return errorResp(http.StatusInternalServerError, string(usecase.ErrorInternal), "unexpected_error", correlationID)
}

// correlationIDFrom returns the caller's correlation ID header,
// case-insensitively, minting one when absent.
func correlationIDFrom(headers map[string]string) string {
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == "X-Correlation-Id" && v != "" {
			return v
		}
	}
	return uuid.NewString()
}

func jsonResp(status int, body any, correlationID string) events.APIGatewayProxyResponse {
	b, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":     "application/json",
			"X-Correlation-Id": correlationID,
		},
		Body: string(b),
	}
}

func errorResp(status int, code, reason, correlationID string) events.APIGatewayProxyResponse {
	return jsonResp(status, errorResponse{Error: code, Reason: reason}, correlationID)
}
