package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"insurance-agent/internal/domain"
	"insurance-agent/internal/respond"
)

const (
	defaultMaxHistory    = 50
	defaultMaxQuestion   = 300
	maxConversationTurns = 50
)

// Responder evaluates a question against the knowledge base. It is pure
// and never fails.
type Responder interface {
	Evaluate(question string) respond.Result
}

// ConversationStore persists completed question/answer exchanges keyed
// by conversation ID.
type ConversationStore interface {
	TurnCount(ctx context.Context, conversationID string) (int, error)
	History(ctx context.Context, conversationID string, limit int) ([]domain.Exchange, error)
	SaveExchange(ctx context.Context, conversationID, question, answer, category string, turns int) error
}

type AskService struct {
	responder       Responder
	state           ConversationStore
	maxHistoryItems int
	maxQuestionLen  int
}

type AskInput struct {
	Question       string
	ConversationID string
}

type AskOutput struct {
	Answer         string
	Category       respond.Category
	ConversationID string
}

func NewAskService(r Responder, s ConversationStore, maxHistoryItems, maxQuestionLen int) (*AskService, error) {
	if r == nil {
		return nil, errors.New("usecase: responder must not be nil")
	}
	if s == nil {
		return nil, errors.New("usecase: state store must not be nil")
	}
	if maxHistoryItems <= 0 {
		maxHistoryItems = defaultMaxHistory
	}
	if maxQuestionLen <= 0 {
		maxQuestionLen = defaultMaxQuestion
	}
	return &AskService{
		responder:       r,
		state:           s,
		maxHistoryItems: maxHistoryItems,
		maxQuestionLen:  maxQuestionLen,
	}, nil
}

// Ask answers one question and records the exchange. The conversation ID
// is minted when absent so the caller can thread follow-up questions.
func (s *AskService) Ask(ctx context.Context, in AskInput) (AskOutput, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return AskOutput{}, newError(ErrorInvalidInput, "empty_question", nil)
	}
	if len(question) > s.maxQuestionLen {
		return AskOutput{}, newError(ErrorInvalidInput, "question_too_long", nil)
	}

	convID := strings.TrimSpace(in.ConversationID)
	existingTurns := 0
	if convID == "" {
		convID = newUUID()
	} else {
		turnCount, err := s.state.TurnCount(ctx, convID)
		if err != nil {
			return AskOutput{}, newError(ErrorInternal, "state_turn_count_error", err)
		}
		existingTurns = turnCount
		if existingTurns >= maxConversationTurns {
			return AskOutput{}, newError(ErrorInvalidInput, "conversation_turn_limit", nil)
		}
	}

	result := s.responder.Evaluate(question)

	if err := s.state.SaveExchange(ctx, convID, question, result.Answer, string(result.Category), existingTurns+1); err != nil {
		return AskOutput{}, newError(ErrorInternal, "state_save_error", err)
	}

	return AskOutput{
		Answer:         result.Answer,
		Category:       result.Category,
		ConversationID: convID,
	}, nil
}

// History returns the completed exchanges of a conversation expanded
// into chronological chat messages.
func (s *AskService) History(ctx context.Context, conversationID string) ([]domain.ChatMessage, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return nil, newError(ErrorInvalidInput, "empty_conversation_id", nil)
	}
	exchanges, err := s.state.History(ctx, conversationID, s.maxHistoryItems)
	if err != nil {
		return nil, newError(ErrorInternal, "state_history_error", err)
	}
	messages := make([]domain.ChatMessage, 0, len(exchanges)*2)
	for _, ex := range exchanges {
		if ex.Answer == "" {
			continue
		}
		messages = append(messages,
			domain.ChatMessage{Role: domain.RoleUser, Content: ex.Question},
			domain.ChatMessage{Role: domain.RoleAssistant, Content: ex.Answer},
		)
	}
	return messages, nil
}

var newUUID = func() string {
	return uuid.NewString()
}
