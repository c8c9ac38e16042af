package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"insurance-agent/internal/domain"
)

const (
	skPrefixExchange = "EXCH#"
	skMeta           = "META#"
	ttlDuration      = 30 * 24 * time.Hour // 30-day TTL
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store defines the conversation state operations consumed by the ask
// service. Both the DynamoDB client and the in-memory store satisfy it.
type Store interface {
	TurnCount(ctx context.Context, conversationID string) (int, error)
	History(ctx context.Context, conversationID string, limit int) ([]domain.Exchange, error)
	SaveExchange(ctx context.Context, conversationID, question, answer, category string, turns int) error
}

// Client wraps a DynamoDB table for conversation state.
type Client struct {
	api       dynamodbAPI
	tableName string
}

var _ Store = (*Client)(nil)

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

// convPK returns the DynamoDB partition key for a conversation.
func convPK(conversationID string) string {
	return "CONV#" + conversationID
}

// exchangeSK returns the sort key for an exchange using the given UTC timestamp.
func exchangeSK(ts time.Time) string {
	return skPrefixExchange + ts.UTC().Format(time.RFC3339Nano)
}

// ttlValue returns a Unix timestamp 30 days in the future.
func ttlValue() int64 {
	return time.Now().Add(ttlDuration).Unix()
}

// History queries all EXCH# items for a conversation ordered chronologically.
func (c *Client) History(ctx context.Context, conversationID string, limit int) ([]domain.Exchange, error) {
	pk := convPK(conversationID)

	in := &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: pk},
			":prefix": &types.AttributeValueMemberS{Value: skPrefixExchange},
		},
		// Read newest first so LIMIT keeps the most recent exchanges.
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	}

	out, err := c.api.Query(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("repository: History query: %w", err)
	}

	exchanges := make([]domain.Exchange, 0, len(out.Items))
	for _, item := range out.Items {
		ex, err := itemToExchange(item)
		if err != nil {
			return nil, fmt.Errorf("repository: History unmarshal: %w", err)
		}
		exchanges = append(exchanges, ex)
	}
	// Reverse to chronological order before returning.
	for i, j := 0, len(exchanges)-1; i < j; i, j = i+1, j-1 {
		exchanges[i], exchanges[j] = exchanges[j], exchanges[i]
	}
	return exchanges, nil
}

// TurnCount returns the persisted turn count for a conversation.
func (c *Client) TurnCount(ctx context.Context, conversationID string) (int, error) {
	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: convPK(conversationID)},
			"SK": &types.AttributeValueMemberS{Value: skMeta},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, fmt.Errorf("repository: TurnCount get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return 0, nil
	}

	turns, err := intAttr(out.Item, "turns")
	if err != nil {
		return 0, fmt.Errorf("repository: TurnCount decode turns: %w", err)
	}
	return turns, nil
}

// SaveExchange writes the completed exchange and updated metadata in one
// transaction.
func (c *Client) SaveExchange(ctx context.Context, conversationID, question, answer, category string, turns int) error {
	ex := newExchange(conversationID, question, answer, category)
	meta := newConversationMeta(conversationID, turns)

	_, err := c.api.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(c.tableName),
					Item:                exchangeItem(ex),
					ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(c.tableName),
					Item:      metaItem(meta),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("repository: SaveExchange: %w", err)
	}
	return nil
}

// newExchange constructs an Exchange with PK/SK/TTL set from conversationID
// and the current time.
func newExchange(conversationID, question, answer, category string) domain.Exchange {
	now := time.Now().UTC()
	return domain.Exchange{
		PK:             convPK(conversationID),
		SK:             exchangeSK(now),
		ConversationID: conversationID,
		Question:       question,
		Answer:         answer,
		Category:       category,
		TTL:            ttlValue(),
	}
}

// newConversationMeta constructs a ConversationMeta record.
func newConversationMeta(conversationID string, turns int) domain.ConversationMeta {
	return domain.ConversationMeta{
		PK:             convPK(conversationID),
		SK:             skMeta,
		ConversationID: conversationID,
		LastActivity:   time.Now().UTC().Format(time.RFC3339),
		Turns:          turns,
		TTL:            ttlValue(),
	}
}

// itemToExchange converts a DynamoDB attribute map to an Exchange.
func itemToExchange(item map[string]types.AttributeValue) (domain.Exchange, error) {
	pk, err := strAttr(item, "PK")
	if err != nil {
		return domain.Exchange{}, err
	}
	sk, err := strAttr(item, "SK")
	if err != nil {
		return domain.Exchange{}, err
	}
	question, err := strAttr(item, "question")
	if err != nil {
		return domain.Exchange{}, err
	}
	answer, _ := strAttr(item, "answer")     // allow empty
	category, _ := strAttr(item, "category") // allow empty

	return domain.Exchange{
		PK:       pk,
		SK:       sk,
		Question: question,
		Answer:   answer,
		Category: category,
	}, nil
}

func exchangeItem(ex domain.Exchange) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":             &types.AttributeValueMemberS{Value: ex.PK},
		"SK":             &types.AttributeValueMemberS{Value: ex.SK},
		"conversationId": &types.AttributeValueMemberS{Value: ex.ConversationID},
		"question":       &types.AttributeValueMemberS{Value: ex.Question},
		"answer":         &types.AttributeValueMemberS{Value: ex.Answer},
		"category":       &types.AttributeValueMemberS{Value: ex.Category},
		"ttl":            &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", ex.TTL)},
	}
}

func metaItem(meta domain.ConversationMeta) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":             &types.AttributeValueMemberS{Value: meta.PK},
		"SK":             &types.AttributeValueMemberS{Value: meta.SK},
		"conversationId": &types.AttributeValueMemberS{Value: meta.ConversationID},
		"lastActivity":   &types.AttributeValueMemberS{Value: meta.LastActivity},
		"turns":          &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", meta.Turns)},
		"ttl":            &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", meta.TTL)},
	}
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func intAttr(item map[string]types.AttributeValue, key string) (int, error) {
	v, ok := item[key]
	if !ok {
		return 0, fmt.Errorf("repository: missing attribute %q", key)
	}
	n, ok := v.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("repository: attribute %q is not a number", key)
	}
	parsed, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return parsed, nil
}
