package domain

// Exchange is a single persisted question/answer turn.
type Exchange struct {
	PK             string
	SK             string
	ConversationID string
	Question       string
	Answer         string
	Category       string
	TTL            int64
}

// ConversationMeta stores aggregate conversation state.
type ConversationMeta struct {
	PK             string
	SK             string
	ConversationID string
	LastActivity   string
	Turns          int
	TTL            int64
}
