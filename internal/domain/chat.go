package domain

// Chat roles as exposed over the wire and persisted in history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is the transport-agnostic chat message shape used by the
// handlers and the history endpoints.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
