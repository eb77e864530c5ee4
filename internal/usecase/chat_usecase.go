package usecase

import "context"

// Chat actions the client reacts to.
const (
	ChatActionRedirect  = "click_to_redirect"
	ChatActionCallAdmin = "call_admin"
)

// ChatWarning is shown instead of a reply when the agent could not act.
type ChatWarning struct {
	Text   string `json:"text"`
	Action string `json:"action,omitempty"`
}

// ChatResponse is the agent's answer to one message.
type ChatResponse struct {
	Response    string       `json:"response,omitempty"`
	Action      string       `json:"action,omitempty"`
	ObjectArray []any        `json:"objectArray,omitempty"`
	Context     any          `json:"context,omitempty"`
	Warning     *ChatWarning `json:"warning,omitempty"`
}

// ChatUsecase answers natural language requests with the repositories as tools.
type ChatUsecase interface {
	Chat(ctx context.Context, message string) (*ChatResponse, error)
}
