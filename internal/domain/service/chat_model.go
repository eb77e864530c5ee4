package service

import (
	"context"
)

// ToolParameter describes one argument of a function tool.
type ToolParameter struct {
	Type        string // "string" or "number"
	Description string
}

// ToolDeclaration is a function the chat model may ask to call.
type ToolDeclaration struct {
	Name        string
	Description string
	Parameters  map[string]ToolParameter
	Required    []string
}

// FunctionCall is a tool invocation requested by the model.
type FunctionCall struct {
	ID   string
	Name string
	Args map[string]any
}

// FunctionResult is the answer to a FunctionCall, sent back to the model.
type FunctionResult struct {
	ID       string
	Name     string
	Response map[string]any
}

// ChatReply is one model turn: either text, function calls, or both.
type ChatReply struct {
	Text  string
	Calls []FunctionCall
}

// ChatSession is a single multi-turn conversation.
type ChatSession interface {
	SendText(ctx context.Context, text string) (*ChatReply, error)
	SendFunctionResults(ctx context.Context, results []FunctionResult) (*ChatReply, error)
}

// ChatModel starts chat sessions with a system prompt and a set of tools.
type ChatModel interface {
	StartChat(ctx context.Context, systemPrompt string, tools []ToolDeclaration) (ChatSession, error)
}
