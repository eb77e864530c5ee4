// Package ai adapts Gemini chat sessions to service.ChatModel.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fuelflow/config"
	"fuelflow/internal/domain/service"

	"go.uber.org/fx"
	"google.golang.org/genai"
)

// Backends accepted in genai.backend.
const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"
)

type geminiModel struct {
	client *genai.Client
	model  string
}

// ModelParams holds dependencies for the chat model
type ModelParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewChatModel creates the Gemini chat model. It returns nil when the agent is
// disabled so that the chat endpoint answers 503.
func NewChatModel(params ModelParams) (service.ChatModel, error) {
	cfg := params.Config.GenAI
	if cfg == nil || !cfg.Enabled {
		params.Logger.Info("GenAI disabled, chat agent unavailable")

		return nil, nil
	}

	clientCfg := &genai.ClientConfig{}
	switch cfg.Backend {
	case BackendVertex:
		clientCfg.Backend = genai.BackendVertexAI
		clientCfg.Project = cfg.Project
		clientCfg.Location = cfg.Location
	case BackendGemini, "":
		clientCfg.Backend = genai.BackendGeminiAPI
		clientCfg.APIKey = cfg.APIKey
	default:
		return nil, fmt.Errorf("unknown genai backend: %s", cfg.Backend)
	}

	client, err := genai.NewClient(params.Ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	params.Logger.Info("GenAI chat model initialized",
		slog.String("backend", cfg.Backend),
		slog.String("model", cfg.Model),
	)

	return &geminiModel{client: client, model: cfg.Model}, nil
}

func (m *geminiModel) StartChat(ctx context.Context, systemPrompt string, tools []service.ToolDeclaration) (service.ChatSession, error) {
	chatCfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	}
	if len(tools) > 0 {
		chatCfg.Tools = []*genai.Tool{{FunctionDeclarations: declarations(tools)}}
	}

	chat, err := m.client.Chats.Create(ctx, m.model, chatCfg, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start chat: %w", err)
	}

	return &geminiSession{chat: chat}, nil
}

func declarations(tools []service.ToolDeclaration) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		props := make(map[string]*genai.Schema, len(tool.Parameters))
		for name, param := range tool.Parameters {
			props[name] = &genai.Schema{
				Type:        schemaType(param.Type),
				Description: param.Description,
			}
		}

		decl := &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
		}
		if len(props) > 0 {
			decl.Parameters = &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   tool.Required,
			}
		}
		out = append(out, decl)
	}

	return out
}

func schemaType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

type geminiSession struct {
	chat *genai.Chat
}

func (s *geminiSession) SendText(ctx context.Context, text string) (*service.ChatReply, error) {
	return s.send(ctx, &genai.Part{Text: text})
}

func (s *geminiSession) SendFunctionResults(ctx context.Context, results []service.FunctionResult) (*service.ChatReply, error) {
	parts := make([]*genai.Part, 0, len(results))
	for _, r := range results {
		parts = append(parts, &genai.Part{FunctionResponse: &genai.FunctionResponse{
			ID:       r.ID,
			Name:     r.Name,
			Response: r.Response,
		}})
	}

	return s.send(ctx, parts...)
}

func (s *geminiSession) send(ctx context.Context, parts ...*genai.Part) (*service.ChatReply, error) {
	resp, err := s.chat.Send(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to send chat message: %w", err)
	}

	return toReply(resp)
}

func toReply(resp *genai.GenerateContentResponse) (*service.ChatReply, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from model")
	}

	reply := &service.ChatReply{}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil {
			reply.Calls = append(reply.Calls, service.FunctionCall{
				ID:   part.FunctionCall.ID,
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
		}
		text.WriteString(part.Text)
	}
	reply.Text = strings.TrimSpace(text.String())

	return reply, nil
}
