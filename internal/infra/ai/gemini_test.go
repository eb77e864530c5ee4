package ai

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"fuelflow/config"
	"fuelflow/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewChatModel_DisabledReturnsNil(t *testing.T) {
	model, err := NewChatModel(ModelParams{
		Ctx:    context.Background(),
		Config: &config.Config{GenAI: &config.GenAIConfig{Enabled: false}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestNewChatModel_UnknownBackend(t *testing.T) {
	_, err := NewChatModel(ModelParams{
		Ctx:    context.Background(),
		Config: &config.Config{GenAI: &config.GenAIConfig{Enabled: true, Backend: "other"}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	assert.Error(t, err)
}

func TestDeclarations_MapsParameterTypes(t *testing.T) {
	decls := declarations([]service.ToolDeclaration{
		{
			Name:        "process_transaction",
			Description: "Record a delivery",
			Parameters: map[string]service.ToolParameter{
				"customer":   {Type: "string"},
				"sent_units": {Type: "number"},
			},
			Required: []string{"customer"},
		},
		{Name: "refresh_memory"},
	})

	require.Len(t, decls, 2)
	assert.Equal(t, genai.TypeObject, decls[0].Parameters.Type)
	assert.Equal(t, genai.TypeNumber, decls[0].Parameters.Properties["sent_units"].Type)
	assert.Equal(t, []string{"customer"}, decls[0].Parameters.Required)
	assert.Nil(t, decls[1].Parameters)
}

func TestToReply_CollectsTextAndCalls(t *testing.T) {
	reply, err := toReply(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "Looking up "},
				{FunctionCall: &genai.FunctionCall{ID: "1", Name: "get_customer_details", Args: map[string]any{"name": "ram"}}},
			}},
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Looking up", reply.Text)
	require.Len(t, reply.Calls, 1)
	assert.Equal(t, "get_customer_details", reply.Calls[0].Name)

	_, err = toReply(&genai.GenerateContentResponse{})
	assert.Error(t, err)
}
