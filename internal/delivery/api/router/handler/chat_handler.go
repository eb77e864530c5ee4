package handler

import (
	"net/http"

	"fuelflow/internal/delivery/api/response"
	"fuelflow/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ChatHandlerParams holds dependencies for ChatHandler, injected by Fx.
type ChatHandlerParams struct {
	fx.In

	ChatUC usecase.ChatUsecase
}

// ChatHandler forwards messages to the chat agent
type ChatHandler struct {
	chatUC usecase.ChatUsecase
}

// NewChatHandler is the constructor for ChatHandler
func NewChatHandler(params ChatHandlerParams) *ChatHandler {
	return &ChatHandler{chatUC: params.ChatUC}
}

// ChatRequest is one user message
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid chat input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	resp, err := h.chatUC.Chat(c.Request().Context(), req.Message)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, resp)
}
