package handler

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"vitrina/internal/delivery/http/response"
	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/usecase"
)

// ChatHandlerParams holds dependencies for ChatHandler, injected by Fx.
type ChatHandlerParams struct {
	fx.In

	ChatUC usecase.ChatUsecase
	Logger *slog.Logger
}

// ChatHandler serves the polling endpoints of the chat.
type ChatHandler struct {
	chatUC usecase.ChatUsecase
	logger *slog.Logger
}

// NewChatHandler is the constructor for ChatHandler
func NewChatHandler(params ChatHandlerParams) *ChatHandler {
	return &ChatHandler{
		chatUC: params.ChatUC,
		logger: params.Logger,
	}
}

// StartConversationRequest is the body of POST /api/conversations/start
type StartConversationRequest struct {
	BusinessID uuid.UUID `json:"businessId" validate:"required"`
}

// SendMessageRequest is the body of POST /api/messages
type SendMessageRequest struct {
	ConversationID uuid.UUID `json:"conversationId" validate:"required"`
	Content        string    `json:"content" validate:"required"`
}

// StartConversation opens, or reuses, the caller's conversation with a business.
func (h *ChatHandler) StartConversation(c echo.Context) error {
	clientID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req StartConversationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	conversation, err := h.chatUC.StartConversation(c.Request().Context(), clientID, req.BusinessID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, conversation)
}

// ListConversations returns the caller's inbox.
func (h *ChatHandler) ListConversations(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if actorID != userID {
		return response.HandleAppError(c, domainerrors.ErrForbidden)
	}

	conversations, err := h.chatUC.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, conversations)
}

// ListMessages returns a conversation's messages oldest first.
func (h *ChatHandler) ListMessages(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	conversationID, err := uuidParam(c, "conversationId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	messages, err := h.chatUC.ListMessages(c.Request().Context(), actorID, conversationID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, messages)
}

// SendMessage posts a message as the caller.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	senderID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	message, err := h.chatUC.SendMessage(c.Request().Context(), &usecase.SendMessageInput{
		ConversationID: req.ConversationID,
		SenderID:       senderID,
		Content:        req.Content,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, message)
}

// MarkRead clears the caller's unread state for a conversation.
func (h *ChatHandler) MarkRead(c echo.Context) error {
	readerID, err := callerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	conversationID, err := uuidParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	conversation, err := h.chatUC.MarkRead(c.Request().Context(), conversationID, readerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, conversation)
}
