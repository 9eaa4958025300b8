package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/complainthub/complainthub/internal/api/dto"
	"github.com/complainthub/complainthub/internal/auth"
	"github.com/complainthub/complainthub/internal/service"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

// ChatHandler serves the support chat endpoints.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs the handler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Start opens a chat session for a ticket.
func (h *ChatHandler) Start(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	ticketID, err := parseID(c, "ticketID")
	if err != nil {
		return err
	}
	session, err := h.chat.StartSession(c.Context(), actor, ticketID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewChatSessionResponse(session))
}

// Send posts a user message and returns the assistant reply.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req dto.SendChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	reply, err := h.chat.SendMessage(c.Context(), req.SessionID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewChatMessageResponse(reply))
}

// Messages returns the session transcript.
func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	messages, err := h.chat.Messages(c.Context(), c.Params("sessionID"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewChatMessageListResponse(messages))
}
