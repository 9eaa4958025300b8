package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/complainthub/complainthub/internal/domain"
	"github.com/complainthub/complainthub/internal/repository"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

// assistantReplies are the canned support responses. Replies rotate with the
// transcript length so a conversation never repeats until the pool is
// exhausted.
var assistantReplies = []string{
	"I understand your concern. Let me help you with that. Could you please provide more details about when this issue occurred?",
	"Thank you for bringing this to our attention. I'm documenting your complaint and will ensure it gets proper attention.",
	"I can see this is important to you. Let me gather some additional information to better assist you.",
	"I'm here to help resolve your issue. Could you please tell me what specific outcome you're looking for?",
	"I appreciate you taking the time to report this. Let me ask a few questions to better understand the situation.",
	"I'm processing your complaint now. To help me assist you better, could you provide any relevant order numbers or reference codes?",
	"Thank you for your patience. I'm working on your case and will make sure it gets the attention it deserves.",
	"I understand this is frustrating. Let me help you get this resolved as quickly as possible.",
}

const chatGreeting = "Hello! I'm here to help you with your complaint. How can I assist you today?"

// ChatService runs the canned-assistant support chat attached to tickets.
type ChatService struct {
	store   repository.ChatStore
	tickets *TicketService
	now     func() time.Time
}

// NewChatService constructs the service.
func NewChatService(store repository.ChatStore, tickets *TicketService) *ChatService {
	return &ChatService{store: store, tickets: tickets, now: time.Now}
}

// StartSession opens a chat session for a ticket the actor can see, seeded
// with the assistant greeting.
func (s *ChatService) StartSession(ctx context.Context, actor *domain.User, ticketID int64) (*domain.ChatSession, error) {
	ticket, err := s.tickets.GetTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	session := &domain.ChatSession{
		ID:        uuid.NewString(),
		TicketID:  ticket.ID,
		StartedAt: s.now(),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	greeting := domain.ChatMessage{
		Sender:    domain.ChatSenderBot,
		Text:      chatGreeting,
		Timestamp: s.now(),
	}
	if err := s.store.AppendMessage(ctx, session.ID, greeting); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return session, nil
}

// SendMessage appends the user's message and the assistant's reply, returning
// the reply.
func (s *ChatService) SendMessage(ctx context.Context, sessionID, text string) (*domain.ChatMessage, error) {
	if text == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		return nil, apperrors.NewNotFound("chat session", map[string]any{"session_id": sessionID})
	}

	userMsg := domain.ChatMessage{
		Sender:    domain.ChatSenderUser,
		Text:      text,
		Timestamp: s.now(),
	}
	if err := s.store.AppendMessage(ctx, sessionID, userMsg); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	count, err := s.store.MessageCount(ctx, sessionID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	reply := domain.ChatMessage{
		Sender:    domain.ChatSenderBot,
		Text:      assistantReplies[int(count)%len(assistantReplies)],
		Timestamp: s.now(),
	}
	if err := s.store.AppendMessage(ctx, sessionID, reply); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &reply, nil
}

// Messages returns the full transcript for a session.
func (s *ChatService) Messages(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		return nil, apperrors.NewNotFound("chat session", map[string]any{"session_id": sessionID})
	}
	messages, err := s.store.Messages(ctx, sessionID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return messages, nil
}
