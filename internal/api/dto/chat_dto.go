package dto

import (
	"time"

	"github.com/complainthub/complainthub/internal/domain"
)

// ChatSessionResponse is returned when a support chat is opened.
type ChatSessionResponse struct {
	SessionID string    `json:"session_id"`
	TicketID  int64     `json:"ticket_id"`
	StartedAt time.Time `json:"started_at"`
}

// NewChatSessionResponse maps a chat session.
func NewChatSessionResponse(s *domain.ChatSession) ChatSessionResponse {
	return ChatSessionResponse{
		SessionID: s.ID,
		TicketID:  s.TicketID,
		StartedAt: s.StartedAt,
	}
}

// SendChatMessageRequest carries a user message into a session.
type SendChatMessageRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// ChatMessageResponse is the wire shape of a transcript entry.
type ChatMessageResponse struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChatMessageResponse maps a message.
func NewChatMessageResponse(m *domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		Sender:    string(m.Sender),
		Text:      m.Text,
		Timestamp: m.Timestamp,
	}
}

// NewChatMessageListResponse maps a transcript.
func NewChatMessageListResponse(messages []domain.ChatMessage) []ChatMessageResponse {
	out := make([]ChatMessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, NewChatMessageResponse(&messages[i]))
	}
	return out
}
