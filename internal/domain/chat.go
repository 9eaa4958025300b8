package domain

import "time"

// ChatSender identifies who authored a chat message.
type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderBot  ChatSender = "bot"
)

// ChatMessage is a single message within a support chat session.
type ChatMessage struct {
	Sender    ChatSender `json:"sender"`
	Text      string     `json:"text"`
	Timestamp time.Time  `json:"timestamp"`
}

// ChatSession ties a chat transcript to a ticket.
type ChatSession struct {
	ID        string    `json:"session_id"`
	TicketID  int64     `json:"ticket_id"`
	StartedAt time.Time `json:"started_at"`
}
