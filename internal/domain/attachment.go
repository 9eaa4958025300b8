package domain

import "time"

// VoiceAttachment records a voice note uploaded against a ticket.
type VoiceAttachment struct {
	ID         int64
	TicketID   int64
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	CreatedAt  time.Time
}
