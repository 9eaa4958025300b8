package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/complainthub/complainthub/internal/domain"
)

// AttachmentRepository stores voice note metadata for tickets.
type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.VoiceAttachment) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.VoiceAttachment, error)
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository instantiates repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

func (r *attachmentRepository) Create(ctx context.Context, att *domain.VoiceAttachment) error {
	const query = `
        INSERT INTO voice_attachments (ticket_id, file_name, mime_type, size_bytes, storage_key)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		att.TicketID,
		att.FileName,
		att.MimeType,
		att.SizeBytes,
		att.StorageKey,
	).Scan(&att.ID, &att.CreatedAt)
}

func (r *attachmentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.VoiceAttachment, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, ticket_id, file_name, mime_type, size_bytes, storage_key, created_at
        FROM voice_attachments WHERE ticket_id=$1 ORDER BY created_at ASC`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.VoiceAttachment
	for rows.Next() {
		var att domain.VoiceAttachment
		if err := rows.Scan(
			&att.ID,
			&att.TicketID,
			&att.FileName,
			&att.MimeType,
			&att.SizeBytes,
			&att.StorageKey,
			&att.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, att)
	}
	return result, rows.Err()
}
