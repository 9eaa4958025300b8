package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/complainthub/complainthub/internal/domain"
)

// TicketFilter captures DB-side listing parameters. In-memory filtering for
// the admin/brand views lives in the analytics package; this filter narrows
// what gets loaded in the first place.
type TicketFilter struct {
	BrandID     *int64
	OwnerID     *int64
	Statuses    []domain.TicketStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByReferenceCode(ctx context.Context, code string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	ListUnchargedUnresolvedBefore(ctx context.Context, cutoff time.Time) ([]domain.Ticket, error)
	MarkFeeCharged(ctx context.Context, id int64, at time.Time) error
	CountAll(ctx context.Context) (int64, error)
	CountResolved(ctx context.Context) (int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `t.id, t.reference_code, t.brand_id, b.name, t.owner_id,
           t.owner_name, t.owner_email, t.owner_phone, t.title, t.description,
           t.category, t.urgency, t.channel, t.status,
           t.satisfaction_rating, t.satisfaction_comment, t.fee_charged_at,
           t.created_at, t.updated_at, t.closed_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (reference_code, brand_id, owner_id, owner_name, owner_email, owner_phone,
            title, description, category, urgency, channel, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.ReferenceCode,
		ticket.BrandID,
		ticket.OwnerID,
		ticket.OwnerName,
		ticket.OwnerEmail,
		ticket.OwnerPhone,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		ticket.Urgency,
		ticket.Channel,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET title=$1, description=$2, category=$3, urgency=$4, channel=$5,
            status=$6, satisfaction_rating=$7, satisfaction_comment=$8, closed_at=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		ticket.Urgency,
		ticket.Channel,
		ticket.Status,
		ticket.SatisfactionRating,
		ticket.SatisfactionComment,
		ticket.ClosedAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets t JOIN brands b ON b.id = t.brand_id WHERE t.id=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByReferenceCode(ctx context.Context, code string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets t JOIN brands b ON b.id = t.brand_id WHERE t.reference_code=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, code)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := scanTicket(r.pool.QueryRow(ctx, query, arg), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := fmt.Sprintf(`SELECT %s FROM tickets t JOIN brands b ON b.id = t.brand_id`, ticketColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BrandID != nil {
		args = append(args, *filter.BrandID)
		clauses = append(clauses, fmt.Sprintf("t.brand_id=$%d", len(args)))
	}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("t.owner_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("t.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("t.created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("t.created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY t.created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListUnchargedUnresolvedBefore(ctx context.Context, cutoff time.Time) ([]domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets t JOIN brands b ON b.id = t.brand_id
        WHERE t.status IN ('new','in-progress') AND t.fee_charged_at IS NULL AND t.created_at < $1
        ORDER BY t.created_at ASC`, ticketColumns)
	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) MarkFeeCharged(ctx context.Context, id int64, at time.Time) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE tickets SET fee_charged_at=$1, updated_at=NOW() WHERE id=$2 AND fee_charged_at IS NULL`, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count)
	return count, err
}

func (r *ticketRepository) CountResolved(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE status='resolved'`).Scan(&count)
	return count, err
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.ReferenceCode,
		&ticket.BrandID,
		&ticket.BrandName,
		&ticket.OwnerID,
		&ticket.OwnerName,
		&ticket.OwnerEmail,
		&ticket.OwnerPhone,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Urgency,
		&ticket.Channel,
		&ticket.Status,
		&ticket.SatisfactionRating,
		&ticket.SatisfactionComment,
		&ticket.FeeChargedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ClosedAt,
	)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
