package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/complainthub/complainthub/internal/domain"
)

// BillingRepository encapsulates the credit ledger.
type BillingRepository interface {
	Create(ctx context.Context, entry *domain.BillingEntry) error
	ListByBrand(ctx context.Context, brandID int64, limit int) ([]domain.BillingEntry, error)
	ListAll(ctx context.Context, limit int) ([]domain.BillingEntry, error)
}

type billingRepository struct {
	pool *pgxpool.Pool
}

// NewBillingRepository instantiates repository.
func NewBillingRepository(pool *pgxpool.Pool) BillingRepository {
	return &billingRepository{pool: pool}
}

func (r *billingRepository) Create(ctx context.Context, entry *domain.BillingEntry) error {
	const query = `
        INSERT INTO billing_entries (brand_id, ticket_id, entry_type, amount, description)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.BrandID,
		entry.TicketID,
		entry.Type,
		entry.Amount,
		entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *billingRepository) ListByBrand(ctx context.Context, brandID int64, limit int) ([]domain.BillingEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
        SELECT id, brand_id, ticket_id, entry_type, amount, description, created_at
        FROM billing_entries WHERE brand_id=$1 ORDER BY created_at DESC LIMIT $2`, brandID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBillingEntries(rows)
}

func (r *billingRepository) ListAll(ctx context.Context, limit int) ([]domain.BillingEntry, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.pool.Query(ctx, `
        SELECT id, brand_id, ticket_id, entry_type, amount, description, created_at
        FROM billing_entries ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBillingEntries(rows)
}

func scanBillingEntries(rows pgx.Rows) ([]domain.BillingEntry, error) {
	var result []domain.BillingEntry
	for rows.Next() {
		var entry domain.BillingEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.BrandID,
			&entry.TicketID,
			&entry.Type,
			&entry.Amount,
			&entry.Description,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
