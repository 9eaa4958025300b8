package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/complainthub/complainthub/internal/domain"
)

// BrandRepository encapsulates brand persistence.
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Brand, error)
	List(ctx context.Context) ([]domain.Brand, error)
	// AdjustCredit applies a delta to the brand's balance atomically and
	// returns the new balance.
	AdjustCredit(ctx context.Context, id int64, delta float64) (float64, error)
	CountAll(ctx context.Context) (int64, error)
}

type brandRepository struct {
	pool *pgxpool.Pool
}

// NewBrandRepository instantiates repository.
func NewBrandRepository(pool *pgxpool.Pool) BrandRepository {
	return &brandRepository{pool: pool}
}

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	const query = `
        INSERT INTO brands (name, support_email, industry, logo_url, contact_info, credit_balance)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		brand.Name,
		brand.SupportEmail,
		brand.Industry,
		brand.LogoURL,
		brand.ContactInfo,
		brand.CreditBalance,
	).Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)
}

func (r *brandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	const query = `
        UPDATE brands SET name=$1, support_email=$2, industry=$3, logo_url=$4, contact_info=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		brand.Name,
		brand.SupportEmail,
		brand.Industry,
		brand.LogoURL,
		brand.ContactInfo,
		brand.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *brandRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *brandRepository) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	const query = `
        SELECT id, name, support_email, industry, logo_url, contact_info, credit_balance, created_at, updated_at
        FROM brands WHERE id=$1`
	var brand domain.Brand
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&brand.ID,
		&brand.Name,
		&brand.SupportEmail,
		&brand.Industry,
		&brand.LogoURL,
		&brand.ContactInfo,
		&brand.CreditBalance,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	const query = `
        SELECT id, name, support_email, industry, logo_url, contact_info, credit_balance, created_at, updated_at
        FROM brands ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Brand
	for rows.Next() {
		var brand domain.Brand
		if err := rows.Scan(
			&brand.ID,
			&brand.Name,
			&brand.SupportEmail,
			&brand.Industry,
			&brand.LogoURL,
			&brand.ContactInfo,
			&brand.CreditBalance,
			&brand.CreatedAt,
			&brand.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, brand)
	}
	return result, rows.Err()
}

func (r *brandRepository) AdjustCredit(ctx context.Context, id int64, delta float64) (float64, error) {
	var balance float64
	err := r.pool.QueryRow(ctx,
		`UPDATE brands SET credit_balance = credit_balance + $1, updated_at=NOW() WHERE id=$2 RETURNING credit_balance`,
		delta, id,
	).Scan(&balance)
	return balance, err
}

func (r *brandRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM brands`).Scan(&count)
	return count, err
}
