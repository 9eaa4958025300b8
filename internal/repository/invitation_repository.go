package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/complainthub/complainthub/internal/domain"
)

// InvitationRepository encapsulates team invitation persistence.
type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	ListByBrand(ctx context.Context, brandID int64) ([]domain.Invitation, error)
	GetByToken(ctx context.Context, token string) (*domain.Invitation, error)
	Delete(ctx context.Context, brandID, id int64) error
	MarkAccepted(ctx context.Context, id int64, at time.Time) error
}

type invitationRepository struct {
	pool *pgxpool.Pool
}

// NewInvitationRepository instantiates repository.
func NewInvitationRepository(pool *pgxpool.Pool) InvitationRepository {
	return &invitationRepository{pool: pool}
}

const invitationColumns = `id, brand_id, email, token, expires_at, accepted_at, created_at`

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	const query = `
        INSERT INTO invitations (brand_id, email, token, expires_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		inv.BrandID,
		inv.Email,
		inv.Token,
		inv.ExpiresAt,
	).Scan(&inv.ID, &inv.CreatedAt)
}

func (r *invitationRepository) ListByBrand(ctx context.Context, brandID int64) ([]domain.Invitation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE brand_id=$1 ORDER BY created_at DESC`, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Invitation
	for rows.Next() {
		var inv domain.Invitation
		if err := scanInvitation(rows, &inv); err != nil {
			return nil, err
		}
		result = append(result, inv)
	}
	return result, rows.Err()
}

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	var inv domain.Invitation
	if err := scanInvitation(r.pool.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token=$1`, token), &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepository) Delete(ctx context.Context, brandID, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM invitations WHERE id=$1 AND brand_id=$2`, id, brandID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *invitationRepository) MarkAccepted(ctx context.Context, id int64, at time.Time) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE invitations SET accepted_at=$1 WHERE id=$2 AND accepted_at IS NULL`, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanInvitation(row pgx.Row, inv *domain.Invitation) error {
	return row.Scan(
		&inv.ID,
		&inv.BrandID,
		&inv.Email,
		&inv.Token,
		&inv.ExpiresAt,
		&inv.AcceptedAt,
		&inv.CreatedAt,
	)
}
