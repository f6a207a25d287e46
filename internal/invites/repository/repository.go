package repository

import (
	"context"
	"errors"
	"time"

	"leasewell_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Invite status values.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRevoked  = "revoked"
)

// Invite is the database model for a tenant invitation. Only the SHA-256
// hash of the invite token is stored.
type Invite struct {
	ID         uuid.UUID `db:"id"`
	PropertyID uuid.UUID `db:"property_id"`
	LandlordID uuid.UUID `db:"landlord_id"`
	Email      string    `db:"email"`
	FullName   *string   `db:"full_name"`
	TokenHash  string    `db:"token_hash"`
	Status     string    `db:"status"`
	ExpiresAt  time.Time `db:"expires_at"`
	CreatedAt  time.Time `db:"created_at"`
}

// CreateParams carries the fields for inserting an invite.
type CreateParams struct {
	PropertyID uuid.UUID
	LandlordID uuid.UUID
	Email      string
	FullName   *string
	TokenHash  string
	ExpiresAt  time.Time
}

const inviteNotFoundMsg = "invite not found"

const inviteColumns = `id, property_id, landlord_id, email, full_name, token_hash, status, expires_at, created_at`

// Repository provides database operations for tenant invites.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new invites repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanInvite(row pgx.Row) (Invite, error) {
	var i Invite
	err := row.Scan(&i.ID, &i.PropertyID, &i.LandlordID, &i.Email, &i.FullName,
		&i.TokenHash, &i.Status, &i.ExpiresAt, &i.CreatedAt)
	return i, err
}

// Create inserts a pending invite.
func (r *Repository) Create(ctx context.Context, params CreateParams) (Invite, error) {
	query := `
		INSERT INTO tenant_invites (id, property_id, landlord_id, email, full_name, token_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7)
		RETURNING ` + inviteColumns

	return scanInvite(r.pool.QueryRow(ctx, query,
		uuid.New(), params.PropertyID, params.LandlordID, params.Email,
		params.FullName, params.TokenHash, params.ExpiresAt))
}

// GetByTokenHash loads an invite by its hashed token.
func (r *Repository) GetByTokenHash(ctx context.Context, tokenHash string) (Invite, error) {
	i, err := scanInvite(r.pool.QueryRow(ctx,
		`SELECT `+inviteColumns+` FROM tenant_invites WHERE token_hash = $1`, tokenHash))
	if errors.Is(err, pgx.ErrNoRows) {
		return Invite{}, apperr.NotFound(inviteNotFoundMsg)
	}
	return i, err
}

// GetByID loads an invite owned by the landlord.
func (r *Repository) GetByID(ctx context.Context, id, landlordID uuid.UUID) (Invite, error) {
	i, err := scanInvite(r.pool.QueryRow(ctx,
		`SELECT `+inviteColumns+` FROM tenant_invites WHERE id = $1 AND landlord_id = $2`, id, landlordID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Invite{}, apperr.NotFound(inviteNotFoundMsg)
	}
	return i, err
}

// ListByLandlord returns the landlord's invites, newest first.
func (r *Repository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Invite, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+inviteColumns+` FROM tenant_invites WHERE landlord_id = $1 ORDER BY created_at DESC`, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Invite, 0)
	for rows.Next() {
		i, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// SetStatus moves a pending invite to a terminal status.
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tenant_invites SET status = $2 WHERE id = $1 AND status = 'pending'`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("invite is no longer pending")
	}
	return nil
}

// LinkTenant records the tenant's membership on the property. Duplicate
// links are ignored.
func (r *Repository) LinkTenant(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tenant_property_links (id, tenant_id, property_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id, property_id) DO NOTHING`,
		uuid.New(), tenantID, propertyID)
	return err
}
