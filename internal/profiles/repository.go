package profiles

import (
	"context"
	"errors"
	"time"

	"leasewell_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Profile is the public slice of a profile row this module exposes.
type Profile struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"fullName"`
	Role      string    `db:"role" json:"role"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	AvatarURL *string   `db:"avatar_url" json:"avatarUrl,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// UpdateParams carries the mutable profile fields.
type UpdateParams struct {
	FullName  *string
	Phone     *string
	AvatarURL *string
}

// Repository provides database operations for profiles.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new profiles repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get loads a profile by id.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (Profile, error) {
	query := `
		SELECT id, email, full_name, role, phone, avatar_url, created_at, updated_at
		FROM profiles WHERE id = $1`

	var p Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Role, &p.Phone, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, apperr.NotFound("profile not found")
	}
	return p, err
}

// Update applies the non-nil fields and returns the updated profile.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Profile, error) {
	query := `
		UPDATE profiles SET
			full_name = COALESCE($2, full_name),
			phone = COALESCE($3, phone),
			avatar_url = COALESCE($4, avatar_url),
			updated_at = now()
		WHERE id = $1
		RETURNING id, email, full_name, role, phone, avatar_url, created_at, updated_at`

	var p Profile
	err := r.pool.QueryRow(ctx, query, id, params.FullName, params.Phone, params.AvatarURL).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Role, &p.Phone, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, apperr.NotFound("profile not found")
	}
	return p, err
}
