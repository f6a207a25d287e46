package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"leasewell_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Profile is the database model for a user profile. Both landlords and
// tenants live in the same table, distinguished by Role.
type Profile struct {
	ID              uuid.UUID `db:"id"`
	Email           string    `db:"email"`
	PasswordHash    string    `db:"password_hash"`
	FullName        string    `db:"full_name"`
	Role            string    `db:"role"`
	Phone           *string   `db:"phone"`
	AvatarURL       *string   `db:"avatar_url"`
	StripeAccountID *string   `db:"stripe_account_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Repository provides database operations for authentication.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const profileColumns = `id, email, password_hash, full_name, role, phone, avatar_url, stripe_account_id, created_at, updated_at`

func scanProfile(row pgx.Row) (Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Role,
		&p.Phone, &p.AvatarURL, &p.StripeAccountID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreateProfile inserts a new profile row.
func (r *Repository) CreateProfile(ctx context.Context, email, passwordHash, fullName, role string) (Profile, error) {
	query := `
		INSERT INTO profiles (id, email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + profileColumns

	row := r.pool.QueryRow(ctx, query, uuid.New(), strings.ToLower(email), passwordHash, fullName, role)
	p, err := scanProfile(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Profile{}, apperr.Conflict("an account with this email already exists")
		}
		return Profile{}, err
	}
	return p, nil
}

// GetProfileByEmail loads a profile by email.
func (r *Repository) GetProfileByEmail(ctx context.Context, email string) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	p, err := scanProfile(r.pool.QueryRow(ctx, query, strings.ToLower(email)))
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, apperr.NotFound("profile not found")
	}
	return p, err
}

// GetProfileByID loads a profile by id.
func (r *Repository) GetProfileByID(ctx context.Context, id uuid.UUID) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, apperr.NotFound("profile not found")
	}
	return p, err
}

// StoreRefreshToken persists a hashed refresh token.
func (r *Repository) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query := `INSERT INTO refresh_tokens (token_hash, user_id, expires_at) VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, query, tokenHash, userID, expiresAt)
	return err
}

// GetRefreshToken looks up a refresh token by hash.
func (r *Repository) GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	var userID uuid.UUID
	var expiresAt time.Time
	query := `SELECT user_id, expires_at FROM refresh_tokens WHERE token_hash = $1`
	err := r.pool.QueryRow(ctx, query, tokenHash).Scan(&userID, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, time.Time{}, apperr.Unauthorized("invalid refresh token")
	}
	return userID, expiresAt, err
}

// RevokeRefreshToken deletes a refresh token by hash.
func (r *Repository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
	return err
}
