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

// Lease is the database model for a lease agreement.
type Lease struct {
	ID              uuid.UUID `db:"id"`
	PropertyID      uuid.UUID `db:"property_id"`
	TenantID        uuid.UUID `db:"tenant_id"`
	LandlordID      uuid.UUID `db:"landlord_id"`
	StartDate       time.Time `db:"start_date"`
	EndDate         time.Time `db:"end_date"`
	MonthlyRent     float64   `db:"monthly_rent"`
	SecurityDeposit *float64  `db:"security_deposit"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// LeaseDetails is a lease row joined with its property address and the
// tenant's contact summary.
type LeaseDetails struct {
	Lease
	PropertyAddress string  `db:"property_address"`
	PropertyCity    string  `db:"property_city"`
	TenantName      string  `db:"tenant_name"`
	TenantEmail     string  `db:"tenant_email"`
	TenantPhone     *string `db:"tenant_phone"`
}

// CreateParams carries the fields for inserting a lease.
type CreateParams struct {
	PropertyID      uuid.UUID
	TenantID        uuid.UUID
	LandlordID      uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	MonthlyRent     float64
	SecurityDeposit *float64
	Status          string
}

// UpdateParams carries the mutable lease fields; nil means unchanged.
type UpdateParams struct {
	StartDate       *time.Time
	EndDate         *time.Time
	MonthlyRent     *float64
	SecurityDeposit *float64
	Status          *string
}

const leaseNotFoundMsg = "lease not found"

const leaseDetailsSelect = `
	SELECT l.id, l.property_id, l.tenant_id, l.landlord_id, l.start_date, l.end_date,
		l.monthly_rent, l.security_deposit, l.status, l.created_at, l.updated_at,
		p.address, p.city, t.full_name, t.email, t.phone
	FROM leases l
	JOIN properties p ON p.id = l.property_id
	JOIN profiles t ON t.id = l.tenant_id`

// Repository provides database operations for leases.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new leases repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanLeaseDetails(row pgx.Row) (LeaseDetails, error) {
	var l LeaseDetails
	err := row.Scan(&l.ID, &l.PropertyID, &l.TenantID, &l.LandlordID, &l.StartDate,
		&l.EndDate, &l.MonthlyRent, &l.SecurityDeposit, &l.Status, &l.CreatedAt,
		&l.UpdatedAt, &l.PropertyAddress, &l.PropertyCity, &l.TenantName,
		&l.TenantEmail, &l.TenantPhone)
	return l, err
}

// Create inserts a lease and returns it joined with property and tenant details.
func (r *Repository) Create(ctx context.Context, params CreateParams) (LeaseDetails, error) {
	query := `
		INSERT INTO leases (
			id, property_id, tenant_id, landlord_id, start_date, end_date,
			monthly_rent, security_deposit, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		uuid.New(), params.PropertyID, params.TenantID, params.LandlordID,
		params.StartDate, params.EndDate, params.MonthlyRent,
		params.SecurityDeposit, params.Status).Scan(&id)
	if err != nil {
		return LeaseDetails{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID loads a lease with details by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (LeaseDetails, error) {
	l, err := scanLeaseDetails(r.pool.QueryRow(ctx, leaseDetailsSelect+` WHERE l.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaseDetails{}, apperr.NotFound(leaseNotFoundMsg)
	}
	return l, err
}

// ListByLandlord returns leases owned by the landlord, newest first.
func (r *Repository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]LeaseDetails, error) {
	return r.list(ctx, leaseDetailsSelect+` WHERE l.landlord_id = $1 ORDER BY l.created_at DESC`, landlordID)
}

// ListByTenant returns leases held by the tenant, newest first.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]LeaseDetails, error) {
	return r.list(ctx, leaseDetailsSelect+` WHERE l.tenant_id = $1 ORDER BY l.created_at DESC`, tenantID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]LeaseDetails, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]LeaseDetails, 0)
	for rows.Next() {
		l, err := scanLeaseDetails(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// Update applies the non-nil fields for a lease owned by the landlord.
func (r *Repository) Update(ctx context.Context, id, landlordID uuid.UUID, params UpdateParams) (LeaseDetails, error) {
	query := `
		UPDATE leases SET
			start_date = COALESCE($3, start_date),
			end_date = COALESCE($4, end_date),
			monthly_rent = COALESCE($5, monthly_rent),
			security_deposit = COALESCE($6, security_deposit),
			status = COALESCE($7, status),
			updated_at = now()
		WHERE id = $1 AND landlord_id = $2
		RETURNING id`

	var updated uuid.UUID
	err := r.pool.QueryRow(ctx, query, id, landlordID,
		params.StartDate, params.EndDate, params.MonthlyRent,
		params.SecurityDeposit, params.Status).Scan(&updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaseDetails{}, apperr.NotFound(leaseNotFoundMsg)
	}
	if err != nil {
		return LeaseDetails{}, err
	}
	return r.GetByID(ctx, updated)
}

// Delete removes a lease owned by the landlord.
func (r *Repository) Delete(ctx context.Context, id, landlordID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leases WHERE id = $1 AND landlord_id = $2`, id, landlordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(leaseNotFoundMsg)
	}
	return nil
}
