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

// Property is the database model for a rental property.
type Property struct {
	ID           uuid.UUID `db:"id"`
	LandlordID   uuid.UUID `db:"landlord_id"`
	Address      string    `db:"address"`
	UnitNumber   *string   `db:"unit_number"`
	City         string    `db:"city"`
	State        string    `db:"state"`
	ZipCode      string    `db:"zip_code"`
	PropertyType string    `db:"property_type"`
	Bedrooms     *int      `db:"bedrooms"`
	Bathrooms    *float64  `db:"bathrooms"`
	SquareFeet   *int      `db:"square_feet"`
	Description  *string   `db:"description"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// CreateParams carries the fields for inserting a property.
type CreateParams struct {
	LandlordID   uuid.UUID
	Address      string
	UnitNumber   *string
	City         string
	State        string
	ZipCode      string
	PropertyType string
	Bedrooms     *int
	Bathrooms    *float64
	SquareFeet   *int
	Description  *string
}

// UpdateParams carries the mutable property fields; nil means unchanged.
type UpdateParams struct {
	Address      *string
	UnitNumber   *string
	City         *string
	State        *string
	ZipCode      *string
	PropertyType *string
	Bedrooms     *int
	Bathrooms    *float64
	SquareFeet   *int
	Description  *string
	Status       *string
}

const propertyNotFoundMsg = "property not found"

const propertyColumns = `id, landlord_id, address, unit_number, city, state, zip_code,
	property_type, bedrooms, bathrooms, square_feet, description, status, created_at, updated_at`

// Repository provides database operations for properties.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new properties repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanProperty(row pgx.Row) (Property, error) {
	var p Property
	err := row.Scan(&p.ID, &p.LandlordID, &p.Address, &p.UnitNumber, &p.City, &p.State,
		&p.ZipCode, &p.PropertyType, &p.Bedrooms, &p.Bathrooms, &p.SquareFeet,
		&p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a property owned by the landlord.
func (r *Repository) Create(ctx context.Context, params CreateParams) (Property, error) {
	query := `
		INSERT INTO properties (
			id, landlord_id, address, unit_number, city, state, zip_code,
			property_type, bedrooms, bathrooms, square_feet, description, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'active')
		RETURNING ` + propertyColumns

	return scanProperty(r.pool.QueryRow(ctx, query,
		uuid.New(), params.LandlordID, params.Address, params.UnitNumber, params.City,
		params.State, params.ZipCode, params.PropertyType, params.Bedrooms,
		params.Bathrooms, params.SquareFeet, params.Description))
}

// GetByID loads a property by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	p, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Property{}, apperr.NotFound(propertyNotFoundMsg)
	}
	return p, err
}

// ListByLandlord returns all properties owned by the landlord, newest first.
func (r *Repository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE landlord_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, landlordID)
}

// ListByTenant returns properties the tenant is linked to through leases.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Property, error) {
	query := `
		SELECT DISTINCT p.id, p.landlord_id, p.address, p.unit_number, p.city, p.state, p.zip_code,
			p.property_type, p.bedrooms, p.bathrooms, p.square_feet, p.description, p.status,
			p.created_at, p.updated_at
		FROM properties p
		JOIN leases l ON l.property_id = p.id
		WHERE l.tenant_id = $1
		ORDER BY p.created_at DESC`
	return r.list(ctx, query, tenantID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Property, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// TenantHasLease reports whether the tenant holds any lease on the property.
func (r *Repository) TenantHasLease(ctx context.Context, propertyID, tenantID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM leases WHERE property_id = $1 AND tenant_id = $2)`,
		propertyID, tenantID).Scan(&exists)
	return exists, err
}

// Update applies the non-nil fields for a property owned by the landlord.
func (r *Repository) Update(ctx context.Context, id, landlordID uuid.UUID, params UpdateParams) (Property, error) {
	query := `
		UPDATE properties SET
			address = COALESCE($3, address),
			unit_number = COALESCE($4, unit_number),
			city = COALESCE($5, city),
			state = COALESCE($6, state),
			zip_code = COALESCE($7, zip_code),
			property_type = COALESCE($8, property_type),
			bedrooms = COALESCE($9, bedrooms),
			bathrooms = COALESCE($10, bathrooms),
			square_feet = COALESCE($11, square_feet),
			description = COALESCE($12, description),
			status = COALESCE($13, status),
			updated_at = now()
		WHERE id = $1 AND landlord_id = $2
		RETURNING ` + propertyColumns

	p, err := scanProperty(r.pool.QueryRow(ctx, query, id, landlordID,
		params.Address, params.UnitNumber, params.City, params.State, params.ZipCode,
		params.PropertyType, params.Bedrooms, params.Bathrooms, params.SquareFeet,
		params.Description, params.Status))
	if errors.Is(err, pgx.ErrNoRows) {
		return Property{}, apperr.NotFound(propertyNotFoundMsg)
	}
	return p, err
}

// Delete removes a property owned by the landlord.
func (r *Repository) Delete(ctx context.Context, id, landlordID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1 AND landlord_id = $2`, id, landlordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(propertyNotFoundMsg)
	}
	return nil
}
