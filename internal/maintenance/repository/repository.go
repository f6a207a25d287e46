package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leasewell_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Agent status values for the contractor shopping pipeline.
const (
	AgentStatusPending   = "pending"
	AgentStatusShopping  = "shopping"
	AgentStatusCompleted = "completed"
	AgentStatusFailed    = "failed"
)

// Request is the database model for a maintenance request.
type Request struct {
	ID               uuid.UUID  `db:"id"`
	PropertyID       uuid.UUID  `db:"property_id"`
	TenantID         uuid.UUID  `db:"tenant_id"`
	LandlordID       uuid.UUID  `db:"landlord_id"`
	Title            string     `db:"title"`
	Description      string     `db:"description"`
	Category         string     `db:"category"`
	Priority         string     `db:"priority"`
	Status           string     `db:"status"`
	AgentStatus      string     `db:"agent_status"`
	AgentStartedAt   *time.Time `db:"agent_started_at"`
	AgentCompletedAt *time.Time `db:"agent_completed_at"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// RequestDetails is a request row joined with its property location and the
// tenant's contact summary. The agent pipeline reads the property fields to
// search for nearby contractors.
type RequestDetails struct {
	Request
	PropertyAddress    string  `db:"property_address"`
	PropertyUnitNumber *string `db:"property_unit_number"`
	PropertyCity       string  `db:"property_city"`
	PropertyState      string  `db:"property_state"`
	PropertyZipCode    string  `db:"property_zip_code"`
	TenantName         string  `db:"tenant_name"`
	TenantEmail        string  `db:"tenant_email"`
}

// CreateParams carries the fields for inserting a maintenance request.
type CreateParams struct {
	PropertyID  uuid.UUID
	TenantID    uuid.UUID
	LandlordID  uuid.UUID
	Title       string
	Description string
	Category    string
	Priority    string
}

// UpdateParams carries the mutable request fields; nil means unchanged.
type UpdateParams struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
	Status      *string
}

// ListFilters narrows List results; zero values mean no filter.
type ListFilters struct {
	Status     string
	Priority   string
	PropertyID uuid.UUID
}

const requestNotFoundMsg = "maintenance request not found"

const requestDetailsSelect = `
	SELECT m.id, m.property_id, m.tenant_id, m.landlord_id, m.title, m.description,
		m.category, m.priority, m.status, m.agent_status, m.agent_started_at,
		m.agent_completed_at, m.created_at, m.updated_at,
		p.address, p.unit_number, p.city, p.state, p.zip_code,
		t.full_name, t.email
	FROM maintenance_requests m
	JOIN properties p ON p.id = m.property_id
	JOIN profiles t ON t.id = m.tenant_id`

// Repository provides database operations for maintenance requests.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new maintenance repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanRequestDetails(row pgx.Row) (RequestDetails, error) {
	var m RequestDetails
	err := row.Scan(&m.ID, &m.PropertyID, &m.TenantID, &m.LandlordID, &m.Title,
		&m.Description, &m.Category, &m.Priority, &m.Status, &m.AgentStatus,
		&m.AgentStartedAt, &m.AgentCompletedAt, &m.CreatedAt, &m.UpdatedAt,
		&m.PropertyAddress, &m.PropertyUnitNumber, &m.PropertyCity, &m.PropertyState,
		&m.PropertyZipCode, &m.TenantName, &m.TenantEmail)
	return m, err
}

// Create inserts a maintenance request with pending statuses.
func (r *Repository) Create(ctx context.Context, params CreateParams) (RequestDetails, error) {
	query := `
		INSERT INTO maintenance_requests (
			id, property_id, tenant_id, landlord_id, title, description,
			category, priority, status, agent_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending', 'pending')
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		uuid.New(), params.PropertyID, params.TenantID, params.LandlordID,
		params.Title, params.Description, params.Category, params.Priority).Scan(&id)
	if err != nil {
		return RequestDetails{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID loads a request with property and tenant details.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (RequestDetails, error) {
	m, err := scanRequestDetails(r.pool.QueryRow(ctx, requestDetailsSelect+` WHERE m.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return RequestDetails{}, apperr.NotFound(requestNotFoundMsg)
	}
	return m, err
}

// ListByLandlord returns requests for properties the landlord owns.
func (r *Repository) ListByLandlord(ctx context.Context, landlordID uuid.UUID, filters ListFilters) ([]RequestDetails, error) {
	return r.list(ctx, `m.landlord_id = $1`, landlordID, filters)
}

// ListByTenant returns requests filed by the tenant.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID, filters ListFilters) ([]RequestDetails, error) {
	return r.list(ctx, `m.tenant_id = $1`, tenantID, filters)
}

func (r *Repository) list(ctx context.Context, scope string, scopeID uuid.UUID, filters ListFilters) ([]RequestDetails, error) {
	query := requestDetailsSelect + ` WHERE ` + scope
	args := []any{scopeID}

	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(` AND m.status = $%d`, len(args))
	}
	if filters.Priority != "" {
		args = append(args, filters.Priority)
		query += fmt.Sprintf(` AND m.priority = $%d`, len(args))
	}
	if filters.PropertyID != uuid.Nil {
		args = append(args, filters.PropertyID)
		query += fmt.Sprintf(` AND m.property_id = $%d`, len(args))
	}
	query += ` ORDER BY m.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]RequestDetails, 0)
	for rows.Next() {
		m, err := scanRequestDetails(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// Update applies the non-nil fields for a request.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (RequestDetails, error) {
	query := `
		UPDATE maintenance_requests SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			category = COALESCE($4, category),
			priority = COALESCE($5, priority),
			status = COALESCE($6, status),
			updated_at = now()
		WHERE id = $1
		RETURNING id`

	var updated uuid.UUID
	err := r.pool.QueryRow(ctx, query, id,
		params.Title, params.Description, params.Category, params.Priority, params.Status).Scan(&updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return RequestDetails{}, apperr.NotFound(requestNotFoundMsg)
	}
	if err != nil {
		return RequestDetails{}, err
	}
	return r.GetByID(ctx, updated)
}

// Delete removes a maintenance request.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM maintenance_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(requestNotFoundMsg)
	}
	return nil
}

// BeginShopping transitions the request's agent status to shopping and stamps
// the start time. The conditional update guarantees at most one active run:
// a request already shopping is left untouched and Conflict is returned.
func (r *Repository) BeginShopping(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE maintenance_requests
		SET agent_status = $2, agent_started_at = now(), agent_completed_at = NULL, updated_at = now()
		WHERE id = $1 AND agent_status <> $2`,
		id, AgentStatusShopping)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("agent is already shopping for this request")
	}
	return nil
}

// SetAgentStatus records a terminal agent status and stamps the completion time.
func (r *Repository) SetAgentStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE maintenance_requests
		SET agent_status = $2, agent_completed_at = now(), updated_at = now()
		WHERE id = $1`,
		id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(requestNotFoundMsg)
	}
	return nil
}
