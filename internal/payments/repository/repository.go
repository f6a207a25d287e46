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

// Payment status values.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
)

// Payment is the database model for a rent payment.
type Payment struct {
	ID                    uuid.UUID  `db:"id"`
	LeaseID               uuid.UUID  `db:"lease_id"`
	TenantID              uuid.UUID  `db:"tenant_id"`
	LandlordID            uuid.UUID  `db:"landlord_id"`
	Amount                float64    `db:"amount"`
	Status                string     `db:"status"`
	PaymentMethod         string     `db:"payment_method"`
	StripePaymentIntentID *string    `db:"stripe_payment_intent_id"`
	Notes                 *string    `db:"notes"`
	PaidAt                *time.Time `db:"paid_at"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

// CreateParams carries the fields for inserting a payment.
type CreateParams struct {
	LeaseID               uuid.UUID
	TenantID              uuid.UUID
	LandlordID            uuid.UUID
	Amount                float64
	Status                string
	PaymentMethod         string
	StripePaymentIntentID *string
	Notes                 *string
	PaidAt                *time.Time
}

const paymentNotFoundMsg = "payment not found"

const paymentColumns = `id, lease_id, tenant_id, landlord_id, amount, status,
	payment_method, stripe_payment_intent_id, notes, paid_at, created_at, updated_at`

// Repository provides database operations for payments.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new payments repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanPayment(row pgx.Row) (Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.LeaseID, &p.TenantID, &p.LandlordID, &p.Amount, &p.Status,
		&p.PaymentMethod, &p.StripePaymentIntentID, &p.Notes, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a payment.
func (r *Repository) Create(ctx context.Context, params CreateParams) (Payment, error) {
	query := `
		INSERT INTO payments (
			id, lease_id, tenant_id, landlord_id, amount, status,
			payment_method, stripe_payment_intent_id, notes, paid_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + paymentColumns

	return scanPayment(r.pool.QueryRow(ctx, query,
		uuid.New(), params.LeaseID, params.TenantID, params.LandlordID, params.Amount,
		params.Status, params.PaymentMethod, params.StripePaymentIntentID,
		params.Notes, params.PaidAt))
}

// GetByID loads a payment by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Payment, error) {
	p, err := scanPayment(r.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Payment{}, apperr.NotFound(paymentNotFoundMsg)
	}
	return p, err
}

// SetStatusByIntent records the outcome reported by the payment processor.
// Paid payments are stamped with the payment time.
func (r *Repository) SetStatusByIntent(ctx context.Context, intentID, status string) (Payment, error) {
	query := `
		UPDATE payments SET
			status = $2,
			paid_at = CASE WHEN $2 = 'paid' THEN now() ELSE paid_at END,
			updated_at = now()
		WHERE stripe_payment_intent_id = $1
		RETURNING ` + paymentColumns

	p, err := scanPayment(r.pool.QueryRow(ctx, query, intentID, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return Payment{}, apperr.NotFound(paymentNotFoundMsg)
	}
	return p, err
}

// ListByLandlord returns payments to the landlord, newest first.
func (r *Repository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Payment, error) {
	return r.list(ctx, `landlord_id = $1`, landlordID)
}

// ListByTenant returns payments made by the tenant, newest first.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Payment, error) {
	return r.list(ctx, `tenant_id = $1`, tenantID)
}

func (r *Repository) list(ctx context.Context, scope string, scopeID uuid.UUID) ([]Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE `+scope+` ORDER BY created_at DESC`, scopeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
