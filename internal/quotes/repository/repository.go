package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"leasewell_backend/internal/maintenance/agent"
	"leasewell_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Quote status values.
const (
	StatusReceived = "received"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Quote is the database model for a contractor quote.
type Quote struct {
	ID                    uuid.UUID               `db:"id"`
	MaintenanceRequestID  uuid.UUID               `db:"maintenance_request_id"`
	ContractorName        string                  `db:"contractor_name"`
	ContractorPhone       *string                 `db:"contractor_phone"`
	ContractorEmail       *string                 `db:"contractor_email"`
	ContractorAddress     string                  `db:"contractor_address"`
	ContractorRating      *float64                `db:"contractor_rating"`
	ContractorReviewCount int                     `db:"contractor_review_count"`
	Amount                float64                 `db:"quote_amount"`
	Notes                 string                  `db:"quote_notes"`
	Availability          string                  `db:"availability"`
	Status                string                  `db:"status"`
	Transcript            []agent.TranscriptEntry `db:"negotiation_messages"`
	CreatedAt             time.Time               `db:"created_at"`
	UpdatedAt             time.Time               `db:"updated_at"`
}

const quoteNotFoundMsg = "quote not found"

const quoteColumns = `id, maintenance_request_id, contractor_name, contractor_phone,
	contractor_email, contractor_address, contractor_rating, contractor_review_count,
	quote_amount, quote_notes, availability, status, negotiation_messages, created_at, updated_at`

// Repository provides database operations for contractor quotes.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new quotes repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanQuote(row pgx.Row) (Quote, error) {
	var q Quote
	var transcript []byte
	err := row.Scan(&q.ID, &q.MaintenanceRequestID, &q.ContractorName, &q.ContractorPhone,
		&q.ContractorEmail, &q.ContractorAddress, &q.ContractorRating, &q.ContractorReviewCount,
		&q.Amount, &q.Notes, &q.Availability, &q.Status, &transcript, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return Quote{}, err
	}
	if len(transcript) > 0 {
		if err := json.Unmarshal(transcript, &q.Transcript); err != nil {
			return Quote{}, err
		}
	}
	return q, nil
}

// SaveQuote persists a quote collected by the shopping agent.
func (r *Repository) SaveQuote(ctx context.Context, requestID uuid.UUID, quote agent.Quote) error {
	transcript, err := json.Marshal(quote.Transcript)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO contractor_quotes (
			id, maintenance_request_id, contractor_name, contractor_phone,
			contractor_email, contractor_address, contractor_rating,
			contractor_review_count, quote_amount, quote_notes, availability,
			status, negotiation_messages
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		uuid.New(), requestID, quote.ContractorName, quote.ContractorPhone,
		quote.ContractorEmail, quote.ContractorAddress, quote.ContractorRating,
		quote.ContractorReviewCount, quote.Amount, quote.Notes, quote.Availability,
		StatusReceived, transcript)
	return err
}

// GetByID loads a quote by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Quote, error) {
	q, err := scanQuote(r.pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM contractor_quotes WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, apperr.NotFound(quoteNotFoundMsg)
	}
	return q, err
}

// ListByRequest returns quotes for a maintenance request, cheapest first.
func (r *Repository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]Quote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+quoteColumns+` FROM contractor_quotes WHERE maintenance_request_id = $1 ORDER BY quote_amount ASC`,
		requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, q)
	}
	return items, rows.Err()
}

// Accept marks a quote as accepted. Accepting an already accepted quote is a
// no-op; the partial unique index on accepted quotes keeps at most one
// accepted quote per request.
func (r *Repository) Accept(ctx context.Context, id uuid.UUID) (Quote, error) {
	q, err := scanQuote(r.pool.QueryRow(ctx, `
		UPDATE contractor_quotes
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+quoteColumns,
		id, StatusAccepted))
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, apperr.NotFound(quoteNotFoundMsg)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return Quote{}, apperr.Conflict("another quote is already accepted for this request")
	}
	return q, err
}

var _ agent.QuoteWriter = (*Repository)(nil)
