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

// Document is the database model for stored file metadata. The file content
// lives in object storage under ObjectKey.
type Document struct {
	ID          uuid.UUID  `db:"id"`
	OwnerID     uuid.UUID  `db:"owner_id"`
	PropertyID  *uuid.UUID `db:"property_id"`
	LeaseID     *uuid.UUID `db:"lease_id"`
	FileName    string     `db:"file_name"`
	ObjectKey   string     `db:"object_key"`
	ContentType string     `db:"content_type"`
	SizeBytes   int64      `db:"size_bytes"`
	CreatedAt   time.Time  `db:"created_at"`
}

// CreateParams carries the fields for inserting a document row.
type CreateParams struct {
	OwnerID     uuid.UUID
	PropertyID  *uuid.UUID
	LeaseID     *uuid.UUID
	FileName    string
	ObjectKey   string
	ContentType string
	SizeBytes   int64
}

const documentNotFoundMsg = "document not found"

const documentColumns = `id, owner_id, property_id, lease_id, file_name, object_key,
	content_type, size_bytes, created_at`

// Repository provides database operations for document metadata.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new documents repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanDocument(row pgx.Row) (Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.OwnerID, &d.PropertyID, &d.LeaseID, &d.FileName,
		&d.ObjectKey, &d.ContentType, &d.SizeBytes, &d.CreatedAt)
	return d, err
}

// Create inserts a document row.
func (r *Repository) Create(ctx context.Context, params CreateParams) (Document, error) {
	query := `
		INSERT INTO documents (id, owner_id, property_id, lease_id, file_name, object_key, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns

	return scanDocument(r.pool.QueryRow(ctx, query,
		uuid.New(), params.OwnerID, params.PropertyID, params.LeaseID,
		params.FileName, params.ObjectKey, params.ContentType, params.SizeBytes))
}

// GetByID loads a document owned by the user.
func (r *Repository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (Document, error) {
	d, err := scanDocument(r.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1 AND owner_id = $2`, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, apperr.NotFound(documentNotFoundMsg)
	}
	return d, err
}

// ListByOwner returns the user's documents, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// Delete removes a document row owned by the user.
func (r *Repository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(documentNotFoundMsg)
	}
	return nil
}
