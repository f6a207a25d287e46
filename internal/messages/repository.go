package messages

import (
	"context"
	"time"

	"leasewell_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Message is a direct message between a landlord and a tenant about a property.
type Message struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PropertyID  uuid.UUID `db:"property_id" json:"propertyId"`
	SenderID    uuid.UUID `db:"sender_id" json:"senderId"`
	RecipientID uuid.UUID `db:"recipient_id" json:"recipientId"`
	Content     string    `db:"content" json:"content"`
	Read        bool      `db:"read" json:"read"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

const messageColumns = `id, property_id, sender_id, recipient_id, content, read, created_at`

// Repository provides database operations for messages.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new messages repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a message.
func (r *Repository) Create(ctx context.Context, propertyID, senderID, recipientID uuid.UUID, content string) (Message, error) {
	var m Message
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (id, property_id, sender_id, recipient_id, content, read)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING `+messageColumns,
		uuid.New(), propertyID, senderID, recipientID, content).Scan(
		&m.ID, &m.PropertyID, &m.SenderID, &m.RecipientID, &m.Content, &m.Read, &m.CreatedAt)
	return m, err
}

// ListConversation returns messages between the user and the other party for
// a property, oldest first.
func (r *Repository) ListConversation(ctx context.Context, propertyID, userID, otherID uuid.UUID) ([]Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE property_id = $1
		  AND ((sender_id = $2 AND recipient_id = $3) OR (sender_id = $3 AND recipient_id = $2))
		ORDER BY created_at ASC`,
		propertyID, userID, otherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.PropertyID, &m.SenderID, &m.RecipientID, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// MarkRead marks a message addressed to the user as read.
func (r *Repository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE messages SET read = true WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("message not found")
	}
	return nil
}
