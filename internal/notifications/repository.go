package notifications

import (
	"context"
	"encoding/json"
	"time"

	"leasewell_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Notification types written by the application.
const (
	TypeMaintenance = "maintenance"
	TypePayment     = "payment"
	TypeInvite      = "invite"
	TypeMessage     = "message"
)

// Notification is an in-app notification for a user.
type Notification struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	UserID    uuid.UUID      `db:"user_id" json:"userId"`
	Title     string         `db:"title" json:"title"`
	Message   string         `db:"message" json:"message"`
	Type      string         `db:"type" json:"type"`
	Read      bool           `db:"read" json:"read"`
	Metadata  map[string]any `db:"metadata" json:"metadata,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

const notificationColumns = `id, user_id, title, message, type, read, metadata, created_at`

// Repository provides database operations for notifications.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new notifications repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanNotification(row pgx.Row) (Notification, error) {
	var n Notification
	var metadata []byte
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &metadata, &n.CreatedAt)
	if err != nil {
		return Notification{}, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &n.Metadata); err != nil {
			return Notification{}, err
		}
	}
	return n, nil
}

// Create inserts a notification.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, title, message, ntype string, metadata map[string]any) (Notification, error) {
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return Notification{}, err
	}

	return scanNotification(r.pool.QueryRow(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type, read, metadata)
		VALUES ($1, $2, $3, $4, $5, false, $6)
		RETURNING `+notificationColumns,
		uuid.New(), userID, title, message, ntype, encoded))
}

// List returns the user's notifications, newest first.
func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT 100`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// UnreadCount returns the number of unread notifications for the user.
func (r *Repository) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE user_id = $1 AND read = false`,
		userID).Scan(&count)
	return count, err
}

// MarkRead marks one of the user's notifications as read.
func (r *Repository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}

// MarkAllRead marks all of the user's notifications as read.
func (r *Repository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1 AND read = false`, userID)
	return err
}

// Delete removes one of the user's notifications.
func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}
