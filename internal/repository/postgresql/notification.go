package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/notification"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

// CreateBatch implements notification.Repository. IDs are assigned by the
// service so the batch can be built before touching the database.
func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, notifications []notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO notifications (id, recipient_id, type, title, content, related_kind, related_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, n := range notifications {
		batch.Queue(query, n.ID, n.RecipientID, n.Type, n.Title, n.Content, n.RelatedKind, n.RelatedID, n.IsRead, n.CreatedAt)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()
	for range notifications {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert notification batch: %w", err)
		}
	}
	return nil
}

// ListByRecipient implements notification.Repository.
func (r *notificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, recipient_id, type, title, content, related_kind, related_id, is_read, read_at, created_at
		FROM notifications
		WHERE recipient_id = $1 AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC
		LIMIT $3`

	rows, err := q.Query(ctx, query, recipientID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Content,
			&n.RelatedKind, &n.RelatedID, &n.IsRead, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead implements notification.Repository. The recipient predicate
// keeps one user from acknowledging another user's notifications.
func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, id, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND recipient_id = $2 AND is_read = FALSE`

	if _, err := q.Exec(ctx, query, id, recipientID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
