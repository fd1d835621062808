package notification

import "context"

type CreateRequest struct {
	RecipientID string
	Type        Type
	Title       string
	Content     string
	RelatedKind *string
	RelatedID   *string
}

// Service dispatches notifications. Notify is fire-and-forget: the workflow
// engine never blocks on, or fails because of, notification delivery.
type Service interface {
	Notify(req CreateRequest)
	List(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
	Close()
}
