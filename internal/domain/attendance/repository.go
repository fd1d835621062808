package attendance

import (
	"context"
	"time"
)

type EventFilter struct {
	RelationID *string
	StartDate  *string
	EndDate    *string
	Date       *string
	Page       int
	Limit      int
}

type EventRepository interface {
	// Create inserts a new event. The (relation_id, date) unique index is
	// the backstop for the one-event-per-day rule under concurrent clock-ins.
	Create(ctx context.Context, ev Event) (Event, error)

	GetByID(ctx context.Context, id string) (Event, error)
	GetByRelationAndDate(ctx context.Context, relationID string, date time.Time) (*Event, error)
	List(ctx context.Context, companyID string, filter EventFilter) ([]Event, int64, error)
	Update(ctx context.Context, ev Event) error
}
