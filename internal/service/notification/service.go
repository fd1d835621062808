package notification

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/notification"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	config Config
	clock  clock.Clock

	queue  chan notification.CreateRequest
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewService creates a notification service with background workers that
// batch-insert queued notifications. Delivery is best-effort: failures are
// logged and never propagate to the caller.
func NewService(repo notification.Repository, clk clock.Clock, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		config: cfg,
		clock:  clk,
		queue:  make(chan notification.CreateRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	return s
}

func (s *service) toEntity(req notification.CreateRequest) notification.Notification {
	return notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: req.RecipientID,
		Type:        req.Type,
		Title:       req.Title,
		Content:     req.Content,
		RelatedKind: req.RelatedKind,
		RelatedID:   req.RelatedID,
		IsRead:      false,
		CreatedAt:   s.clock.Now(),
	}
}

// worker drains the queue, flushing on batch size, ticker, or shutdown.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]notification.Notification, len(batch))
		for i, req := range batch {
			notifications[i] = s.toEntity(req)
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			log.Printf("[NotificationWorker-%d] Failed to batch insert: %v", id, err)
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			flush()
			return
		}
	}
}

// Notify implements notification.Service. It never blocks: when the queue
// is full the notification is inserted inline on a short deadline.
func (s *service) Notify(req notification.CreateRequest) {
	select {
	case s.queue <- req:
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.CreateBatch(ctx, []notification.Notification{s.toEntity(req)}); err != nil {
			log.Printf("[NotificationService] Failed to insert notification: %v", err)
		}
	}
}

func (s *service) List(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]notification.Notification, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ListByRecipient(ctx, recipientID, unreadOnly, limit)
}

func (s *service) MarkRead(ctx context.Context, id, recipientID string) error {
	return s.repo.MarkRead(ctx, id, recipientID)
}

// Close stops the workers after flushing whatever is queued.
func (s *service) Close() {
	close(s.stopCh)
	s.wg.Wait()
}
