package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 50
	FlushInterval time.Duration // default: 2 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
	SendTimeout   time.Duration // default: 10 seconds
}

type service struct {
	hub    *sse.Hub
	sender notification.Sender
	config Config
	now    func() time.Time

	queue    chan notification.CreateNotificationRequest
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService creates a new notification service with background workers.
// sender may be nil when no external channel is configured.
func NewNotificationService(hub *sse.Hub, sender notification.Sender, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 50
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 2 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}
	if cfg.SendTimeout == 0 {
		cfg.SendTimeout = 10 * time.Second
	}

	s := &service{
		hub:    hub,
		sender: sender,
		config: cfg,
		now:    time.Now,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started",
		"workers", cfg.WorkerCount,
		"batch_size", cfg.BatchSize,
		"flush_interval", cfg.FlushInterval,
	)

	return s
}

// worker drains the queue in batches and delivers each notification
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		for _, req := range batch {
			s.deliver(s.build(req))
		}
		slog.Debug("Notifications delivered", "worker", id, "count", len(batch))
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
			// drain what is already queued
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *service) build(req notification.CreateNotificationRequest) notification.Notification {
	return notification.Notification{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		Title:      req.Title,
		Message:    req.Message,
		Data:       req.Data,
		CreatedAt:  s.now(),
	}
}

// deliver pushes to SSE subscribers, then to the external sender
func (s *service) deliver(n notification.Notification) {
	s.hub.PublishToMany([]string{n.EmployeeID, notification.TopicReviewers}, sse.Event{
		Name: "notification",
		Data: notification.NewNotificationResponse(n),
	})

	if s.sender == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.SendTimeout)
	defer cancel()
	if err := s.sender.Send(ctx, n); err != nil {
		slog.Warn("Failed to send notification", "type", n.Type, "employee_id", n.EmployeeID, "error", err)
	}
}

// QueueNotification queues a notification for async processing
func (s *service) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	select {
	case <-s.stopCh:
		return notification.ErrServiceStopped
	default:
	}

	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// queue full
		s.deliver(s.build(req))
		return nil
	}
}

// Subscribe streams the notifications of the session's own employee id.
// Sessions that see every record also receive the reviewers feed.
func (s *service) Subscribe(ctx context.Context, session user.Session) (<-chan notification.NotificationResponse, func()) {
	var topics []string
	caps := user.Resolve(session)
	if session.Role() != user.RolePublic && session.EmployeeID != "" {
		topics = append(topics, session.EmployeeID)
	}
	if !caps.SelfOnly {
		topics = append(topics, notification.TopicReviewers)
	}

	out := make(chan notification.NotificationResponse, 10)
	if len(topics) == 0 {
		close(out)
		return out, func() {}
	}

	ch, cleanup := s.hub.Subscribe(topics...)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(notification.NotificationResponse)
				if !ok {
					continue
				}
				select {
				case out <- resp:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop gracefully stops the notification service
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("Notification service stopped")
	})
}
