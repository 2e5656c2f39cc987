package notification

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/notification"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/sse"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.NotificationRepository
	hub    *sse.Hub
	config Config

	queue  chan notification.CreateNotificationRequest
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(repo notification.NotificationRepository, hub *sse.Hub, cfg Config) notification.NotificationService {
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
		hub:    hub,
		config: cfg,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	log.Printf("[NotificationService] Started with %d workers, batch size %d, flush interval %v",
		cfg.WorkerCount, cfg.BatchSize, cfg.FlushInterval)

	return s
}

// worker is the background worker that processes the notification queue.
// Notifications are persisted first; the SSE push only happens for batches
// that made it to the database.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, req := range batch {
			notifications[i] = toEntity(req)
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			log.Printf("[NotificationWorker-%d] Failed to batch insert: %v", id, err)
		} else {
			for _, n := range notifications {
				s.hub.Publish(n.RecipientID, sse.Event{
					RecipientID: n.RecipientID,
					Name:        "notification",
					Payload:     toResponse(n),
				})
			}
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

// QueueNotification implements notification.NotificationService.
func (s *service) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) {
	enabled, err := s.repo.IsNotificationEnabled(ctx, req.RecipientID, req.Type)
	if err != nil {
		log.Printf("[NotificationService] Failed to check preference: %v", err)
		enabled = true
	}
	if !enabled {
		return
	}

	select {
	case s.queue <- req:
	default:
		// Queue full, insert synchronously
		if err := s.directInsert(ctx, req); err != nil {
			log.Printf("[NotificationService] Direct insert failed: %v", err)
		}
	}
}

// QueueBulkNotification implements notification.NotificationService.
func (s *service) QueueBulkNotification(ctx context.Context, recipientIDs []string, req notification.CreateNotificationRequest) {
	for _, recipientID := range recipientIDs {
		r := req
		r.RecipientID = recipientID
		s.QueueNotification(ctx, r)
	}
}

// directInsert inserts a notification directly when the queue is full
func (s *service) directInsert(ctx context.Context, req notification.CreateNotificationRequest) error {
	n := toEntity(req)
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.hub.Publish(n.RecipientID, sse.Event{
		RecipientID: n.RecipientID,
		Name:        "notification",
		Payload:     toResponse(n),
	})
	return nil
}

func toEntity(req notification.CreateNotificationRequest) *notification.Notification {
	return &notification.Notification{
		ID:             uuid.New().String(),
		RecipientID:    req.RecipientID,
		SenderID:       req.SenderID,
		Type:           req.Type,
		Title:          req.Title,
		Message:        req.Message,
		RelatedLeaveID: req.RelatedLeaveID,
		SentInApp:      true,
		IsRead:         false,
		CreatedAt:      time.Now(),
	}
}

func toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:             n.ID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		RelatedLeaveID: n.RelatedLeaveID,
		IsRead:         n.IsRead,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
	}
}

// GetNotifications implements notification.NotificationService.
func (s *service) GetNotifications(ctx context.Context, recipientID string, unreadOnly bool, page, pageSize int) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.List(ctx, recipientID, unreadOnly, page, pageSize)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.UnreadCount(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = toResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// GetUnreadCount implements notification.NotificationService.
func (s *service) GetUnreadCount(ctx context.Context, recipientID string) (*notification.UnreadCountResponse, error) {
	count, err := s.repo.UnreadCount(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return &notification.UnreadCountResponse{UnreadCount: count}, nil
}

// MarkAsRead implements notification.NotificationService.
func (s *service) MarkAsRead(ctx context.Context, recipientID string, req notification.MarkAsReadRequest) error {
	return s.repo.MarkAsRead(ctx, recipientID, req.NotificationIDs)
}

// MarkAllAsRead implements notification.NotificationService.
func (s *service) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return s.repo.MarkAllAsRead(ctx, recipientID)
}

// Delete implements notification.NotificationService.
func (s *service) Delete(ctx context.Context, recipientID, notificationID string) error {
	return s.repo.Delete(ctx, recipientID, notificationID)
}

// GetPreferences implements notification.NotificationService. Types without
// a stored row default to fully enabled.
func (s *service) GetPreferences(ctx context.Context, recipientID string) ([]notification.PreferenceResponse, error) {
	prefs, err := s.repo.ListPreferences(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	prefMap := make(map[notification.NotificationType]*notification.Preference)
	for _, p := range prefs {
		prefMap[p.Type] = p
	}

	allTypes := notification.AllNotificationTypes()
	responses := make([]notification.PreferenceResponse, len(allTypes))
	for i, t := range allTypes {
		if p, ok := prefMap[t]; ok {
			responses[i] = notification.PreferenceResponse{
				Type:         t,
				InAppEnabled: p.InAppEnabled,
				EmailEnabled: p.EmailEnabled,
			}
		} else {
			responses[i] = notification.PreferenceResponse{
				Type:         t,
				InAppEnabled: true,
				EmailEnabled: true,
			}
		}
	}

	return responses, nil
}

// UpdatePreference implements notification.NotificationService.
func (s *service) UpdatePreference(ctx context.Context, recipientID string, req notification.UpdatePreferenceRequest) error {
	pref := &notification.Preference{
		UserID:       recipientID,
		Type:         req.Type,
		InAppEnabled: req.InAppEnabled,
		EmailEnabled: req.EmailEnabled,
		UpdatedAt:    time.Now(),
	}
	return s.repo.UpsertPreference(ctx, pref)
}

// Subscribe implements notification.NotificationService.
func (s *service) Subscribe(recipientID string) (<-chan sse.Event, func()) {
	return s.hub.Subscribe(recipientID)
}

// Stop implements notification.NotificationService.
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	log.Println("[NotificationService] Stopped")
}
