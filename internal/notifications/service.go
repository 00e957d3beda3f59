package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tavola/pkg/logger"
)

type Service interface {
	// Notify persists an in-app notification and queues the matching
	// email, honoring the user's channel preferences. A user who opted
	// out of the type gets neither.
	Notify(ctx context.Context, userID uuid.UUID, notifType NotificationType, title, message string) error

	GetNotifications(ctx context.Context, userID uuid.UUID) ([]Notification, error)
	GetUnread(ctx context.Context, userID uuid.UUID) ([]Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo     Repository
	producer Producer
	logger   *logger.Logger
}

func NewService(repo Repository, producer Producer) Service {
	return &service{
		repo:     repo,
		producer: producer,
		logger:   logger.GetDefault(),
	}
}

func (s *service) Notify(ctx context.Context, userID uuid.UUID, notifType NotificationType, title, message string) error {
	recipient, err := s.repo.GetRecipient(ctx, userID)
	if err != nil {
		return err
	}

	if !wantsType(recipient, notifType) {
		return nil
	}

	n := &Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.producer == nil {
		return nil
	}

	event := &EmailEvent{
		NotificationID: n.ID,
		UserID:         userID,
		RecipientEmail: recipient.Email,
		RecipientName:  recipient.FirstName + " " + recipient.LastName,
		Type:           notifType,
		Subject:        title,
		Body:           message,
		CreatedAt:      time.Now(),
	}

	// Email is best-effort, the in-app row is already committed
	if err := s.producer.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish notification event", "user_id", userID, "error", err)
	}
	return nil
}

func (s *service) GetNotifications(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) GetUnread(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	return s.repo.GetUnreadByUser(ctx, userID)
}

func (s *service) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func wantsType(r *Recipient, t NotificationType) bool {
	switch t {
	case TypeOrder:
		return r.NotifyOrders
	case TypeReservation:
		return r.NotifyReservations
	case TypePromotion:
		return r.NotifyPromotions
	default:
		return true
	}
}
