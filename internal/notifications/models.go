package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	TypeOrder       NotificationType = "ORDER"
	TypeReservation NotificationType = "RESERVATION"
	TypePromotion   NotificationType = "PROMOTION"
	TypeSystem      NotificationType = "SYSTEM"
)

// Notification is the in-app notification row
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;index;not null" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Read      bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// EmailEvent is what goes over the Kafka topic. The consumer renders
// it into an email; the in-app row is already persisted by then.
type EmailEvent struct {
	NotificationID uuid.UUID        `json:"notification_id"`
	UserID         uuid.UUID        `json:"user_id"`
	RecipientEmail string           `json:"recipient_email"`
	RecipientName  string           `json:"recipient_name"`
	Type           NotificationType `json:"type"`
	Subject        string           `json:"subject"`
	Body           string           `json:"body"`
	CreatedAt      time.Time        `json:"created_at"`
}

func (e *EmailEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey keeps a user's notifications ordered within a partition
func (e *EmailEvent) GetPartitionKey() string {
	return e.UserID.String()
}
