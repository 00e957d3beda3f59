package reservations

import (
	"time"

	"github.com/google/uuid"
)

// Reservation holds a set of tables for a time slot. TableNumbers is
// the source of truth; TableNumber mirrors its first element for
// consumers that predate multi-table bookings.
type Reservation struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	DateTime        time.Time `gorm:"index;not null" json:"date_time"`
	GuestCount      int       `gorm:"not null" json:"guest_count"`
	TableNumbers    []int     `gorm:"serializer:json" json:"table_numbers"`
	TableNumber     int       `json:"table_number"`
	Status          Status    `gorm:"type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	SpecialRequests string    `gorm:"type:text" json:"special_requests,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}
