package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

func IsValidRole(role string) bool {
	switch role {
	case string(RoleCustomer), string(RoleAdmin):
		return true
	default:
		return false
	}
}

type User struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName   string    `json:"first_name" gorm:"not null"`
	LastName    string    `json:"last_name" gorm:"not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"not null"` // hide in json
	PhoneNumber string    `json:"phone_number,omitempty"`
	Role        Role      `json:"role" gorm:"not null;default:'CUSTOMER'"`
	Active      bool      `json:"active" gorm:"not null;default:true"`

	// Notification preferences
	NotifyOrders       bool `json:"notify_orders" gorm:"not null;default:true"`
	NotifyReservations bool `json:"notify_reservations" gorm:"not null;default:true"`
	NotifyPromotions   bool `json:"notify_promotions" gorm:"not null;default:true"`

	ResetToken       string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
