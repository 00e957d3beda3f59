package orders

import (
	"time"

	"github.com/google/uuid"
)

// Order is a placed order. Item names and prices are snapshotted at
// placement so later menu edits don't rewrite history.
type Order struct {
	ID                  uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID              uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	Status              Status     `gorm:"type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	Type                OrderType  `gorm:"type:varchar(20);not null;default:'DINE_IN'" json:"type"`
	Total               float64    `gorm:"not null" json:"total"`
	SpecialInstructions string     `gorm:"type:text" json:"special_instructions,omitempty"`
	DeliveryAddress     string     `gorm:"type:text" json:"delivery_address,omitempty"`
	PaymentCardID       *uuid.UUID `gorm:"type:uuid" json:"payment_card_id,omitempty"`
	CardLastFour        string     `gorm:"type:varchar(4)" json:"card_last_four,omitempty"`
	EstimatedReadyAt    time.Time  `json:"estimated_ready_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE;" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	MenuItemID     uuid.UUID `gorm:"type:uuid;not null" json:"menu_item_id"`
	Name           string    `gorm:"not null" json:"name"`
	Price          float64   `gorm:"not null" json:"price"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	Customizations string    `gorm:"type:text" json:"customizations,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (oi *OrderItem) Subtotal() float64 {
	return oi.Price * float64(oi.Quantity)
}
