package cart

import (
	"time"

	"github.com/google/uuid"

	"tavola/internal/menu"
)

// Cart is the per-user shopping cart. One cart per user, created at
// registration and emptied on checkout rather than deleted.
type Cart struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE;" json:"items"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CartID         uuid.UUID `gorm:"type:uuid;index;not null" json:"cart_id"`
	MenuItemID     uuid.UUID `gorm:"type:uuid;index;not null" json:"menu_item_id"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	Customizations string    `gorm:"type:text" json:"customizations,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	MenuItem *menu.MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE;" json:"menu_item,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal is the line total using the item's current menu price.
func (ci *CartItem) Subtotal() float64 {
	if ci.MenuItem == nil {
		return 0
	}
	return ci.MenuItem.Price * float64(ci.Quantity)
}

// Total sums all line subtotals.
func (c *Cart) Total() float64 {
	var total float64
	for i := range c.Items {
		total += c.Items[i].Subtotal()
	}
	return total
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}
