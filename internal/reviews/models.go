package reviews

import (
	"time"

	"github.com/google/uuid"
)

// Review is one customer's rating of one menu item. A user may review
// a given item only once.
type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_item_review;not null" json:"user_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_item_review;not null" json:"menu_item_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
