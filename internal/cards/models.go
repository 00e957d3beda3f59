package cards

import (
	"time"

	"github.com/google/uuid"
)

// Brand of a stored card, detected from the number prefix
type Brand string

const (
	BrandVisa       Brand = "VISA"
	BrandMastercard Brand = "MASTERCARD"
	BrandAmex       Brand = "AMEX"
	BrandDiscover   Brand = "DISCOVER"
	BrandUnknown    Brand = "UNKNOWN"
)

// PaymentCard stores a tokenized card. The full number never touches
// the database, only the token and the last four digits.
type PaymentCard struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CardToken   string    `gorm:"uniqueIndex;not null" json:"-"`
	LastFour    string    `gorm:"type:varchar(4);not null" json:"last_four"`
	Brand       Brand     `gorm:"type:varchar(20);not null" json:"brand"`
	HolderName  string    `gorm:"not null" json:"holder_name"`
	ExpiryMonth int       `gorm:"not null" json:"expiry_month"`
	ExpiryYear  int       `gorm:"not null" json:"expiry_year"`
	IsDefault   bool      `gorm:"not null;default:false" json:"is_default"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PaymentCard) TableName() string {
	return "payment_cards"
}
