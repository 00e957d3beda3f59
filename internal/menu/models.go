package menu

import (
	"time"

	"github.com/google/uuid"
)

// Category groups menu items on the public menu
type Category string

const (
	CategoryAppetizers Category = "APPETIZERS"
	CategoryMainCourse Category = "MAIN_COURSE"
	CategoryDesserts   Category = "DESSERTS"
	CategoryBeverages  Category = "BEVERAGES"
	CategorySalads     Category = "SALADS"
	CategorySoups      Category = "SOUPS"
	CategoryPasta      Category = "PASTA"
	CategorySeafood    Category = "SEAFOOD"
	CategoryVegetarian Category = "VEGETARIAN"
	CategorySpecials   Category = "SPECIALS"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryAppetizers, CategoryMainCourse, CategoryDesserts, CategoryBeverages,
		CategorySalads, CategorySoups, CategoryPasta, CategorySeafood,
		CategoryVegetarian, CategorySpecials:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// MenuItem defines a dish on the menu
type MenuItem struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Price           float64   `gorm:"not null" json:"price"`
	ImageURL        string    `gorm:"type:text" json:"image_url,omitempty"`
	Category        Category  `gorm:"type:varchar(20);index;not null" json:"category"`
	Available       bool      `gorm:"not null;default:true" json:"available"`
	PreparationTime int       `json:"preparation_time"` // minutes
	AverageRating   float64   `gorm:"not null;default:0" json:"average_rating"`
	TotalReviews    int       `gorm:"not null;default:0" json:"total_reviews"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

// Favorite links a user to a menu item they starred
type Favorite struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_menu_item;not null" json:"user_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_menu_item;not null" json:"menu_item_id"`
	CreatedAt  time.Time `json:"created_at"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE;" json:"menu_item,omitempty"`
}

func (Favorite) TableName() string {
	return "user_favorites"
}
