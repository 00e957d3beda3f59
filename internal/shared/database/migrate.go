package database

import (
	"tavola/internal/cards"
	"tavola/internal/cart"
	"tavola/internal/menu"
	"tavola/internal/notifications"
	"tavola/internal/orders"
	"tavola/internal/reservations"
	"tavola/internal/reviews"
	"tavola/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&menu.MenuItem{},
		&menu.Favorite{},
		&cart.Cart{},
		&cart.CartItem{},
		&orders.Order{},
		&orders.OrderItem{},
		&reservations.Reservation{},
		&reviews.Review{},
		&cards.PaymentCard{},
		&notifications.Notification{},
	)
}
