package main

import (
	"fmt"
	"log"
	"time"

	"tavola/internal/cart"
	"tavola/internal/menu"
	"tavola/internal/reservations"
	"tavola/internal/shared/config"
	"tavola/internal/shared/database"
	"tavola/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Tavola Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"notifications",
		"reviews",
		"order_items",
		"orders",
		"payment_cards",
		"reservations",
		"cart_items",
		"carts",
		"user_favorites",
		"menu_items",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

func (s *Seeder) SeedAll() error {
	seededUsers, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedMenu(); err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}

	if err := s.SeedReservations(seededUsers); err != nil {
		return fmt.Errorf("failed to seed reservations: %w", err)
	}

	return nil
}

// SeedUsers creates one admin and a handful of demo customers, each
// with an empty cart. All accounts use the password "password123".
func (s *Seeder) SeedUsers() ([]users.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	seed := []users.User{
		{
			FirstName:   "Ava",
			LastName:    "Romano",
			Email:       "admin@tavola.restaurant",
			Password:    string(hashed),
			PhoneNumber: "+1-555-0100",
			Role:        users.RoleAdmin,
		},
		{
			FirstName:   "Marco",
			LastName:    "Bellini",
			Email:       "marco@example.com",
			Password:    string(hashed),
			PhoneNumber: "+1-555-0101",
			Role:        users.RoleCustomer,
		},
		{
			FirstName:   "Sofia",
			LastName:    "Conti",
			Email:       "sofia@example.com",
			Password:    string(hashed),
			PhoneNumber: "+1-555-0102",
			Role:        users.RoleCustomer,
		},
		{
			FirstName:   "Luca",
			LastName:    "Greco",
			Email:       "luca@example.com",
			Password:    string(hashed),
			PhoneNumber: "+1-555-0103",
			Role:        users.RoleCustomer,
		},
	}

	for i := range seed {
		seed[i].Active = true
		seed[i].NotifyOrders = true
		seed[i].NotifyReservations = true
		seed[i].NotifyPromotions = true

		if err := s.db.PostgreSQL.Create(&seed[i]).Error; err != nil {
			return nil, err
		}
		if err := s.db.PostgreSQL.Create(&cart.Cart{UserID: seed[i].ID}).Error; err != nil {
			return nil, err
		}
		fmt.Printf("  Created user: %s (%s)\n", seed[i].Email, seed[i].Role)
	}

	return seed, nil
}

func (s *Seeder) SeedMenu() error {
	items := []menu.MenuItem{
		{Name: "Bruschetta al Pomodoro", Description: "Grilled bread, marinated tomatoes, basil, extra virgin olive oil", Price: 9.50, Category: menu.CategoryAppetizers, PreparationTime: 10},
		{Name: "Arancini Siciliani", Description: "Crispy risotto balls stuffed with mozzarella and peas", Price: 11.00, Category: menu.CategoryAppetizers, PreparationTime: 15},
		{Name: "Minestrone", Description: "Seasonal vegetable soup with cannellini beans", Price: 8.00, Category: menu.CategorySoups, PreparationTime: 10},
		{Name: "Insalata Caprese", Description: "Buffalo mozzarella, heirloom tomatoes, basil", Price: 12.50, Category: menu.CategorySalads, PreparationTime: 10},
		{Name: "Spaghetti Carbonara", Description: "Guanciale, egg yolk, pecorino romano, black pepper", Price: 17.00, Category: menu.CategoryPasta, PreparationTime: 20},
		{Name: "Tagliatelle al Ragù", Description: "Slow-braised beef and pork ragù, parmigiano", Price: 18.50, Category: menu.CategoryPasta, PreparationTime: 20},
		{Name: "Osso Buco alla Milanese", Description: "Braised veal shank, saffron risotto, gremolata", Price: 32.00, Category: menu.CategoryMainCourse, PreparationTime: 35},
		{Name: "Pollo al Mattone", Description: "Brick-pressed half chicken, rosemary potatoes", Price: 24.00, Category: menu.CategoryMainCourse, PreparationTime: 30},
		{Name: "Branzino al Forno", Description: "Whole roasted sea bass, lemon, capers, olives", Price: 29.00, Category: menu.CategorySeafood, PreparationTime: 30},
		{Name: "Melanzane alla Parmigiana", Description: "Layered eggplant, tomato, mozzarella, basil", Price: 19.00, Category: menu.CategoryVegetarian, PreparationTime: 25},
		{Name: "Tiramisù", Description: "Espresso-soaked savoiardi, mascarpone cream, cocoa", Price: 9.00, Category: menu.CategoryDesserts, PreparationTime: 5},
		{Name: "Panna Cotta", Description: "Vanilla bean panna cotta, berry coulis", Price: 8.50, Category: menu.CategoryDesserts, PreparationTime: 5},
		{Name: "Espresso", Description: "Double shot, single origin", Price: 3.50, Category: menu.CategoryBeverages, PreparationTime: 3},
		{Name: "Negroni", Description: "Gin, campari, sweet vermouth", Price: 13.00, Category: menu.CategoryBeverages, PreparationTime: 5},
		{Name: "Tasting Menu del Giorno", Description: "Five courses chosen by the chef", Price: 75.00, Category: menu.CategorySpecials, PreparationTime: 90},
	}

	for i := range items {
		items[i].Available = true
		if err := s.db.PostgreSQL.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	fmt.Printf("  Created %d menu items\n", len(items))
	return nil
}

// SeedReservations books a few upcoming tables for the demo customers.
func (s *Seeder) SeedReservations(seededUsers []users.User) error {
	if len(seededUsers) < 4 {
		return fmt.Errorf("expected at least 4 seeded users, got %d", len(seededUsers))
	}

	tonight := time.Now().Truncate(time.Hour).Add(6 * time.Hour)
	seed := []reservations.Reservation{
		{
			UserID:       seededUsers[1].ID,
			DateTime:     tonight,
			GuestCount:   2,
			TableNumbers: []int{3},
			TableNumber:  3,
			Status:       reservations.StatusConfirmed,
		},
		{
			UserID:          seededUsers[2].ID,
			DateTime:        tonight,
			GuestCount:      6,
			TableNumbers:    []int{7, 8},
			TableNumber:     7,
			Status:          reservations.StatusPending,
			SpecialRequests: "Window seating if possible",
		},
		{
			UserID:       seededUsers[3].ID,
			DateTime:     tonight.Add(48 * time.Hour),
			GuestCount:   4,
			TableNumbers: []int{1, 2},
			TableNumber:  1,
			Status:       reservations.StatusPending,
		},
	}

	for i := range seed {
		if err := s.db.PostgreSQL.Create(&seed[i]).Error; err != nil {
			return err
		}
	}
	fmt.Printf("  Created %d reservations\n", len(seed))
	return nil
}
