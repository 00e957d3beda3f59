package admin

import (
	"context"

	"tavola/internal/menu"
	"tavola/internal/orders"
	"tavola/internal/reservations"
	"tavola/internal/users"
)

// DashboardStats is the admin landing-page summary
type DashboardStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalMenuItems    int64 `json:"total_menu_items"`
	TotalOrders       int64 `json:"total_orders"`
	TotalReservations int64 `json:"total_reservations"`
}

type Service interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type service struct {
	usersRepo        users.Repository
	menuRepo         menu.Repository
	ordersRepo       orders.Repository
	reservationsRepo reservations.Repository
}

func NewService(usersRepo users.Repository, menuRepo menu.Repository, ordersRepo orders.Repository, reservationsRepo reservations.Repository) Service {
	return &service{
		usersRepo:        usersRepo,
		menuRepo:         menuRepo,
		ordersRepo:       ordersRepo,
		reservationsRepo: reservationsRepo,
	}
}

func (s *service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalUsers, err = s.usersRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalMenuItems, err = s.menuRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.ordersRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalReservations, err = s.reservationsRepo.Count(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
