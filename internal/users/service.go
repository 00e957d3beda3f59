package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidRole = errors.New("invalid role")

type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*User, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req UpdatePreferencesRequest) error

	// Admin operations
	GetAllUsers(ctx context.Context) ([]User, error)
	UpdateUserRole(ctx context.Context, userID uuid.UUID, role string) (*User, error)
	DeactivateUser(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.PhoneNumber = req.PhoneNumber

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) UpdatePreferences(ctx context.Context, userID uuid.UUID, req UpdatePreferencesRequest) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if req.NotifyOrders != nil {
		user.NotifyOrders = *req.NotifyOrders
	}
	if req.NotifyReservations != nil {
		user.NotifyReservations = *req.NotifyReservations
	}
	if req.NotifyPromotions != nil {
		user.NotifyPromotions = *req.NotifyPromotions
	}

	return s.repo.Update(ctx, user)
}

func (s *service) GetAllUsers(ctx context.Context) ([]User, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) UpdateUserRole(ctx context.Context, userID uuid.UUID, role string) (*User, error) {
	if !IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	if err := s.repo.UpdateRole(ctx, userID, Role(role)); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *service) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Deactivate(ctx, userID)
}
