package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"tavola/internal/menu"
)

var (
	ErrDuplicateReview = errors.New("user has already reviewed this item")
	ErrForbidden       = errors.New("review does not belong to user")
)

type Service interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req *CreateReviewRequest) (*Review, error)
	GetItemReviews(ctx context.Context, menuItemID uuid.UUID) ([]Review, error)
	GetUserReviews(ctx context.Context, userID uuid.UUID) ([]Review, error)
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID, isAdmin bool) error
}

type service struct {
	repo     Repository
	menuRepo menu.Repository
}

func NewService(repo Repository, menuRepo menu.Repository) Service {
	return &service{
		repo:     repo,
		menuRepo: menuRepo,
	}
}

func (s *service) CreateReview(ctx context.Context, userID uuid.UUID, req *CreateReviewRequest) (*Review, error) {
	menuItemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		return nil, menu.ErrMenuItemNotFound
	}

	if _, err := s.menuRepo.GetByID(ctx, menuItemID); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, menuItemID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	review := &Review{
		UserID:     userID,
		MenuItemID: menuItemID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.repo.RecalculateRating(ctx, menuItemID); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *service) GetItemReviews(ctx context.Context, menuItemID uuid.UUID) ([]Review, error) {
	return s.repo.GetByItem(ctx, menuItemID)
}

func (s *service) GetUserReviews(ctx context.Context, userID uuid.UUID) ([]Review, error) {
	return s.repo.GetByUser(ctx, userID)
}

// DeleteReview removes the review and refreshes the item's aggregates.
// Customers may only delete their own reviews; admins may delete any.
func (s *service) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID, isAdmin bool) error {
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID && !isAdmin {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return err
	}
	return s.repo.RecalculateRating(ctx, review.MenuItemID)
}
