package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"tavola/internal/menu"
)

var ErrItemUnavailable = errors.New("menu item is not available")

type Service interface {
	CreateForUser(ctx context.Context, userID uuid.UUID) error
	GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *AddItemRequest) (*CartResponse, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*CartResponse, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error)
	Clear(ctx context.Context, userID uuid.UUID) error
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

func (s *service) CreateForUser(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Create(ctx, &Cart{UserID: userID})
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// AddItem merges into an existing line for the same menu item instead of
// creating a duplicate line.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req *AddItemRequest) (*CartResponse, error) {
	menuItemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		return nil, menu.ErrMenuItemNotFound
	}

	menuItem, err := s.menuRepo.GetByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if !menuItem.Available {
		return nil, ErrItemUnavailable
	}

	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItem(ctx, c.ID, menuItemID, req.Customizations)
	switch {
	case err == nil:
		existing.Quantity += req.Quantity
		if err := s.repo.UpdateItem(ctx, existing); err != nil {
			return nil, err
		}
	case errors.Is(err, ErrCartItemNotFound):
		item := &CartItem{
			CartID:         c.ID,
			MenuItemID:     menuItemID,
			Quantity:       req.Quantity,
			Customizations: req.Customizations,
		}
		if err := s.repo.AddItem(ctx, item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// UpdateItem sets the line quantity. Zero or negative removes the line.
func (s *service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*CartResponse, error) {
	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.repo.RemoveItem(ctx, c.ID, itemID); err != nil {
			return nil, err
		}
		return s.GetCart(ctx, userID)
	}

	item, err := s.repo.GetItemByID(ctx, c.ID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error) {
	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RemoveItem(ctx, c.ID, itemID); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Clear(ctx, c.ID)
}

// Older accounts may predate cart-at-registration, so the cart is
// created lazily on first access.
func (s *service) getOrCreate(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	c, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return nil, err
	}

	newCart := &Cart{UserID: userID}
	if err := s.repo.Create(ctx, newCart); err != nil {
		return nil, err
	}
	return s.repo.GetByUserID(ctx, userID)
}
