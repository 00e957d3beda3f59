package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

type Repository interface {
	Create(ctx context.Context, c *Cart) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)
	GetItem(ctx context.Context, cartID, menuItemID uuid.UUID, customizations string) (*CartItem, error)
	GetItemByID(ctx context.Context, cartID, itemID uuid.UUID) (*CartItem, error)
	AddItem(ctx context.Context, item *CartItem) error
	UpdateItem(ctx context.Context, item *CartItem) error
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error
	Clear(ctx context.Context, cartID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Cart) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at")
		}).
		Preload("Items.MenuItem").
		First(&c, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetItem(ctx context.Context, cartID, menuItemID uuid.UUID, customizations string) (*CartItem, error) {
	var item CartItem
	err := r.db.WithContext(ctx).
		First(&item, "cart_id = ? AND menu_item_id = ? AND customizations = ?", cartID, menuItemID, customizations).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetItemByID(ctx context.Context, cartID, itemID uuid.UUID) (*CartItem, error) {
	var item CartItem
	err := r.db.WithContext(ctx).
		First(&item, "id = ? AND cart_id = ?", itemID, cartID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) AddItem(ctx context.Context, item *CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) UpdateItem(ctx context.Context, item *CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) Clear(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&CartItem{}).Error
}
