package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type Repository interface {
	Create(ctx context.Context, item *MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	GetAll(ctx context.Context, includeUnavailable bool) ([]MenuItem, error)
	GetByCategory(ctx context.Context, category Category, includeUnavailable bool) ([]MenuItem, error)
	Search(ctx context.Context, query string) ([]MenuItem, error)
	Update(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	AddFavorite(ctx context.Context, userID, menuItemID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, menuItemID uuid.UUID) error
	IsFavorite(ctx context.Context, userID, menuItemID uuid.UUID) (bool, error)
	GetFavorites(ctx context.Context, userID uuid.UUID) ([]Favorite, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item *MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	var item MenuItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetAll(ctx context.Context, includeUnavailable bool) ([]MenuItem, error) {
	var items []MenuItem
	query := r.db.WithContext(ctx).Order("category, name")
	if !includeUnavailable {
		query = query.Where("available = ?", true)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetByCategory(ctx context.Context, category Category, includeUnavailable bool) ([]MenuItem, error) {
	var items []MenuItem
	query := r.db.WithContext(ctx).Where("category = ?", category).Order("name")
	if !includeUnavailable {
		query = query.Where("available = ?", true)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Search(ctx context.Context, query string) ([]MenuItem, error) {
	var items []MenuItem
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("name").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, item *MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&MenuItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&MenuItem{}).Count(&count).Error
	return count, err
}

func (r *repository) AddFavorite(ctx context.Context, userID, menuItemID uuid.UUID) error {
	favorite := Favorite{
		UserID:     userID,
		MenuItemID: menuItemID,
	}
	return r.db.WithContext(ctx).Create(&favorite).Error
}

func (r *repository) RemoveFavorite(ctx context.Context, userID, menuItemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Delete(&Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *repository) IsFavorite(ctx context.Context, userID, menuItemID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Favorite{}).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) GetFavorites(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	var favorites []Favorite
	err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}
