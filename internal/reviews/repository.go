package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type Repository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	GetByItem(ctx context.Context, menuItemID uuid.UUID) ([]Review, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]Review, error)
	Exists(ctx context.Context, userID, menuItemID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// RecalculateRating refreshes the denormalized average and count
	// on the menu item row from the surviving reviews.
	RecalculateRating(ctx context.Context, menuItemID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *repository) GetByItem(ctx context.Context, menuItemID uuid.UUID) ([]Review, error) {
	var list []Review
	err := r.db.WithContext(ctx).
		Where("menu_item_id = ?", menuItemID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) GetByUser(ctx context.Context, userID uuid.UUID) ([]Review, error) {
	var list []Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) Exists(ctx context.Context, userID, menuItemID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Review{}).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *repository) RecalculateRating(ctx context.Context, menuItemID uuid.UUID) error {
	var stats struct {
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("menu_item_id = ?", menuItemID).
		Scan(&stats).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Table("menu_items").
		Where("id = ?", menuItemID).
		Updates(map[string]interface{}{
			"average_rating": stats.Average,
			"total_reviews":  stats.Count,
		}).Error
}
