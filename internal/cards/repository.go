package cards

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCardNotFound = errors.New("payment card not found")

type Repository interface {
	Create(ctx context.Context, card *PaymentCard) error
	GetByID(ctx context.Context, userID, cardID uuid.UUID) (*PaymentCard, error)
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]PaymentCard, error)
	Update(ctx context.Context, card *PaymentCard) error
	UnsetDefault(ctx context.Context, userID uuid.UUID) error
	CountActive(ctx context.Context, userID uuid.UUID) (int64, error)
	FirstActive(ctx context.Context, userID uuid.UUID) (*PaymentCard, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, card *PaymentCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *repository) GetByID(ctx context.Context, userID, cardID uuid.UUID) (*PaymentCard, error) {
	var card PaymentCard
	err := r.db.WithContext(ctx).
		First(&card, "id = ? AND user_id = ? AND active = ?", cardID, userID, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *repository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]PaymentCard, error) {
	var cards []PaymentCard
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("is_default DESC, created_at DESC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *repository) Update(ctx context.Context, card *PaymentCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *repository) UnsetDefault(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&PaymentCard{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

func (r *repository) CountActive(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&PaymentCard{}).
		Where("user_id = ? AND active = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *repository) FirstActive(ctx context.Context, userID uuid.UUID) (*PaymentCard, error) {
	var card PaymentCard
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at").
		First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}
