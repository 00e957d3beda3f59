package reservations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReservationNotFound = errors.New("reservation not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error)
	GetAll(ctx context.Context) ([]Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Count(ctx context.Context) (int64, error)

	// FindActiveBetween returns active reservations scheduled inside
	// [start, end], oldest booking first, optionally skipping one id.
	FindActiveBetween(ctx context.Context, start, end time.Time, excludeID *uuid.UUID) ([]Reservation, error)

	// SaveIfFree persists the reservation only if check passes against
	// the active window rows, which are locked for the duration of the
	// transaction. This closes the gap between reading occupancy and
	// writing the new booking.
	SaveIfFree(ctx context.Context, res *Reservation, start, end time.Time, excludeID *uuid.UUID, check func(active []Reservation) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var res Reservation
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *repository) GetByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	var list []Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_time DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Reservation, error) {
	var list []Reservation
	err := r.db.WithContext(ctx).
		Order("date_time DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).Model(&Reservation{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Reservation{}).Count(&count).Error
	return count, err
}

func (r *repository) FindActiveBetween(ctx context.Context, start, end time.Time, excludeID *uuid.UUID) ([]Reservation, error) {
	var list []Reservation
	query := r.db.WithContext(ctx).
		Where("date_time BETWEEN ? AND ?", start, end).
		Where("status IN ?", []Status{StatusPending, StatusConfirmed}).
		Order("created_at")
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) SaveIfFree(ctx context.Context, res *Reservation, start, end time.Time, excludeID *uuid.UUID, check func(active []Reservation) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active []Reservation
		query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("date_time BETWEEN ? AND ?", start, end).
			Where("status IN ?", []Status{StatusPending, StatusConfirmed}).
			Order("created_at")
		if excludeID != nil {
			query = query.Where("id <> ?", *excludeID)
		}
		if err := query.Find(&active).Error; err != nil {
			return err
		}

		if err := check(active); err != nil {
			return err
		}

		return tx.Save(res).Error
	})
}
