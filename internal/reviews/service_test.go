package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavola/internal/menu"
)

type fakeMenuRepo struct {
	items map[uuid.UUID]*menu.MenuItem
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: make(map[uuid.UUID]*menu.MenuItem)}
}

func (f *fakeMenuRepo) add(name string) uuid.UUID {
	id := uuid.New()
	f.items[id] = &menu.MenuItem{ID: id, Name: name, Available: true}
	return id
}

func (f *fakeMenuRepo) Create(_ context.Context, item *menu.MenuItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeMenuRepo) GetByID(_ context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, menu.ErrMenuItemNotFound
	}
	return item, nil
}

func (f *fakeMenuRepo) GetAll(_ context.Context, _ bool) ([]menu.MenuItem, error) { return nil, nil }

func (f *fakeMenuRepo) GetByCategory(_ context.Context, _ menu.Category, _ bool) ([]menu.MenuItem, error) {
	return nil, nil
}

func (f *fakeMenuRepo) Search(_ context.Context, _ string) ([]menu.MenuItem, error) {
	return nil, nil
}

func (f *fakeMenuRepo) Update(_ context.Context, item *menu.MenuItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeMenuRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeMenuRepo) Count(_ context.Context) (int64, error) { return int64(len(f.items)), nil }

func (f *fakeMenuRepo) AddFavorite(_ context.Context, _, _ uuid.UUID) error { return nil }

func (f *fakeMenuRepo) RemoveFavorite(_ context.Context, _, _ uuid.UUID) error { return nil }

func (f *fakeMenuRepo) IsFavorite(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeMenuRepo) GetFavorites(_ context.Context, _ uuid.UUID) ([]menu.Favorite, error) {
	return nil, nil
}

type fakeReviewRepo struct {
	menu    *fakeMenuRepo
	reviews map[uuid.UUID]*Review
	order   []uuid.UUID
}

func newFakeReviewRepo(menuRepo *fakeMenuRepo) *fakeReviewRepo {
	return &fakeReviewRepo{
		menu:    menuRepo,
		reviews: make(map[uuid.UUID]*Review),
	}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	copied := *review
	f.reviews[review.ID] = &copied
	f.order = append(f.order, review.ID)
	return nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, id uuid.UUID) (*Review, error) {
	review, ok := f.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	copied := *review
	return &copied, nil
}

func (f *fakeReviewRepo) GetByItem(_ context.Context, menuItemID uuid.UUID) ([]Review, error) {
	var list []Review
	for _, id := range f.order {
		if review, ok := f.reviews[id]; ok && review.MenuItemID == menuItemID {
			list = append(list, *review)
		}
	}
	return list, nil
}

func (f *fakeReviewRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]Review, error) {
	var list []Review
	for _, id := range f.order {
		if review, ok := f.reviews[id]; ok && review.UserID == userID {
			list = append(list, *review)
		}
	}
	return list, nil
}

func (f *fakeReviewRepo) Exists(_ context.Context, userID, menuItemID uuid.UUID) (bool, error) {
	for _, review := range f.reviews {
		if review.UserID == userID && review.MenuItemID == menuItemID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.reviews[id]; !ok {
		return ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) RecalculateRating(_ context.Context, menuItemID uuid.UUID) error {
	var sum, count int
	for _, review := range f.reviews {
		if review.MenuItemID == menuItemID {
			sum += review.Rating
			count++
		}
	}
	item, ok := f.menu.items[menuItemID]
	if !ok {
		return nil
	}
	if count == 0 {
		item.AverageRating = 0
	} else {
		item.AverageRating = float64(sum) / float64(count)
	}
	item.TotalReviews = count
	return nil
}

func newReviewTestService() (Service, *fakeMenuRepo) {
	menuRepo := newFakeMenuRepo()
	return NewService(newFakeReviewRepo(menuRepo), menuRepo), menuRepo
}

func TestCreateReviewUpdatesItemAggregates(t *testing.T) {
	svc, menuRepo := newReviewTestService()
	itemID := menuRepo.add("Tiramisù")

	_, err := svc.CreateReview(context.Background(), uuid.New(), &CreateReviewRequest{
		MenuItemID: itemID.String(),
		Rating:     5,
		Comment:    "Best dessert on the menu",
	})
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), uuid.New(), &CreateReviewRequest{
		MenuItemID: itemID.String(),
		Rating:     4,
	})
	require.NoError(t, err)

	item := menuRepo.items[itemID]
	assert.InDelta(t, 4.5, item.AverageRating, 0.001)
	assert.Equal(t, 2, item.TotalReviews)
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	svc, menuRepo := newReviewTestService()
	itemID := menuRepo.add("Espresso")
	userID := uuid.New()

	_, err := svc.CreateReview(context.Background(), userID, &CreateReviewRequest{
		MenuItemID: itemID.String(),
		Rating:     3,
	})
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), userID, &CreateReviewRequest{
		MenuItemID: itemID.String(),
		Rating:     5,
	})
	assert.ErrorIs(t, err, ErrDuplicateReview)

	item := menuRepo.items[itemID]
	assert.Equal(t, 1, item.TotalReviews)
}

func TestCreateReviewUnknownItem(t *testing.T) {
	svc, _ := newReviewTestService()

	_, err := svc.CreateReview(context.Background(), uuid.New(), &CreateReviewRequest{
		MenuItemID: uuid.New().String(),
		Rating:     4,
	})
	assert.ErrorIs(t, err, menu.ErrMenuItemNotFound)
}

func TestDeleteReviewRefreshesAggregates(t *testing.T) {
	svc, menuRepo := newReviewTestService()
	itemID := menuRepo.add("Panna Cotta")
	userID := uuid.New()

	review, err := svc.CreateReview(context.Background(), userID, &CreateReviewRequest{
		MenuItemID: itemID.String(),
		Rating:     2,
	})
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), uuid.New(), &CreateReviewRequest{
		MenuItemID: itemID.String(),
		Rating:     4,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(context.Background(), userID, review.ID, false))

	item := menuRepo.items[itemID]
	assert.InDelta(t, 4.0, item.AverageRating, 0.001)
	assert.Equal(t, 1, item.TotalReviews)
}

func TestDeleteLastReviewZeroesAggregates(t *testing.T) {
	svc, menuRepo := newReviewTestService()
	itemID := menuRepo.add("Negroni")
	userID := uuid.New()

	review, err := svc.CreateReview(context.Background(), userID, &CreateReviewRequest{
		MenuItemID: itemID.String(),
		Rating:     5,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(context.Background(), userID, review.ID, false))

	item := menuRepo.items[itemID]
	assert.Zero(t, item.AverageRating)
	assert.Zero(t, item.TotalReviews)
}

func TestDeleteReviewForbiddenForOtherUser(t *testing.T) {
	svc, menuRepo := newReviewTestService()
	itemID := menuRepo.add("Minestrone")

	review, err := svc.CreateReview(context.Background(), uuid.New(), &CreateReviewRequest{
		MenuItemID: itemID.String(),
		Rating:     3,
	})
	require.NoError(t, err)

	err = svc.DeleteReview(context.Background(), uuid.New(), review.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAdminMayDeleteAnyReview(t *testing.T) {
	svc, menuRepo := newReviewTestService()
	itemID := menuRepo.add("Bruschetta al Pomodoro")

	review, err := svc.CreateReview(context.Background(), uuid.New(), &CreateReviewRequest{
		MenuItemID: itemID.String(),
		Rating:     1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(context.Background(), uuid.New(), review.ID, true))

	item := menuRepo.items[itemID]
	assert.Zero(t, item.TotalReviews)
}
