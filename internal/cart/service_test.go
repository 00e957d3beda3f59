package cart

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

func (f *fakeMenuRepo) add(name string, price float64, available bool) uuid.UUID {
	id := uuid.New()
	f.items[id] = &menu.MenuItem{ID: id, Name: name, Price: price, Available: available}
	return id
}

func (f *fakeMenuRepo) Create(_ context.Context, item *menu.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
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

func (f *fakeMenuRepo) GetAll(_ context.Context, _ bool) ([]menu.MenuItem, error) {
	return nil, nil
}

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

func (f *fakeMenuRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeMenuRepo) AddFavorite(_ context.Context, _, _ uuid.UUID) error { return nil }

func (f *fakeMenuRepo) RemoveFavorite(_ context.Context, _, _ uuid.UUID) error { return nil }

func (f *fakeMenuRepo) IsFavorite(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeMenuRepo) GetFavorites(_ context.Context, _ uuid.UUID) ([]menu.Favorite, error) {
	return nil, nil
}

type fakeCartRepo struct {
	menu   *fakeMenuRepo
	byUser map[uuid.UUID]*Cart
	items  map[uuid.UUID][]*CartItem
}

func newFakeCartRepo(menuRepo *fakeMenuRepo) *fakeCartRepo {
	return &fakeCartRepo{
		menu:   menuRepo,
		byUser: make(map[uuid.UUID]*Cart),
		items:  make(map[uuid.UUID][]*CartItem),
	}
}

func (f *fakeCartRepo) Create(_ context.Context, c *Cart) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.byUser[c.UserID] = c
	return nil
}

func (f *fakeCartRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*Cart, error) {
	c, ok := f.byUser[userID]
	if !ok {
		return nil, ErrCartNotFound
	}
	loaded := *c
	loaded.Items = nil
	for _, item := range f.items[c.ID] {
		copied := *item
		copied.MenuItem = f.menu.items[item.MenuItemID]
		loaded.Items = append(loaded.Items, copied)
	}
	return &loaded, nil
}

func (f *fakeCartRepo) GetItem(_ context.Context, cartID, menuItemID uuid.UUID, customizations string) (*CartItem, error) {
	for _, item := range f.items[cartID] {
		if item.MenuItemID == menuItemID && item.Customizations == customizations {
			return item, nil
		}
	}
	return nil, ErrCartItemNotFound
}

func (f *fakeCartRepo) GetItemByID(_ context.Context, cartID, itemID uuid.UUID) (*CartItem, error) {
	for _, item := range f.items[cartID] {
		if item.ID == itemID {
			return item, nil
		}
	}
	return nil, ErrCartItemNotFound
}

func (f *fakeCartRepo) AddItem(_ context.Context, item *CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items[item.CartID] = append(f.items[item.CartID], item)
	return nil
}

func (f *fakeCartRepo) UpdateItem(_ context.Context, item *CartItem) error {
	for i, existing := range f.items[item.CartID] {
		if existing.ID == item.ID {
			f.items[item.CartID][i] = item
			return nil
		}
	}
	return ErrCartItemNotFound
}

func (f *fakeCartRepo) RemoveItem(_ context.Context, cartID, itemID uuid.UUID) error {
	lines := f.items[cartID]
	for i, item := range lines {
		if item.ID == itemID {
			f.items[cartID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return ErrCartItemNotFound
}

func (f *fakeCartRepo) Clear(_ context.Context, cartID uuid.UUID) error {
	f.items[cartID] = nil
	return nil
}

func newCartTestService() (Service, *fakeMenuRepo) {
	menuRepo := newFakeMenuRepo()
	return NewService(newFakeCartRepo(menuRepo), menuRepo), menuRepo
}

func TestAddItemCreatesCartLazily(t *testing.T) {
	svc, menuRepo := newCartTestService()
	itemID := menuRepo.add("Tiramisù", 9.00, true)

	resp, err := svc.AddItem(context.Background(), uuid.New(), &AddItemRequest{
		MenuItemID: itemID.String(),
		Quantity:   2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, 2, resp.ItemCount)
	assert.InDelta(t, 18.00, resp.Total, 0.001)
}

func TestAddItemMergesSameLine(t *testing.T) {
	svc, menuRepo := newCartTestService()
	itemID := menuRepo.add("Espresso", 3.50, true)
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, &AddItemRequest{MenuItemID: itemID.String(), Quantity: 1})
	require.NoError(t, err)

	resp, err := svc.AddItem(context.Background(), userID, &AddItemRequest{MenuItemID: itemID.String(), Quantity: 2})
	require.NoError(t, err)

	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, 3, resp.Cart.Items[0].Quantity)
	assert.InDelta(t, 10.50, resp.Total, 0.001)
}

func TestAddItemKeepsDistinctCustomizations(t *testing.T) {
	svc, menuRepo := newCartTestService()
	itemID := menuRepo.add("Spaghetti Carbonara", 17.00, true)
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, &AddItemRequest{
		MenuItemID:     itemID.String(),
		Quantity:       1,
		Customizations: "no pepper",
	})
	require.NoError(t, err)

	resp, err := svc.AddItem(context.Background(), userID, &AddItemRequest{
		MenuItemID: itemID.String(),
		Quantity:   1,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Cart.Items, 2)
	assert.Equal(t, 2, resp.ItemCount)
}

func TestAddItemRejectsUnavailableItem(t *testing.T) {
	svc, menuRepo := newCartTestService()
	itemID := menuRepo.add("Branzino al Forno", 29.00, false)

	_, err := svc.AddItem(context.Background(), uuid.New(), &AddItemRequest{
		MenuItemID: itemID.String(),
		Quantity:   1,
	})
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestAddItemUnknownMenuItem(t *testing.T) {
	svc, _ := newCartTestService()

	_, err := svc.AddItem(context.Background(), uuid.New(), &AddItemRequest{
		MenuItemID: uuid.New().String(),
		Quantity:   1,
	})
	assert.ErrorIs(t, err, menu.ErrMenuItemNotFound)
}

func TestUpdateItemZeroQuantityRemovesLine(t *testing.T) {
	svc, menuRepo := newCartTestService()
	itemID := menuRepo.add("Negroni", 13.00, true)
	userID := uuid.New()

	resp, err := svc.AddItem(context.Background(), userID, &AddItemRequest{MenuItemID: itemID.String(), Quantity: 2})
	require.NoError(t, err)
	lineID := resp.Cart.Items[0].ID

	resp, err = svc.UpdateItem(context.Background(), userID, lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Cart.Items)
	assert.Zero(t, resp.Total)
}

func TestUpdateItemSetsQuantity(t *testing.T) {
	svc, menuRepo := newCartTestService()
	itemID := menuRepo.add("Minestrone", 8.00, true)
	userID := uuid.New()

	resp, err := svc.AddItem(context.Background(), userID, &AddItemRequest{MenuItemID: itemID.String(), Quantity: 1})
	require.NoError(t, err)
	lineID := resp.Cart.Items[0].ID

	resp, err = svc.UpdateItem(context.Background(), userID, lineID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Cart.Items[0].Quantity)
	assert.InDelta(t, 32.00, resp.Total, 0.001)
}

func TestTotalSumsAcrossLines(t *testing.T) {
	svc, menuRepo := newCartTestService()
	pasta := menuRepo.add("Tagliatelle al Ragù", 18.50, true)
	dessert := menuRepo.add("Panna Cotta", 8.50, true)
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, &AddItemRequest{MenuItemID: pasta.String(), Quantity: 2})
	require.NoError(t, err)
	resp, err := svc.AddItem(context.Background(), userID, &AddItemRequest{MenuItemID: dessert.String(), Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.ItemCount)
	assert.InDelta(t, 45.50, resp.Total, 0.001)
}

func TestClearEmptiesCart(t *testing.T) {
	svc, menuRepo := newCartTestService()
	itemID := menuRepo.add("Arancini Siciliani", 11.00, true)
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, &AddItemRequest{MenuItemID: itemID.String(), Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), userID))

	resp, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, resp.Cart.Items)
	assert.Zero(t, resp.ItemCount)
}
