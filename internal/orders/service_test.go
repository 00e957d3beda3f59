package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavola/internal/cards"
	"tavola/internal/cart"
	"tavola/internal/menu"
	"tavola/internal/notifications"
	"tavola/internal/shared/config"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]Order, error) {
	var list []Order
	for _, order := range f.orders {
		if order.UserID == userID {
			list = append(list, *order)
		}
	}
	return list, nil
}

func (f *fakeOrderRepo) GetAll(_ context.Context) ([]Order, error) {
	var list []Order
	for _, order := range f.orders {
		list = append(list, *order)
	}
	return list, nil
}

func (f *fakeOrderRepo) GetByStatus(_ context.Context, status Status) ([]Order, error) {
	var list []Order
	for _, order := range f.orders {
		if order.Status == status {
			list = append(list, *order)
		}
	}
	return list, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	order, ok := f.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (f *fakeOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

// fakeCartService serves a canned cart and records whether it was cleared.
type fakeCartService struct {
	carts   map[uuid.UUID]*cart.CartResponse
	cleared []uuid.UUID
}

func newFakeCartService() *fakeCartService {
	return &fakeCartService{carts: make(map[uuid.UUID]*cart.CartResponse)}
}

func (f *fakeCartService) stock(userID uuid.UUID, items []cart.CartItem) {
	c := &cart.Cart{ID: uuid.New(), UserID: userID, Items: items}
	f.carts[userID] = &cart.CartResponse{Cart: c, Total: c.Total(), ItemCount: c.ItemCount()}
}

func (f *fakeCartService) CreateForUser(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeCartService) GetCart(_ context.Context, userID uuid.UUID) (*cart.CartResponse, error) {
	resp, ok := f.carts[userID]
	if !ok {
		return &cart.CartResponse{Cart: &cart.Cart{UserID: userID}}, nil
	}
	return resp, nil
}

func (f *fakeCartService) AddItem(_ context.Context, _ uuid.UUID, _ *cart.AddItemRequest) (*cart.CartResponse, error) {
	return nil, nil
}

func (f *fakeCartService) UpdateItem(_ context.Context, _, _ uuid.UUID, _ int) (*cart.CartResponse, error) {
	return nil, nil
}

func (f *fakeCartService) RemoveItem(_ context.Context, _, _ uuid.UUID) (*cart.CartResponse, error) {
	return nil, nil
}

func (f *fakeCartService) Clear(_ context.Context, userID uuid.UUID) error {
	f.cleared = append(f.cleared, userID)
	delete(f.carts, userID)
	return nil
}

type fakeCardsRepo struct {
	cards map[uuid.UUID]*cards.PaymentCard
}

func newFakeCardsRepo() *fakeCardsRepo {
	return &fakeCardsRepo{cards: make(map[uuid.UUID]*cards.PaymentCard)}
}

func (f *fakeCardsRepo) Create(_ context.Context, card *cards.PaymentCard) error {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	f.cards[card.ID] = card
	return nil
}

func (f *fakeCardsRepo) GetByID(_ context.Context, userID, cardID uuid.UUID) (*cards.PaymentCard, error) {
	card, ok := f.cards[cardID]
	if !ok || card.UserID != userID || !card.Active {
		return nil, cards.ErrCardNotFound
	}
	return card, nil
}

func (f *fakeCardsRepo) GetAllByUser(_ context.Context, _ uuid.UUID) ([]cards.PaymentCard, error) {
	return nil, nil
}

func (f *fakeCardsRepo) Update(_ context.Context, card *cards.PaymentCard) error {
	f.cards[card.ID] = card
	return nil
}

func (f *fakeCardsRepo) UnsetDefault(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeCardsRepo) CountActive(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil }

func (f *fakeCardsRepo) FirstActive(_ context.Context, _ uuid.UUID) (*cards.PaymentCard, error) {
	return nil, cards.ErrCardNotFound
}

type fakeNotifier struct {
	titles []string
}

func (f *fakeNotifier) Notify(_ context.Context, _ uuid.UUID, _ notifications.NotificationType, title, _ string) error {
	f.titles = append(f.titles, title)
	return nil
}

func orderTestConfig() *config.Config {
	return &config.Config{
		Restaurant: config.RestaurantConfig{
			OrderPrepEstimate: 30 * time.Minute,
		},
	}
}

func cartLine(name string, price float64, quantity int, customizations string) cart.CartItem {
	itemID := uuid.New()
	return cart.CartItem{
		ID:             uuid.New(),
		MenuItemID:     itemID,
		Quantity:       quantity,
		Customizations: customizations,
		MenuItem:       &menu.MenuItem{ID: itemID, Name: name, Price: price, Available: true},
	}
}

func TestCreateOrderSnapshotsCart(t *testing.T) {
	repo := newFakeOrderRepo()
	cartSvc := newFakeCartService()
	notifier := &fakeNotifier{}
	svc := NewService(repo, cartSvc, newFakeCardsRepo(), notifier, orderTestConfig())

	userID := uuid.New()
	cartSvc.stock(userID, []cart.CartItem{
		cartLine("Spaghetti Carbonara", 17.00, 2, "no pepper"),
		cartLine("Espresso", 3.50, 1, ""),
	})

	order, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{
		SpecialInstructions: "Ring the bell",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, order.Status)
	assert.InDelta(t, 37.50, order.Total, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Spaghetti Carbonara", order.Items[0].Name)
	assert.InDelta(t, 17.00, order.Items[0].Price, 0.001)
	assert.Equal(t, "no pepper", order.Items[0].Customizations)
	assert.Equal(t, "Ring the bell", order.SpecialInstructions)
	assert.False(t, order.EstimatedReadyAt.IsZero())

	assert.Equal(t, []uuid.UUID{userID}, cartSvc.cleared)
	assert.Equal(t, []string{"Order placed"}, notifier.titles)
}

func TestCreateOrderDefaultsToDineIn(t *testing.T) {
	cartSvc := newFakeCartService()
	svc := NewService(newFakeOrderRepo(), cartSvc, newFakeCardsRepo(), nil, orderTestConfig())

	userID := uuid.New()
	cartSvc.stock(userID, []cart.CartItem{cartLine("Risotto ai Funghi", 19.00, 1, "")})

	order, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, TypeDineIn, order.Type)
	assert.Empty(t, order.DeliveryAddress)
}

func TestCreateOrderDeliveryCarriesAddress(t *testing.T) {
	cartSvc := newFakeCartService()
	svc := NewService(newFakeOrderRepo(), cartSvc, newFakeCardsRepo(), nil, orderTestConfig())

	userID := uuid.New()
	cartSvc.stock(userID, []cart.CartItem{cartLine("Pizza Margherita", 14.00, 2, "")})

	order, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{
		OrderType:       "delivery",
		DeliveryAddress: "42 Via Roma, Apt 3",
	})
	require.NoError(t, err)
	assert.Equal(t, TypeDelivery, order.Type)
	assert.Equal(t, "42 Via Roma, Apt 3", order.DeliveryAddress)
}

func TestCreateOrderRejectsUnknownType(t *testing.T) {
	cartSvc := newFakeCartService()
	svc := NewService(newFakeOrderRepo(), cartSvc, newFakeCardsRepo(), nil, orderTestConfig())

	userID := uuid.New()
	cartSvc.stock(userID, []cart.CartItem{cartLine("Pizza Margherita", 14.00, 1, "")})

	_, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{OrderType: "DRIVE_THRU"})
	assert.ErrorIs(t, err, ErrInvalidOrderType)
}

func TestParseOrderType(t *testing.T) {
	for raw, want := range map[string]OrderType{
		"":         TypeDineIn,
		"DINE_IN":  TypeDineIn,
		"takeaway": TypeTakeaway,
		"Delivery": TypeDelivery,
	} {
		got, err := ParseOrderType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseOrderType("CURBSIDE")
	assert.ErrorIs(t, err, ErrInvalidOrderType)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeCartService(), newFakeCardsRepo(), nil, orderTestConfig())

	_, err := svc.CreateOrder(context.Background(), uuid.New(), &CreateOrderRequest{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrderPriceSurvivesMenuChange(t *testing.T) {
	repo := newFakeOrderRepo()
	cartSvc := newFakeCartService()
	svc := NewService(repo, cartSvc, newFakeCardsRepo(), nil, orderTestConfig())

	userID := uuid.New()
	line := cartLine("Tiramisù", 9.00, 1, "")
	cartSvc.stock(userID, []cart.CartItem{line})

	order, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{})
	require.NoError(t, err)

	// Menu price changes after checkout must not touch the order line
	line.MenuItem.Price = 12.00
	got, err := svc.GetOrder(context.Background(), userID, order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 9.00, got.Total, 0.001)
}

func TestCreateOrderWithStoredCard(t *testing.T) {
	cardsRepo := newFakeCardsRepo()
	cartSvc := newFakeCartService()
	svc := NewService(newFakeOrderRepo(), cartSvc, cardsRepo, nil, orderTestConfig())

	userID := uuid.New()
	card := &cards.PaymentCard{UserID: userID, LastFour: "1111", Active: true}
	require.NoError(t, cardsRepo.Create(context.Background(), card))
	cartSvc.stock(userID, []cart.CartItem{cartLine("Negroni", 13.00, 1, "")})

	order, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{
		PaymentCardID: card.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, order.PaymentCardID)
	assert.Equal(t, card.ID, *order.PaymentCardID)
	assert.Equal(t, "1111", order.CardLastFour)
}

func TestCreateOrderRejectsForeignCard(t *testing.T) {
	cardsRepo := newFakeCardsRepo()
	cartSvc := newFakeCartService()
	svc := NewService(newFakeOrderRepo(), cartSvc, cardsRepo, nil, orderTestConfig())

	owner := uuid.New()
	card := &cards.PaymentCard{UserID: owner, LastFour: "1111", Active: true}
	require.NoError(t, cardsRepo.Create(context.Background(), card))

	buyer := uuid.New()
	cartSvc.stock(buyer, []cart.CartItem{cartLine("Negroni", 13.00, 1, "")})

	_, err := svc.CreateOrder(context.Background(), buyer, &CreateOrderRequest{
		PaymentCardID: card.ID.String(),
	})
	assert.ErrorIs(t, err, cards.ErrCardNotFound)
}

func TestGetOrderEnforcesOwnership(t *testing.T) {
	cartSvc := newFakeCartService()
	svc := NewService(newFakeOrderRepo(), cartSvc, newFakeCardsRepo(), nil, orderTestConfig())

	userID := uuid.New()
	cartSvc.stock(userID, []cart.CartItem{cartLine("Minestrone", 8.00, 1, "")})
	order, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{})
	require.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), uuid.New(), order.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatusWalksKitchenFlow(t *testing.T) {
	cartSvc := newFakeCartService()
	notifier := &fakeNotifier{}
	svc := NewService(newFakeOrderRepo(), cartSvc, newFakeCardsRepo(), notifier, orderTestConfig())

	userID := uuid.New()
	cartSvc.stock(userID, []cart.CartItem{cartLine("Osso Buco alla Milanese", 32.00, 1, "")})
	order, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{})
	require.NoError(t, err)

	for _, next := range []string{"CONFIRMED", "PREPARING", "READY", "DELIVERED", "COMPLETED"} {
		updated, err := svc.UpdateStatus(context.Background(), order.ID, next)
		require.NoError(t, err, next)
		assert.Equal(t, Status(next), updated.Status)
	}

	_, err = svc.UpdateStatus(context.Background(), order.ID, "PENDING")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateStatusRejectsCancelAfterReady(t *testing.T) {
	cartSvc := newFakeCartService()
	svc := NewService(newFakeOrderRepo(), cartSvc, newFakeCardsRepo(), nil, orderTestConfig())

	userID := uuid.New()
	cartSvc.stock(userID, []cart.CartItem{cartLine("Branzino al Forno", 29.00, 1, "")})
	order, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{})
	require.NoError(t, err)

	for _, next := range []string{"CONFIRMED", "PREPARING", "READY"} {
		_, err = svc.UpdateStatus(context.Background(), order.ID, next)
		require.NoError(t, err)
	}

	_, err = svc.UpdateStatus(context.Background(), order.ID, "CANCELLED")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateStatusAcceptsLowercase(t *testing.T) {
	cartSvc := newFakeCartService()
	svc := NewService(newFakeOrderRepo(), cartSvc, newFakeCardsRepo(), nil, orderTestConfig())

	userID := uuid.New()
	cartSvc.stock(userID, []cart.CartItem{cartLine("Espresso", 3.50, 1, "")})
	order, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.Status)
}

func TestUpdateStatusUnknownValue(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeCartService(), newFakeCardsRepo(), nil, orderTestConfig())

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "BURNED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrderStatusTransitionTable(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusPreparing, StatusCancelled))
	assert.True(t, CanTransition(StatusReady, StatusDelivered))
	assert.True(t, CanTransition(StatusReady, StatusCompleted))

	assert.False(t, CanTransition(StatusReady, StatusCancelled))
	assert.False(t, CanTransition(StatusCompleted, StatusPending))
	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))
	assert.False(t, CanTransition(StatusDelivered, StatusPreparing))
}
