package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tavola/internal/cards"
	"tavola/internal/cart"
	"tavola/internal/notifications"
	"tavola/internal/shared/config"
	"tavola/pkg/logger"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrForbidden     = errors.New("order does not belong to user")
	ErrItemPriceless = errors.New("cart item is missing its menu item")
)

// Notifier is the slice of the notification service orders need.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, notifType notifications.NotificationType, title, message string) error
}

type Service interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*Order, error)
	GetOrders(ctx context.Context, userID uuid.UUID) ([]Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*Order, error)

	GetAllOrders(ctx context.Context) ([]Order, error)
	GetOrdersByStatus(ctx context.Context, status string) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*Order, error)
}

type service struct {
	repo      Repository
	cartSvc   cart.Service
	cardsRepo cards.Repository
	notifier  Notifier
	config    *config.Config
	logger    *logger.Logger
}

func NewService(repo Repository, cartSvc cart.Service, cardsRepo cards.Repository, notifier Notifier, cfg *config.Config) Service {
	return &service{
		repo:      repo,
		cartSvc:   cartSvc,
		cardsRepo: cardsRepo,
		notifier:  notifier,
		config:    cfg,
		logger:    logger.GetDefault(),
	}
}

// CreateOrder turns the user's cart into an order. Prices are read from
// the menu at this moment and frozen on the order lines.
func (s *service) CreateOrder(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*Order, error) {
	orderType, err := ParseOrderType(req.OrderType)
	if err != nil {
		return nil, err
	}

	cartResp, err := s.cartSvc.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartResp.Cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &Order{
		UserID:              userID,
		Status:              StatusPending,
		Type:                orderType,
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
		EstimatedReadyAt:    time.Now().Add(s.config.Restaurant.OrderPrepEstimate),
	}

	// Stored card must belong to the user and still be active
	if req.PaymentCardID != "" {
		cardID, err := uuid.Parse(req.PaymentCardID)
		if err != nil {
			return nil, cards.ErrCardNotFound
		}
		card, err := s.cardsRepo.GetByID(ctx, userID, cardID)
		if err != nil {
			return nil, err
		}
		order.PaymentCardID = &card.ID
		order.CardLastFour = card.LastFour
	}

	var total float64
	for i := range cartResp.Cart.Items {
		ci := &cartResp.Cart.Items[i]
		if ci.MenuItem == nil {
			return nil, ErrItemPriceless
		}
		order.Items = append(order.Items, OrderItem{
			MenuItemID:     ci.MenuItemID,
			Name:           ci.MenuItem.Name,
			Price:          ci.MenuItem.Price,
			Quantity:       ci.Quantity,
			Customizations: ci.Customizations,
		})
		total += ci.MenuItem.Price * float64(ci.Quantity)
	}
	order.Total = total

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.cartSvc.Clear(ctx, userID); err != nil {
		s.logger.Error("failed to clear cart after order placement", "user_id", userID, "order_id", order.ID, "error", err)
	}

	s.notify(ctx, userID, "Order placed",
		fmt.Sprintf("Your order of %d item(s) totaling $%.2f has been placed. Estimated ready time: %s.",
			len(order.Items), order.Total, order.EstimatedReadyAt.Format("3:04 PM")))

	return order, nil
}

func (s *service) GetOrders(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *service) GetAllOrders(ctx context.Context) ([]Order, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetOrdersByStatus(ctx context.Context, rawStatus string) ([]Order, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByStatus(ctx, status)
}

func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*Order, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, status) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.notify(ctx, order.UserID, "Order update", statusMessage(status))
	return order, nil
}

func statusMessage(status Status) string {
	switch status {
	case StatusConfirmed:
		return "Your order has been confirmed and sent to the kitchen."
	case StatusPreparing:
		return "The kitchen has started preparing your order."
	case StatusReady:
		return "Your order is ready for pickup!"
	case StatusDelivered:
		return "Your order has been delivered. Enjoy your meal!"
	case StatusCompleted:
		return "Your order is complete. Thank you for dining with us."
	case StatusCancelled:
		return "Your order has been cancelled."
	default:
		return fmt.Sprintf("Your order status is now %s.", status)
	}
}

// Notification failures never fail the order operation.
func (s *service) notify(ctx context.Context, userID uuid.UUID, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, notifications.TypeOrder, title, message); err != nil {
		s.logger.Error("failed to send order notification", "user_id", userID, "error", err)
	}
}
