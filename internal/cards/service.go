package cards

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrCardExpired       = errors.New("card is expired")
)

type Service interface {
	AddCard(ctx context.Context, userID uuid.UUID, req *AddCardRequest) (*PaymentCard, error)
	GetCards(ctx context.Context, userID uuid.UUID) ([]PaymentCard, error)
	GetCard(ctx context.Context, userID, cardID uuid.UUID) (*PaymentCard, error)
	SetDefault(ctx context.Context, userID, cardID uuid.UUID) (*PaymentCard, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddCard(ctx context.Context, userID uuid.UUID, req *AddCardRequest) (*PaymentCard, error) {
	number := strings.ReplaceAll(req.CardNumber, " ", "")
	if !luhnValid(number) {
		return nil, ErrInvalidCardNumber
	}
	if expired(req.ExpiryMonth, req.ExpiryYear) {
		return nil, ErrCardExpired
	}

	count, err := s.repo.CountActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	card := &PaymentCard{
		UserID:      userID,
		CardToken:   tokenize(userID, number),
		LastFour:    number[len(number)-4:],
		Brand:       detectBrand(number),
		HolderName:  req.HolderName,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		Active:      true,
		// First card becomes the default automatically
		IsDefault: count == 0 || req.SetDefault,
	}

	if card.IsDefault && count > 0 {
		if err := s.repo.UnsetDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) GetCards(ctx context.Context, userID uuid.UUID) ([]PaymentCard, error) {
	return s.repo.GetAllByUser(ctx, userID)
}

func (s *service) GetCard(ctx context.Context, userID, cardID uuid.UUID) (*PaymentCard, error) {
	return s.repo.GetByID(ctx, userID, cardID)
}

func (s *service) SetDefault(ctx context.Context, userID, cardID uuid.UUID) (*PaymentCard, error) {
	card, err := s.repo.GetByID(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UnsetDefault(ctx, userID); err != nil {
		return nil, err
	}

	card.IsDefault = true
	if err := s.repo.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// DeleteCard soft-deletes. If the deleted card was the default, the
// oldest remaining card is promoted.
func (s *service) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	card, err := s.repo.GetByID(ctx, userID, cardID)
	if err != nil {
		return err
	}

	wasDefault := card.IsDefault
	card.Active = false
	card.IsDefault = false
	if err := s.repo.Update(ctx, card); err != nil {
		return err
	}

	if wasDefault {
		next, err := s.repo.FirstActive(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrCardNotFound) {
				return nil
			}
			return err
		}
		next.IsDefault = true
		return s.repo.Update(ctx, next)
	}
	return nil
}

func detectBrand(number string) Brand {
	switch {
	case strings.HasPrefix(number, "4"):
		return BrandVisa
	case strings.HasPrefix(number, "5"):
		return BrandMastercard
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return BrandAmex
	case strings.HasPrefix(number, "6"):
		return BrandDiscover
	default:
		return BrandUnknown
	}
}

func expired(month, year int) bool {
	now := time.Now()
	if year < now.Year() {
		return true
	}
	if year == now.Year() && month < int(now.Month()) {
		return true
	}
	return false
}

func luhnValid(number string) bool {
	if len(number) < 13 || len(number) > 19 {
		return false
	}
	var sum int
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		ch := number[i]
		if ch < '0' || ch > '9' {
			return false
		}
		digit := int(ch - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// tokenize derives a stable opaque token. A real gateway would hand one
// back; hashing stands in for it here.
func tokenize(userID uuid.UUID, number string) string {
	sum := sha256.Sum256([]byte(userID.String() + ":" + number))
	return hex.EncodeToString(sum[:])
}
