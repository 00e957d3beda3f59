package cards

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	cards []*PaymentCard
}

func (f *fakeRepo) Create(_ context.Context, card *PaymentCard) error {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	copied := *card
	f.cards = append(f.cards, &copied)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, userID, cardID uuid.UUID) (*PaymentCard, error) {
	for _, card := range f.cards {
		if card.ID == cardID && card.UserID == userID && card.Active {
			copied := *card
			return &copied, nil
		}
	}
	return nil, ErrCardNotFound
}

func (f *fakeRepo) GetAllByUser(_ context.Context, userID uuid.UUID) ([]PaymentCard, error) {
	var list []PaymentCard
	for _, card := range f.cards {
		if card.UserID == userID && card.Active {
			list = append(list, *card)
		}
	}
	return list, nil
}

func (f *fakeRepo) Update(_ context.Context, card *PaymentCard) error {
	for i, existing := range f.cards {
		if existing.ID == card.ID {
			copied := *card
			f.cards[i] = &copied
			return nil
		}
	}
	return ErrCardNotFound
}

func (f *fakeRepo) UnsetDefault(_ context.Context, userID uuid.UUID) error {
	for _, card := range f.cards {
		if card.UserID == userID && card.IsDefault {
			card.IsDefault = false
		}
	}
	return nil
}

func (f *fakeRepo) CountActive(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, card := range f.cards {
		if card.UserID == userID && card.Active {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) FirstActive(_ context.Context, userID uuid.UUID) (*PaymentCard, error) {
	for _, card := range f.cards {
		if card.UserID == userID && card.Active {
			copied := *card
			return &copied, nil
		}
	}
	return nil, ErrCardNotFound
}

func validRequest(number string) *AddCardRequest {
	return &AddCardRequest{
		CardNumber:  number,
		HolderName:  "Marco Bellini",
		ExpiryMonth: 12,
		ExpiryYear:  time.Now().Year() + 2,
	}
}

func TestAddCardDetectsBrandAndStoresLastFour(t *testing.T) {
	svc := NewService(&fakeRepo{})
	userID := uuid.New()

	cases := []struct {
		number string
		brand  Brand
	}{
		{"4111111111111111", BrandVisa},
		{"5500005555555559", BrandMastercard},
		{"378282246310005", BrandAmex},
		{"6011111111111117", BrandDiscover},
	}

	for _, tc := range cases {
		card, err := svc.AddCard(context.Background(), userID, validRequest(tc.number))
		require.NoError(t, err, tc.number)
		assert.Equal(t, tc.brand, card.Brand)
		assert.Equal(t, tc.number[len(tc.number)-4:], card.LastFour)
		assert.NotContains(t, card.CardToken, tc.number)
	}
}

func TestAddCardRejectsLuhnFailure(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.AddCard(context.Background(), uuid.New(), validRequest("4111111111111112"))
	assert.ErrorIs(t, err, ErrInvalidCardNumber)
}

func TestAddCardRejectsShortNumber(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.AddCard(context.Background(), uuid.New(), validRequest("411111"))
	assert.ErrorIs(t, err, ErrInvalidCardNumber)
}

func TestAddCardAcceptsSpacedNumber(t *testing.T) {
	svc := NewService(&fakeRepo{})

	card, err := svc.AddCard(context.Background(), uuid.New(), validRequest("4111 1111 1111 1111"))
	require.NoError(t, err)
	assert.Equal(t, BrandVisa, card.Brand)
	assert.Equal(t, "1111", card.LastFour)
}

func TestAddCardRejectsExpired(t *testing.T) {
	svc := NewService(&fakeRepo{})

	req := validRequest("4111111111111111")
	req.ExpiryYear = time.Now().Year() - 1
	_, err := svc.AddCard(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrCardExpired)
}

func TestFirstCardBecomesDefault(t *testing.T) {
	svc := NewService(&fakeRepo{})
	userID := uuid.New()

	first, err := svc.AddCard(context.Background(), userID, validRequest("4111111111111111"))
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := svc.AddCard(context.Background(), userID, validRequest("5500005555555559"))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestAddCardWithSetDefaultDemotesPrevious(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	userID := uuid.New()

	first, err := svc.AddCard(context.Background(), userID, validRequest("4111111111111111"))
	require.NoError(t, err)

	req := validRequest("5500005555555559")
	req.SetDefault = true
	second, err := svc.AddCard(context.Background(), userID, req)
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	got, err := svc.GetCard(context.Background(), userID, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
}

func TestSetDefaultSwitchesCards(t *testing.T) {
	svc := NewService(&fakeRepo{})
	userID := uuid.New()

	first, err := svc.AddCard(context.Background(), userID, validRequest("4111111111111111"))
	require.NoError(t, err)
	second, err := svc.AddCard(context.Background(), userID, validRequest("5500005555555559"))
	require.NoError(t, err)

	promoted, err := svc.SetDefault(context.Background(), userID, second.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsDefault)

	got, err := svc.GetCard(context.Background(), userID, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
}

func TestDeleteDefaultPromotesOldestRemaining(t *testing.T) {
	svc := NewService(&fakeRepo{})
	userID := uuid.New()

	first, err := svc.AddCard(context.Background(), userID, validRequest("4111111111111111"))
	require.NoError(t, err)
	second, err := svc.AddCard(context.Background(), userID, validRequest("5500005555555559"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCard(context.Background(), userID, first.ID))

	_, err = svc.GetCard(context.Background(), userID, first.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)

	got, err := svc.GetCard(context.Background(), userID, second.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)
}

func TestDeleteLastCardLeavesNoDefault(t *testing.T) {
	svc := NewService(&fakeRepo{})
	userID := uuid.New()

	card, err := svc.AddCard(context.Background(), userID, validRequest("4111111111111111"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCard(context.Background(), userID, card.ID))

	list, err := svc.GetCards(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCardsAreScopedToUser(t *testing.T) {
	svc := NewService(&fakeRepo{})
	owner := uuid.New()

	card, err := svc.AddCard(context.Background(), owner, validRequest("4111111111111111"))
	require.NoError(t, err)

	_, err = svc.GetCard(context.Background(), uuid.New(), card.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)
}
