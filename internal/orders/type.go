package orders

import (
	"errors"
	"strings"
)

var ErrInvalidOrderType = errors.New("invalid order type")

// OrderType says how the order is fulfilled.
type OrderType string

const (
	TypeDineIn   OrderType = "DINE_IN"
	TypeTakeaway OrderType = "TAKEAWAY"
	TypeDelivery OrderType = "DELIVERY"
)

// ParseOrderType validates a raw order type against the closed enum.
// Matching is case-insensitive; empty input defaults to dine-in.
func ParseOrderType(raw string) (OrderType, error) {
	if raw == "" {
		return TypeDineIn, nil
	}
	t := OrderType(strings.ToUpper(raw))
	switch t {
	case TypeDineIn, TypeTakeaway, TypeDelivery:
		return t, nil
	}
	return "", ErrInvalidOrderType
}
