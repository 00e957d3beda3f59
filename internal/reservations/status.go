package reservations

import (
	"errors"
	"strings"
)

var (
	ErrInvalidStatus           = errors.New("invalid reservation status")
	ErrInvalidStatusTransition = errors.New("invalid reservation status transition")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusSeated    Status = "SEATED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

// ParseStatus validates a raw status string against the closed enum.
// Matching is case-insensitive.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(raw))
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return s, nil
	}
	return "", ErrInvalidStatus
}

// IsActive reports whether the reservation still holds its tables for
// conflict purposes.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Reservations only move forward, a reservation never returns to
// PENDING once advanced. Terminal states accept no transitions.
var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusSeated, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusSeated, StatusCancelled, StatusNoShow},
	StatusSeated:    {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// CanTransition reports whether moving between the two statuses is
// allowed. Setting the same status again is a permitted no-op.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
