package reservations

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"tavola/internal/notifications"
	"tavola/internal/shared/config"
	"tavola/pkg/cache"
	"tavola/pkg/logger"
)

const (
	availabilityCacheKey     = "tavola:availability:%s"
	availabilityCachePattern = "tavola:availability:*"
)

// Notifier is the slice of the notification service reservations need.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, notifType notifications.NotificationType, title, message string) error
}

type Service interface {
	// CheckAvailability returns the table numbers occupied by active
	// reservations within the conflict window around at, first-seen
	// order preserved. A zero time yields an empty list.
	CheckAvailability(ctx context.Context, at time.Time) ([]int, error)

	Reserve(ctx context.Context, userID uuid.UUID, req *ReservationRequest) (*Reservation, error)
	UpdateReservation(ctx context.Context, id uuid.UUID, req *ReservationRequest) (*Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID) error

	GetUserReservations(ctx context.Context, userID uuid.UUID) ([]Reservation, error)
	GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error)
	GetAllReservations(ctx context.Context) ([]Reservation, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	notifier Notifier
	config   *config.Config
	logger   *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, notifier Notifier, cfg *config.Config) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		notifier: notifier,
		config:   cfg,
		logger:   logger.GetDefault(),
	}
}

func (s *service) CheckAvailability(ctx context.Context, at time.Time) ([]int, error) {
	if at.IsZero() {
		return []int{}, nil
	}

	if s.cache != nil {
		var occupied []int
		key := fmt.Sprintf(availabilityCacheKey, at.UTC().Format(time.RFC3339))
		err := s.cache.GetOrSet(ctx, key, s.config.Redis.AvailabilityCacheTTL, func() (interface{}, error) {
			return s.occupiedTables(ctx, at, nil)
		}, &occupied)
		if err == nil {
			return occupied, nil
		}
		s.logger.Warn("availability cache read failed, falling back to database", "error", err)
	}

	return s.occupiedTables(ctx, at, nil)
}

func (s *service) Reserve(ctx context.Context, userID uuid.UUID, req *ReservationRequest) (*Reservation, error) {
	tables, err := s.sanitizeTables(req.TableNumbers)
	if err != nil {
		return nil, err
	}
	if req.DateTime.IsZero() {
		return nil, &ValidationError{Message: "Reservation date, time, and table selection are required"}
	}
	if !req.DateTime.After(time.Now()) {
		return nil, &ValidationError{Message: "Reservation date and time must be in the future"}
	}

	res := &Reservation{
		UserID:          userID,
		DateTime:        req.DateTime,
		GuestCount:      req.GuestCount,
		TableNumbers:    tables,
		TableNumber:     tables[0],
		Status:          StatusPending,
		SpecialRequests: req.SpecialRequests,
	}

	start, end := s.window(req.DateTime)
	err = s.repo.SaveIfFree(ctx, res, start, end, nil, func(active []Reservation) error {
		return s.ensureFree(tables, active)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAvailabilityCache(ctx)
	s.notify(ctx, userID, "Reservation Confirmation",
		fmt.Sprintf("Your reservation for %d guests on %s for tables %s has been received and is pending confirmation.",
			res.GuestCount, formatDateTime(res.DateTime), formatTableList(res.TableNumbers)))

	return res, nil
}

// UpdateReservation runs the same validation and conflict pipeline as
// Reserve, excluding the reservation's own rows from the scan so it
// never conflicts with itself. The future-date rule applies only at
// creation time. Status is left untouched.
func (s *service) UpdateReservation(ctx context.Context, id uuid.UUID, req *ReservationRequest) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tables, err := s.sanitizeTables(req.TableNumbers)
	if err != nil {
		return nil, err
	}
	if req.DateTime.IsZero() {
		return nil, &ValidationError{Message: "Reservation date, time, and table selection are required"}
	}

	res.DateTime = req.DateTime
	res.GuestCount = req.GuestCount
	res.SpecialRequests = req.SpecialRequests
	res.TableNumbers = tables
	res.TableNumber = tables[0]

	start, end := s.window(req.DateTime)
	err = s.repo.SaveIfFree(ctx, res, start, end, &id, func(active []Reservation) error {
		return s.ensureFree(tables, active)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAvailabilityCache(ctx)
	return res, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*Reservation, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(res.Status, status) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	res.Status = status

	s.invalidateAvailabilityCache(ctx)
	s.notify(ctx, res.UserID, "Reservation Status Update",
		fmt.Sprintf("Your reservation for %s for tables %s is now %s.",
			formatDateTime(res.DateTime), formatTableList(res.TableNumbers), strings.ToLower(string(status))))

	return res, nil
}

// Cancel is idempotent, cancelling an already-cancelled reservation
// succeeds and sends another notification.
func (s *service) Cancel(ctx context.Context, id uuid.UUID) error {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return err
	}

	s.invalidateAvailabilityCache(ctx)
	s.notify(ctx, res.UserID, "Reservation Cancelled",
		fmt.Sprintf("Your reservation for %s for tables %s has been cancelled.",
			formatDateTime(res.DateTime), formatTableList(res.TableNumbers)))

	return nil
}

func (s *service) GetUserReservations(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetAllReservations(ctx context.Context) ([]Reservation, error) {
	return s.repo.GetAll(ctx)
}

// sanitizeTables validates the requested table numbers, preserving
// request order. Duplicates are an error, never silently collapsed.
func (s *service) sanitizeTables(tables []int) ([]int, error) {
	if len(tables) == 0 {
		return nil, &ValidationError{Message: "Select at least one table"}
	}

	total := s.config.Restaurant.TotalTables
	seen := make(map[int]bool, len(tables))
	cleaned := make([]int, 0, len(tables))
	for _, table := range tables {
		if table < 1 || table > total {
			return nil, &ValidationError{Message: fmt.Sprintf("Table numbers must be between 1 and %d", total)}
		}
		if seen[table] {
			return nil, &ValidationError{Message: fmt.Sprintf("Table %d has been selected more than once.", table)}
		}
		seen[table] = true
		cleaned = append(cleaned, table)
	}
	return cleaned, nil
}

// ensureFree applies the conflict rules against the active window rows:
// requested tables must not be held, and enough capacity must remain.
func (s *service) ensureFree(requested []int, active []Reservation) error {
	occupied := unionTables(active)

	occupiedSet := make(map[int]bool, len(occupied))
	for _, t := range occupied {
		occupiedSet[t] = true
	}

	var conflicts []int
	for _, t := range requested {
		if occupiedSet[t] {
			conflicts = append(conflicts, t)
		}
	}
	if len(conflicts) > 0 {
		return &ConflictError{Message: fmt.Sprintf("Table(s) %s are already booked for that slot. Please choose other tables.",
			formatTableList(conflicts))}
	}

	available := s.config.Restaurant.TotalTables - len(occupied)
	if available <= 0 {
		return &ConflictError{Message: "No tables available for the selected time. Please choose another slot."}
	}
	if len(requested) > available {
		return &ConflictError{Message: fmt.Sprintf("Only %d tables remain available for that slot.", available)}
	}
	return nil
}

func (s *service) occupiedTables(ctx context.Context, at time.Time, excludeID *uuid.UUID) ([]int, error) {
	start, end := s.window(at)
	active, err := s.repo.FindActiveBetween(ctx, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	return unionTables(active), nil
}

func (s *service) window(at time.Time) (time.Time, time.Time) {
	w := s.config.Restaurant.ConflictWindow
	return at.Add(-w), at.Add(w)
}

// unionTables collects the tables held by the given reservations in
// first-seen order. The legacy scalar is folded in alongside the set
// for rows written before multi-table bookings.
func unionTables(active []Reservation) []int {
	seen := make(map[int]bool)
	occupied := []int{}
	for i := range active {
		if t := active[i].TableNumber; t > 0 && !seen[t] {
			seen[t] = true
			occupied = append(occupied, t)
		}
		for _, t := range active[i].TableNumbers {
			if !seen[t] {
				seen[t] = true
				occupied = append(occupied, t)
			}
		}
	}
	return occupied
}

func (s *service) invalidateAvailabilityCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, availabilityCachePattern); err != nil {
		s.logger.Warn("failed to invalidate availability cache", "error", err)
	}
}

// Notification failures are logged and swallowed, a committed
// reservation never rolls back because the sink is down.
func (s *service) notify(ctx context.Context, userID uuid.UUID, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, notifications.TypeReservation, title, message); err != nil {
		s.logger.Error("failed to send reservation notification", "user_id", userID, "error", err)
	}
}

func formatTableList(tables []int) string {
	if len(tables) == 0 {
		return "N/A"
	}
	parts := make([]string, len(tables))
	for i, t := range tables {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ", ")
}

func formatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 at 3:04 PM")
}
