package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavola/internal/notifications"
	"tavola/internal/shared/config"
)

type fakeRepo struct {
	byID  map[uuid.UUID]*Reservation
	order []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[uuid.UUID]*Reservation)}
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (f *fakeRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]Reservation, error) {
	var list []Reservation
	for _, id := range f.order {
		if f.byID[id].UserID == userID {
			list = append(list, *f.byID[id])
		}
	}
	return list, nil
}

func (f *fakeRepo) GetAll(_ context.Context) ([]Reservation, error) {
	var list []Reservation
	for _, id := range f.order {
		list = append(list, *f.byID[id])
	}
	return list, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	res, ok := f.byID[id]
	if !ok {
		return ErrReservationNotFound
	}
	res.Status = status
	return nil
}

func (f *fakeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.order)), nil
}

func (f *fakeRepo) FindActiveBetween(_ context.Context, start, end time.Time, excludeID *uuid.UUID) ([]Reservation, error) {
	var list []Reservation
	for _, id := range f.order {
		res := f.byID[id]
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		if !res.Status.IsActive() {
			continue
		}
		if res.DateTime.Before(start) || res.DateTime.After(end) {
			continue
		}
		list = append(list, *res)
	}
	return list, nil
}

func (f *fakeRepo) SaveIfFree(ctx context.Context, res *Reservation, start, end time.Time, excludeID *uuid.UUID, check func(active []Reservation) error) error {
	active, err := f.FindActiveBetween(ctx, start, end, excludeID)
	if err != nil {
		return err
	}
	if err := check(active); err != nil {
		return err
	}
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
		f.order = append(f.order, res.ID)
	} else if _, ok := f.byID[res.ID]; !ok {
		f.order = append(f.order, res.ID)
	}
	copied := *res
	f.byID[res.ID] = &copied
	return nil
}

type fakeNotifier struct {
	calls []string
}

func (f *fakeNotifier) Notify(_ context.Context, _ uuid.UUID, _ notifications.NotificationType, title, _ string) error {
	f.calls = append(f.calls, title)
	return nil
}

func testConfig(totalTables int) *config.Config {
	return &config.Config{
		Restaurant: config.RestaurantConfig{
			TotalTables:    totalTables,
			ConflictWindow: time.Hour,
		},
	}
}

func newTestService(totalTables int) (Service, *fakeRepo, *fakeNotifier) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, nil, notifier, testConfig(totalTables))
	return svc, repo, notifier
}

// eveningSlot is a dinner slot far enough out that every booking in
// these tests is future-dated.
func eveningSlot() time.Time {
	return time.Now().AddDate(0, 0, 7).Truncate(time.Hour).Add(19 * time.Hour)
}

func mustReserve(t *testing.T, svc Service, at time.Time, tables []int) *Reservation {
	t.Helper()
	res, err := svc.Reserve(context.Background(), uuid.New(), &ReservationRequest{
		DateTime:     at,
		GuestCount:   2,
		TableNumbers: tables,
	})
	require.NoError(t, err)
	return res
}

func TestReserveEmptyTableSelection(t *testing.T) {
	svc, repo, _ := newTestService(12)

	_, err := svc.Reserve(context.Background(), uuid.New(), &ReservationRequest{
		DateTime:   time.Now().Add(24 * time.Hour),
		GuestCount: 2,
	})

	require.Error(t, err)
	assert.True(t, AsValidation(err))
	assert.Equal(t, "Select at least one table", err.Error())
	assert.Empty(t, repo.order)
}

func TestReserveDuplicateTable(t *testing.T) {
	svc, repo, _ := newTestService(12)

	_, err := svc.Reserve(context.Background(), uuid.New(), &ReservationRequest{
		DateTime:     time.Now().Add(24 * time.Hour),
		GuestCount:   4,
		TableNumbers: []int{2, 5, 5},
	})

	require.Error(t, err)
	assert.True(t, AsValidation(err))
	assert.Equal(t, "Table 5 has been selected more than once.", err.Error())
	assert.Empty(t, repo.order)
}

func TestReserveTableOutOfRange(t *testing.T) {
	svc, repo, _ := newTestService(12)

	for _, table := range []int{0, -1, 13} {
		_, err := svc.Reserve(context.Background(), uuid.New(), &ReservationRequest{
			DateTime:     time.Now().Add(24 * time.Hour),
			GuestCount:   2,
			TableNumbers: []int{table},
		})
		require.Error(t, err)
		assert.True(t, AsValidation(err))
		assert.Equal(t, "Table numbers must be between 1 and 12", err.Error())
	}
	assert.Empty(t, repo.order)
}

func TestReserveMissingDateTime(t *testing.T) {
	svc, _, _ := newTestService(12)

	_, err := svc.Reserve(context.Background(), uuid.New(), &ReservationRequest{
		GuestCount:   2,
		TableNumbers: []int{4},
	})

	require.Error(t, err)
	assert.True(t, AsValidation(err))
	assert.Equal(t, "Reservation date, time, and table selection are required", err.Error())
}

func TestReserveRejectsPastDateTime(t *testing.T) {
	svc, repo, _ := newTestService(12)

	_, err := svc.Reserve(context.Background(), uuid.New(), &ReservationRequest{
		DateTime:     time.Now().Add(-48 * time.Hour),
		GuestCount:   2,
		TableNumbers: []int{1},
	})

	require.Error(t, err)
	assert.True(t, AsValidation(err))
	assert.Equal(t, "Reservation date and time must be in the future", err.Error())
	assert.Empty(t, repo.order)
}

func TestReserveConflictInsideWindow(t *testing.T) {
	svc, _, _ := newTestService(12)
	slot := eveningSlot()

	mustReserve(t, svc, slot, []int{3})

	// 19:30 is inside the ±1h window around 19:00
	_, err := svc.Reserve(context.Background(), uuid.New(), &ReservationRequest{
		DateTime:     slot.Add(30 * time.Minute),
		GuestCount:   2,
		TableNumbers: []int{3},
	})
	require.Error(t, err)
	assert.True(t, AsConflict(err))
	assert.Equal(t, "Table(s) 3 are already booked for that slot. Please choose other tables.", err.Error())

	// 22:00 is outside the window, same table is free again
	res := mustReserve(t, svc, slot.Add(3*time.Hour), []int{3})
	assert.Equal(t, []int{3}, res.TableNumbers)
	assert.Equal(t, 3, res.TableNumber)
	assert.Equal(t, StatusPending, res.Status)
}

func TestReserveConflictListsTablesInRequestOrder(t *testing.T) {
	svc, _, _ := newTestService(12)
	slot := eveningSlot()

	mustReserve(t, svc, slot, []int{7, 2})

	_, err := svc.Reserve(context.Background(), uuid.New(), &ReservationRequest{
		DateTime:     slot,
		GuestCount:   4,
		TableNumbers: []int{2, 5, 7},
	})
	require.Error(t, err)
	assert.Equal(t, "Table(s) 2, 7 are already booked for that slot. Please choose other tables.", err.Error())
}

func TestUpdateReservationExcludesSelfFromScan(t *testing.T) {
	svc, _, _ := newTestService(12)
	slot := eveningSlot()

	res := mustReserve(t, svc, slot, []int{4, 5})

	// Re-submitting the same tables and time must not self-conflict
	updated, err := svc.UpdateReservation(context.Background(), res.ID, &ReservationRequest{
		DateTime:     slot,
		GuestCount:   3,
		TableNumbers: []int{4, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.GuestCount)
	assert.Equal(t, []int{4, 5}, updated.TableNumbers)
	assert.Equal(t, StatusPending, updated.Status)
}

func TestUpdateReservationStillConflictsWithOthers(t *testing.T) {
	svc, _, _ := newTestService(12)
	slot := eveningSlot()

	mustReserve(t, svc, slot, []int{1})
	res := mustReserve(t, svc, slot, []int{2})

	_, err := svc.UpdateReservation(context.Background(), res.ID, &ReservationRequest{
		DateTime:     slot,
		GuestCount:   2,
		TableNumbers: []int{1},
	})
	require.Error(t, err)
	assert.True(t, AsConflict(err))
	assert.Equal(t, "Table(s) 1 are already booked for that slot. Please choose other tables.", err.Error())
}

func TestReserveFullHouseRejectsEveryRequest(t *testing.T) {
	svc, _, _ := newTestService(12)
	slot := eveningSlot()

	for table := 1; table <= 12; table++ {
		mustReserve(t, svc, slot, []int{table})
	}

	for _, tables := range [][]int{{1}, {6, 7}, {12}} {
		_, err := svc.Reserve(context.Background(), uuid.New(), &ReservationRequest{
			DateTime:     slot.Add(15 * time.Minute),
			GuestCount:   2,
			TableNumbers: tables,
		})
		require.Error(t, err)
		assert.True(t, AsConflict(err))
	}
}

func TestReserveNoTablesAvailableAfterCapacityReduction(t *testing.T) {
	// Two legacy rows still hold tables 5 and 6 while the floor has
	// shrunk to 2 tables, so capacity is exhausted without overlap.
	svc, repo, _ := newTestService(2)
	slot := eveningSlot()

	for _, table := range []int{5, 6} {
		id := uuid.New()
		repo.byID[id] = &Reservation{
			ID:          id,
			UserID:      uuid.New(),
			DateTime:    slot,
			GuestCount:  2,
			TableNumber: table,
			Status:      StatusConfirmed,
		}
		repo.order = append(repo.order, id)
	}

	_, err := svc.Reserve(context.Background(), uuid.New(), &ReservationRequest{
		DateTime:     slot,
		GuestCount:   2,
		TableNumbers: []int{1},
	})
	require.Error(t, err)
	assert.True(t, AsConflict(err))
	assert.Equal(t, "No tables available for the selected time. Please choose another slot.", err.Error())
}

func TestReserveMoreTablesThanRemain(t *testing.T) {
	// A legacy row holding out-of-range table 13 eats one slot of
	// capacity, leaving 11 free in-range tables but only 10 available.
	svc, repo, _ := newTestService(12)
	slot := eveningSlot()

	mustReserve(t, svc, slot, []int{1})

	id := uuid.New()
	repo.byID[id] = &Reservation{
		ID:          id,
		UserID:      uuid.New(),
		DateTime:    slot,
		GuestCount:  2,
		TableNumber: 13,
		Status:      StatusConfirmed,
	}
	repo.order = append(repo.order, id)

	request := make([]int, 0, 11)
	for table := 2; table <= 12; table++ {
		request = append(request, table)
	}

	_, err := svc.Reserve(context.Background(), uuid.New(), &ReservationRequest{
		DateTime:     slot,
		GuestCount:   20,
		TableNumbers: request,
	})
	require.Error(t, err)
	assert.True(t, AsConflict(err))
	assert.Equal(t, "Only 10 tables remain available for that slot.", err.Error())
}

func TestCheckAvailabilityZeroTime(t *testing.T) {
	svc, _, _ := newTestService(12)

	occupied, err := svc.CheckAvailability(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Empty(t, occupied)
}

func TestCheckAvailabilityPreservesFirstSeenOrder(t *testing.T) {
	svc, _, _ := newTestService(12)
	slot := eveningSlot()

	mustReserve(t, svc, slot, []int{5, 2})
	mustReserve(t, svc, slot.Add(20*time.Minute), []int{9, 2})

	occupied, err := svc.CheckAvailability(context.Background(), slot.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []int{5, 2, 9}, occupied)
}

func TestCheckAvailabilityIncludesLegacyScalarOnly(t *testing.T) {
	svc, repo, _ := newTestService(12)
	slot := eveningSlot()

	id := uuid.New()
	repo.byID[id] = &Reservation{
		ID:          id,
		UserID:      uuid.New(),
		DateTime:    slot,
		GuestCount:  2,
		TableNumber: 8,
		Status:      StatusPending,
	}
	repo.order = append(repo.order, id)

	occupied, err := svc.CheckAvailability(context.Background(), slot)
	require.NoError(t, err)
	assert.Equal(t, []int{8}, occupied)
}

func TestCancelReleasesTables(t *testing.T) {
	svc, _, notifier := newTestService(12)
	slot := eveningSlot()

	res := mustReserve(t, svc, slot, []int{6})

	require.NoError(t, svc.Cancel(context.Background(), res.ID))

	got, err := svc.GetReservation(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)

	occupied, err := svc.CheckAvailability(context.Background(), slot)
	require.NoError(t, err)
	assert.Empty(t, occupied)

	assert.Contains(t, notifier.calls, "Reservation Cancelled")
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService(12)
	res := mustReserve(t, svc, eveningSlot(), []int{6})

	require.NoError(t, svc.Cancel(context.Background(), res.ID))
	require.NoError(t, svc.Cancel(context.Background(), res.ID))
}

func TestUpdateStatusEnforcesForwardTransitions(t *testing.T) {
	svc, _, notifier := newTestService(12)
	res := mustReserve(t, svc, eveningSlot(), []int{6})

	updated, err := svc.UpdateStatus(context.Background(), res.ID, "CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), res.ID, "seated")
	require.NoError(t, err)
	assert.Equal(t, StatusSeated, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), res.ID, "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), res.ID, "PENDING")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = svc.UpdateStatus(context.Background(), res.ID, "BRUNCH")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.Contains(t, notifier.calls, "Reservation Status Update")
}

func TestUpdateStatusUnknownReservation(t *testing.T) {
	svc, _, _ := newTestService(12)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "CONFIRMED")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestReserveSendsConfirmationNotification(t *testing.T) {
	svc, _, notifier := newTestService(12)

	mustReserve(t, svc, eveningSlot(), []int{1, 2})

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "Reservation Confirmation", notifier.calls[0])
}

func TestStatusTransitionTable(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusConfirmed, StatusNoShow))
	assert.True(t, CanTransition(StatusSeated, StatusCompleted))
	assert.True(t, CanTransition(StatusSeated, StatusSeated))

	assert.False(t, CanTransition(StatusCompleted, StatusPending))
	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))
	assert.False(t, CanTransition(StatusNoShow, StatusSeated))
	assert.False(t, CanTransition(StatusSeated, StatusPending))
}
