package auto_cancel_expired

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	bookingRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/booking"
	slotRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/slot"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/ptr"
)

// now is 2026-03-18 (Wednesday) for every test.
var now = time.Date(2026, 3, 18, 2, 30, 0, 0, time.UTC)

type fakeStore struct {
	mu        sync.Mutex
	bookings  map[int64]*domain.Booking
	slots     map[int64]*domain.Slot
	cancelErr map[int64]error
	listErr   error

	listCutoff time.Time

	// afterList runs once right after ListExpired snapshots its result,
	// before the per-booking transactions start.
	afterList func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings:  make(map[int64]*domain.Booking),
		slots:     make(map[int64]*domain.Slot),
		cancelErr: make(map[int64]error),
	}
}

func (s *fakeStore) ListExpired(_ context.Context, before time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCutoff = before

	allowed := make(map[domain.BookingStatus]struct{}, len(statuses))
	for _, st := range statuses {
		allowed[st] = struct{}{}
	}

	var out []*domain.Booking
	for _, b := range s.bookings {
		if _, ok := allowed[b.Status]; !ok {
			continue
		}
		if !b.BookingDate.Before(before) {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	if s.afterList != nil {
		hook := s.afterList
		s.afterList = nil
		s.mu.Unlock()
		hook()
		s.mu.Lock()
	}
	return out, nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *fakeStore) Cancel(_ context.Context, id int64, reason string) error {
	if err := s.cancelErr[id]; err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bookings[id]
	b.Status = domain.StatusCancelled
	b.CancellationReason = ptr.Ptr(reason)
	return nil
}

func (s *fakeStore) UnlinkSlot(_ context.Context, bookingID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[bookingID].SlotID = nil
	return nil
}

func (s *fakeStore) DecrementBookings(_ context.Context, id int64) (*domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if slot.CurrentBookings <= 0 {
		return nil, slotRepo.ErrAlreadyReleased
	}
	slot.CurrentBookings--
	copied := *slot
	return &copied, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLocker struct {
	held bool
}

func (l *fakeLocker) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) (bool, error) {
	if l.held {
		return false, nil
	}
	return true, fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newCanceller(store *fakeStore, locker *fakeLocker) *UseCase {
	uc := NewUseCase(store, store, passthroughTx{}, locker, Params{GracePeriodDays: 1}, nopLogger{})
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

func date(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestExecute_CancelsExpiredAndReleasesSlots(t *testing.T) {
	store := newFakeStore()
	store.slots[1] = &domain.Slot{ID: 1, MaxBookings: 2, CurrentBookings: 2}
	// Booked for the 15th, still pending on the 18th with one grace day.
	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusPending, BookingDate: date(15), SlotID: ptr.Ptr(int64(1))}
	// Confirmed but never allocated: cancels without a release.
	store.bookings[101] = &domain.Booking{ID: 101, Status: domain.StatusConfirmed, BookingDate: date(14)}

	resp, err := newCanceller(store, &fakeLocker{}).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.CancelledCount)
	assert.Equal(t, 1, resp.ReleasedCount)
	assert.Empty(t, resp.Errors)

	assert.Equal(t, domain.StatusCancelled, store.bookings[100].Status)
	assert.Nil(t, store.bookings[100].SlotID)
	assert.Equal(t, 1, store.slots[1].CurrentBookings)

	require.NotNil(t, store.bookings[100].CancellationReason)
	assert.Equal(t, domain.AutoCancelReason, *store.bookings[100].CancellationReason)
}

func TestExecute_GracePeriodCutoff(t *testing.T) {
	store := newFakeStore()
	// Today is the 18th with one grace day: the cutoff is the 17th, so a
	// booking dated the 17th survives and one dated the 16th is cancelled.
	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusPending, BookingDate: date(17)}
	store.bookings[101] = &domain.Booking{ID: 101, Status: domain.StatusPending, BookingDate: date(16)}

	resp, err := newCanceller(store, &fakeLocker{}).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, date(17), store.listCutoff)
	assert.Equal(t, 1, resp.CancelledCount)
	assert.Equal(t, domain.StatusPending, store.bookings[100].Status)
	assert.Equal(t, domain.StatusCancelled, store.bookings[101].Status)
}

func TestExecute_DeliveredBookingsAreNotTouched(t *testing.T) {
	store := newFakeStore()
	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusServiceDelivered, BookingDate: date(10)}
	store.bookings[101] = &domain.Booking{ID: 101, Status: domain.StatusCompleted, BookingDate: date(10)}

	resp, err := newCanceller(store, &fakeLocker{}).Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CancelledCount)
}

func TestExecute_LockHeldIsNoOp(t *testing.T) {
	store := newFakeStore()
	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusPending, BookingDate: date(10)}

	resp, err := newCanceller(store, &fakeLocker{held: true}).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Nil(t, resp)
	assert.Equal(t, domain.StatusPending, store.bookings[100].Status)
}

func TestExecute_DryRunWritesNothing(t *testing.T) {
	store := newFakeStore()
	store.slots[1] = &domain.Slot{ID: 1, MaxBookings: 1, CurrentBookings: 1}
	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusPending, BookingDate: date(10), SlotID: ptr.Ptr(int64(1))}

	resp, err := newCanceller(store, &fakeLocker{}).Execute(context.Background(), &Request{DryRun: true})
	require.NoError(t, err)

	assert.True(t, resp.DryRun)
	assert.Equal(t, 1, resp.CancelledCount)
	assert.Equal(t, 1, resp.ReleasedCount)
	assert.Equal(t, domain.StatusPending, store.bookings[100].Status)
	assert.Equal(t, 1, store.slots[1].CurrentBookings)
}

func TestExecute_PerBookingFailureIsIsolated(t *testing.T) {
	store := newFakeStore()
	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusPending, BookingDate: date(10)}
	store.bookings[101] = &domain.Booking{ID: 101, Status: domain.StatusPending, BookingDate: date(10)}
	store.cancelErr[100] = errors.New("row locked")

	resp, err := newCanceller(store, &fakeLocker{}).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrPartialFailure)
	require.NotNil(t, resp)

	assert.Equal(t, 1, resp.CancelledCount)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, int64(100), resp.Errors[0].BookingID)
	assert.Equal(t, domain.StatusCancelled, store.bookings[101].Status)
}

func TestExecute_ManualCancelBetweenListingAndSweep(t *testing.T) {
	store := newFakeStore()
	// Two bookings each holding one unit of slot 1.
	store.slots[1] = &domain.Slot{ID: 1, MaxBookings: 2, CurrentBookings: 2}
	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusPending, BookingDate: date(15), SlotID: ptr.Ptr(int64(1))}
	store.bookings[200] = &domain.Booking{ID: 200, Status: domain.StatusConfirmed, BookingDate: date(18), SlotID: ptr.Ptr(int64(1))}

	// A manual cancellation commits right after the sweep snapshots its
	// listing: booking 100 is cancelled, unlinked and its unit released.
	store.afterList = func() {
		store.mu.Lock()
		defer store.mu.Unlock()
		store.bookings[100].Status = domain.StatusCancelled
		store.bookings[100].SlotID = nil
		store.slots[1].CurrentBookings--
	}

	resp, err := newCanceller(store, &fakeLocker{}).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	// The stale listing row must not release a second unit: booking 200
	// still holds one.
	assert.Equal(t, 0, resp.CancelledCount)
	assert.Equal(t, 0, resp.ReleasedCount)
	assert.Equal(t, 1, resp.SkippedCount)
	assert.Equal(t, 1, store.slots[1].CurrentBookings)
}

func TestExecute_MissingSlotStillCancels(t *testing.T) {
	// Cleanup already removed the slot; the cancellation must stand anyway.
	store := newFakeStore()
	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusPending, BookingDate: date(10), SlotID: ptr.Ptr(int64(404))}

	resp, err := newCanceller(store, &fakeLocker{}).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.CancelledCount)
	assert.Equal(t, 0, resp.ReleasedCount)
	assert.Equal(t, domain.StatusCancelled, store.bookings[100].Status)
}

func TestExecute_InvalidGracePeriod(t *testing.T) {
	uc := newCanceller(newFakeStore(), &fakeLocker{})

	_, err := uc.Execute(context.Background(), &Request{GracePeriodDays: -2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
