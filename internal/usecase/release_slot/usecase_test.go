package release_slot

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	bookingRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/booking"
	slotRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/slot"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/ptr"
)

type fakeStore struct {
	mu       sync.Mutex
	slots    map[int64]*domain.Slot
	bookings map[int64]*domain.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:    make(map[int64]*domain.Slot),
		bookings: make(map[int64]*domain.Booking),
	}
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
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

type fakeBookings struct {
	store *fakeStore
}

func (b *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	booking, ok := b.store.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (b *fakeBookings) UnlinkSlot(_ context.Context, bookingID int64) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	booking, ok := b.store.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	booking.SlotID = nil
	return nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newReleaser(store *fakeStore) *UseCase {
	return NewUseCase(store, &fakeBookings{store: store}, passthroughTx{}, nopLogger{})
}

func TestExecute_ReleasesLinkedBooking(t *testing.T) {
	store := newFakeStore()
	store.slots[1] = &domain.Slot{ID: 1, MaxBookings: 2, CurrentBookings: 1}
	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusCancelled, SlotID: ptr.Ptr(int64(1))}

	slot, err := newReleaser(store).Execute(context.Background(), &Request{SlotID: 1, BookingID: 100})
	require.NoError(t, err)
	assert.Equal(t, 0, slot.CurrentBookings)
	assert.Nil(t, store.bookings[100].SlotID)
}

func TestExecute_SecondReleaseIsNoOp(t *testing.T) {
	store := newFakeStore()
	store.slots[1] = &domain.Slot{ID: 1, MaxBookings: 2, CurrentBookings: 2}
	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusCancelled, SlotID: ptr.Ptr(int64(1))}
	uc := newReleaser(store)

	first, err := uc.Execute(context.Background(), &Request{SlotID: 1, BookingID: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, first.CurrentBookings)

	// The booking no longer holds the link; the counter must not move again.
	second, err := uc.Execute(context.Background(), &Request{SlotID: 1, BookingID: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, second.CurrentBookings)
	assert.Equal(t, 1, store.slots[1].CurrentBookings)
}

func TestExecute_BookingLinkedElsewhereIsNoOp(t *testing.T) {
	store := newFakeStore()
	store.slots[1] = &domain.Slot{ID: 1, MaxBookings: 2, CurrentBookings: 1}
	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusPending, SlotID: ptr.Ptr(int64(9))}

	slot, err := newReleaser(store).Execute(context.Background(), &Request{SlotID: 1, BookingID: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, slot.CurrentBookings)
	// The foreign link is untouched.
	require.NotNil(t, store.bookings[100].SlotID)
	assert.Equal(t, int64(9), *store.bookings[100].SlotID)
}

func TestExecute_CounterAlreadyZeroKeepsUnlink(t *testing.T) {
	// Inconsistent starting state: the booking holds a link but the counter
	// is already zero. Release repairs the link and reports current state.
	store := newFakeStore()
	store.slots[1] = &domain.Slot{ID: 1, MaxBookings: 2, CurrentBookings: 0}
	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusCancelled, SlotID: ptr.Ptr(int64(1))}

	slot, err := newReleaser(store).Execute(context.Background(), &Request{SlotID: 1, BookingID: 100})
	require.NoError(t, err)
	assert.Equal(t, 0, slot.CurrentBookings)
	assert.Nil(t, store.bookings[100].SlotID)
}

func TestExecute_MissingEntities(t *testing.T) {
	store := newFakeStore()
	store.slots[1] = &domain.Slot{ID: 1, MaxBookings: 2}

	_, err := newReleaser(store).Execute(context.Background(), &Request{SlotID: 1, BookingID: 404})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusPending, SlotID: ptr.Ptr(int64(404))}
	_, err = newReleaser(store).Execute(context.Background(), &Request{SlotID: 404, BookingID: 100})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newReleaser(newFakeStore())

	_, err := uc.Execute(context.Background(), &Request{SlotID: 0, BookingID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SlotID: 1, BookingID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
