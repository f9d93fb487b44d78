package allocate_slot

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

// fakeStore mimics the storage semantics the allocator relies on: the
// increment is a single guarded compare-and-set, just like the conditional
// UPDATE in Postgres.
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

func (s *fakeStore) IncrementBookings(_ context.Context, id int64) (*domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if slot.CurrentBookings >= slot.MaxBookings {
		return nil, slotRepo.ErrCapacityExceeded
	}
	slot.CurrentBookings++
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

func (b *fakeBookings) LinkSlot(_ context.Context, bookingID, slotID int64) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	booking, ok := b.store.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	booking.SlotID = ptr.Ptr(slotID)
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

func newAllocator(store *fakeStore) *UseCase {
	return NewUseCase(store, &fakeBookings{store: store}, passthroughTx{}, nopLogger{})
}

func seed(store *fakeStore, slot *domain.Slot, bookings ...*domain.Booking) {
	store.slots[slot.ID] = slot
	for _, b := range bookings {
		store.bookings[b.ID] = b
	}
}

func TestExecute_AllocatesAndLinks(t *testing.T) {
	store := newFakeStore()
	seed(store,
		&domain.Slot{ID: 1, MaxBookings: 2},
		&domain.Booking{ID: 100, Status: domain.StatusPending},
	)

	slot, err := newAllocator(store).Execute(context.Background(), &Request{SlotID: 1, BookingID: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, slot.CurrentBookings)
	require.NotNil(t, store.bookings[100].SlotID)
	assert.Equal(t, int64(1), *store.bookings[100].SlotID)
}

func TestExecute_FullSlotReturnsCapacityExceeded(t *testing.T) {
	store := newFakeStore()
	seed(store,
		&domain.Slot{ID: 1, MaxBookings: 1, CurrentBookings: 1},
		&domain.Booking{ID: 100, Status: domain.StatusPending},
	)

	_, err := newAllocator(store).Execute(context.Background(), &Request{SlotID: 1, BookingID: 100})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, store.bookings[100].SlotID)
}

func TestExecute_ConcurrentAllocationsNeverOverbook(t *testing.T) {
	const capacity = 3
	const contenders = 20

	store := newFakeStore()
	seed(store, &domain.Slot{ID: 1, MaxBookings: capacity})
	for i := int64(1); i <= contenders; i++ {
		store.bookings[i] = &domain.Booking{ID: i, Status: domain.StatusConfirmed}
	}
	uc := newAllocator(store)

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{SlotID: 1, BookingID: int64(i + 1)})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrCapacityExceeded)
		}
	}
	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, capacity, store.slots[1].CurrentBookings)
}

func TestExecute_InactiveBookingRefused(t *testing.T) {
	// Only pending and confirmed bookings may take capacity: cancelled and
	// rejected no longer need a slot, delivered and completed are history.
	statuses := []domain.BookingStatus{
		domain.StatusCancelled,
		domain.StatusRejected,
		domain.StatusServiceDelivered,
		domain.StatusCompleted,
	}
	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			store := newFakeStore()
			seed(store,
				&domain.Slot{ID: 1, MaxBookings: 2},
				&domain.Booking{ID: 100, Status: status},
			)

			_, err := newAllocator(store).Execute(context.Background(), &Request{SlotID: 1, BookingID: 100})
			assert.ErrorIs(t, err, ErrBookingInactive)
			assert.Equal(t, 0, store.slots[1].CurrentBookings)
		})
	}
}

func TestExecute_AlreadyAllocatedRefused(t *testing.T) {
	store := newFakeStore()
	seed(store,
		&domain.Slot{ID: 1, MaxBookings: 2},
		&domain.Booking{ID: 100, Status: domain.StatusPending, SlotID: ptr.Ptr(int64(9))},
	)

	_, err := newAllocator(store).Execute(context.Background(), &Request{SlotID: 1, BookingID: 100})
	assert.ErrorIs(t, err, ErrAlreadyAllocated)
}

func TestExecute_MissingEntities(t *testing.T) {
	store := newFakeStore()
	seed(store, &domain.Slot{ID: 1, MaxBookings: 2})

	_, err := newAllocator(store).Execute(context.Background(), &Request{SlotID: 1, BookingID: 404})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	store.bookings[100] = &domain.Booking{ID: 100, Status: domain.StatusPending}
	_, err = newAllocator(store).Execute(context.Background(), &Request{SlotID: 404, BookingID: 100})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newAllocator(newFakeStore())

	_, err := uc.Execute(context.Background(), &Request{SlotID: 0, BookingID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SlotID: 1, BookingID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
