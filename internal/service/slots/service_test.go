package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	slotRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/slot"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/categorizer"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/slots/models"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

type fakeSlotRepo struct {
	slots []*domain.Slot

	getErr  error
	listErr error

	recategorized      []int64
	recategorizeErrFor map[int64]error

	deletedService int64
	deletedForce   bool
	deleteCount    int
	deleteErr      error
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, s := range f.slots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) ListByServiceAndDateRange(_ context.Context, serviceID int64, from, to time.Time) ([]*domain.Slot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	found := make([]*domain.Slot, 0, len(f.slots))
	for _, s := range f.slots {
		if s.ServiceID != serviceID {
			continue
		}
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		found = append(found, s)
	}
	return found, nil
}

func (f *fakeSlotRepo) Recategorize(_ context.Context, id int64, category domain.SlotCategory, isRush bool, feePercentage int, note string) error {
	if err := f.recategorizeErrFor[id]; err != nil {
		return err
	}
	f.recategorized = append(f.recategorized, id)
	for _, s := range f.slots {
		if s.ID == id {
			s.Category = category
			s.IsRush = isRush
			s.RushFeePercentage = feePercentage
			s.ProviderNote = note
		}
	}
	return nil
}

func (f *fakeSlotRepo) DeleteByService(_ context.Context, serviceID int64, force bool) (int, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deletedService = serviceID
	f.deletedForce = force
	return f.deleteCount, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeSlotRepo) *Service {
	return NewService(repo, categorizer.New(domain.DefaultCategoryTable()), nopLogger{})
}

func date(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func testSlot(id int64, day int, start, end types.TimeString, current, max int) *domain.Slot {
	return &domain.Slot{
		ID:              id,
		ServiceID:       10,
		ProviderID:      7,
		Date:            date(day),
		StartTime:       start,
		EndTime:         end,
		Category:        domain.CategoryNormal,
		MaxBookings:     max,
		CurrentBookings: current,
	}
}

func TestGetByID(t *testing.T) {
	repo := &fakeSlotRepo{slots: []*domain.Slot{testSlot(1, 16, "10:00", "11:00", 1, 3)}}
	svc := newService(repo)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-03-16", resp.Date)
	assert.Equal(t, 2, resp.AvailableSpots)
	assert.False(t, resp.IsFull)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(&fakeSlotRepo{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestGetByID_RepositoryError(t *testing.T) {
	svc := newService(&fakeSlotRepo{getErr: errors.New("connection refused")})

	_, err := svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestList_FiltersByCategory(t *testing.T) {
	rush := testSlot(1, 16, "17:00", "18:00", 0, 3)
	rush.Category = domain.CategoryRush
	normal := testSlot(2, 16, "10:00", "11:00", 0, 3)

	svc := newService(&fakeSlotRepo{slots: []*domain.Slot{rush, normal}})

	from, to := date(16), date(17)
	category := "rush"
	resp, err := svc.List(context.Background(), &models.ListSlotsRequest{
		ServiceID: 10,
		StartDate: &from,
		EndDate:   &to,
		Category:  &category,
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(1), resp.Slots[0].ID)
	assert.Equal(t, "rush", resp.Slots[0].Category)
}

func TestList_AvailableOnlySkipsFullSlots(t *testing.T) {
	full := testSlot(1, 16, "10:00", "11:00", 3, 3)
	open := testSlot(2, 16, "11:00", "12:00", 2, 3)

	svc := newService(&fakeSlotRepo{slots: []*domain.Slot{full, open}})

	from, to := date(16), date(17)
	resp, err := svc.List(context.Background(), &models.ListSlotsRequest{
		ServiceID:     10,
		StartDate:     &from,
		EndDate:       &to,
		AvailableOnly: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(2), resp.Slots[0].ID)
}

func TestList_InvalidInput(t *testing.T) {
	svc := newService(&fakeSlotRepo{})
	ctx := context.Background()

	_, err := svc.List(ctx, &models.ListSlotsRequest{ServiceID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := "express-lane"
	_, err = svc.List(ctx, &models.ListSlotsRequest{ServiceID: 10, Category: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	from, to := date(20), date(16)
	_, err = svc.List(ctx, &models.ListSlotsRequest{ServiceID: 10, StartDate: &from, EndDate: &to})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	farOut := date(16).AddDate(0, 0, 366)
	from = date(16)
	_, err = svc.List(ctx, &models.ListSlotsRequest{ServiceID: 10, StartDate: &from, EndDate: &farOut})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestRecategorize(t *testing.T) {
	// 2026-03-16 is a Monday: 17:00 falls in the weekday evening rush band.
	stale := testSlot(1, 16, "17:00", "18:00", 0, 3)

	booked := testSlot(2, 16, "17:00", "18:00", 1, 3)

	current := testSlot(3, 16, "10:00", "11:00", 0, 3)
	current.ProviderNote = "Standard slot starting at 10:00"

	repo := &fakeSlotRepo{slots: []*domain.Slot{stale, booked, current}}
	svc := newService(repo)

	from, to := date(16), date(17)
	resp, err := svc.Recategorize(context.Background(), &models.RecategorizeRequest{
		ServiceID: 10,
		StartDate: &from,
		EndDate:   &to,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Updated)
	assert.Equal(t, 1, resp.Unchanged)
	assert.Equal(t, 1, resp.Skipped)

	assert.Equal(t, []int64{1}, repo.recategorized)
	assert.Equal(t, domain.CategoryRush, stale.Category)
	assert.Equal(t, 25, stale.RushFeePercentage)
	assert.True(t, stale.IsRush)
}

func TestRecategorize_DryRunWritesNothing(t *testing.T) {
	stale := testSlot(1, 16, "17:00", "18:00", 0, 3)
	repo := &fakeSlotRepo{slots: []*domain.Slot{stale}}
	svc := newService(repo)

	from, to := date(16), date(17)
	resp, err := svc.Recategorize(context.Background(), &models.RecategorizeRequest{
		ServiceID: 10,
		StartDate: &from,
		EndDate:   &to,
		DryRun:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Updated)
	assert.True(t, resp.DryRun)
	assert.Empty(t, repo.recategorized)
	assert.Equal(t, domain.CategoryNormal, stale.Category)
}

func TestRecategorize_BookingLandsMidPass(t *testing.T) {
	stale := testSlot(1, 16, "17:00", "18:00", 0, 3)
	repo := &fakeSlotRepo{
		slots:              []*domain.Slot{stale},
		recategorizeErrFor: map[int64]error{1: slotRepo.ErrHasBookings},
	}
	svc := newService(repo)

	from, to := date(16), date(17)
	resp, err := svc.Recategorize(context.Background(), &models.RecategorizeRequest{
		ServiceID: 10,
		StartDate: &from,
		EndDate:   &to,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Updated)
	assert.Equal(t, 1, resp.Skipped)
}

func TestBulkDelete(t *testing.T) {
	repo := &fakeSlotRepo{deleteCount: 12}
	svc := newService(repo)

	resp, err := svc.BulkDelete(context.Background(), &models.BulkDeleteRequest{ServiceID: 10, Force: true})
	require.NoError(t, err)

	assert.Equal(t, 12, resp.Deleted)
	assert.Equal(t, int64(10), repo.deletedService)
	assert.True(t, repo.deletedForce)
}

func TestBulkDelete_InvalidInput(t *testing.T) {
	svc := newService(&fakeSlotRepo{})

	_, err := svc.BulkDelete(context.Background(), &models.BulkDeleteRequest{ServiceID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
