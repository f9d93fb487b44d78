package run_maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/integrations/catalogservice"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/generate_slots"
)

type fakeSlotRepo struct {
	expired     int // expired unbooked slots available for deletion
	deleteCalls []int
	deleteErr   error
}

func (r *fakeSlotRepo) DeleteExpiredUnbooked(_ context.Context, _ time.Time, limit int) (int, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	r.deleteCalls = append(r.deleteCalls, limit)
	n := r.expired
	if n > limit {
		n = limit
	}
	r.expired -= n
	return n, nil
}

func (r *fakeSlotRepo) CountExpiredUnbooked(context.Context, time.Time) (int, error) {
	return r.expired, nil
}

type fakeGenerator struct {
	requests []*generate_slots.Request
	failFor  map[int64]error // serviceID -> error
	created  int
}

func (g *fakeGenerator) Execute(_ context.Context, req *generate_slots.Request) (*generate_slots.Response, error) {
	g.requests = append(g.requests, req)
	if err := g.failFor[req.ServiceID]; err != nil {
		return nil, err
	}
	resp := &generate_slots.Response{Skipped: 1}
	for i := 0; i < g.created; i++ {
		resp.Created = append(resp.Created, &domain.Slot{ServiceID: req.ServiceID})
	}
	return resp, nil
}

type fakeCatalog struct {
	services []*catalogservice.Service
	err      error
}

func (c *fakeCatalog) ListActiveServices(context.Context) ([]*catalogservice.Service, error) {
	return c.services, c.err
}

type fakeLocker struct {
	held bool // simulates another pass holding the lock
}

func (l *fakeLocker) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) (bool, error) {
	if l.held {
		return false, nil
	}
	return true, fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func services(ids ...int64) []*catalogservice.Service {
	out := make([]*catalogservice.Service, 0, len(ids))
	for _, id := range ids {
		out = append(out, &catalogservice.Service{ID: id, ProviderID: id * 10, IsActive: true})
	}
	return out
}

func newMaintenance(slots *fakeSlotRepo, gen *fakeGenerator, catalog *fakeCatalog, locker *fakeLocker, params Params) *UseCase {
	uc := NewUseCase(slots, gen, catalog, locker, params, nopLogger{})
	uc.timeProvider = &fixedClock{now: time.Date(2026, 3, 16, 2, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_FullPass(t *testing.T) {
	slots := &fakeSlotRepo{expired: 250}
	gen := &fakeGenerator{created: 3}
	catalog := &fakeCatalog{services: services(1, 2)}
	uc := newMaintenance(slots, gen, catalog, &fakeLocker{}, Params{BatchSize: 100})

	report, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 250, report.Deleted)
	assert.Equal(t, 6, report.Created)
	assert.Equal(t, 2, report.ServicesProcessed)
	assert.Empty(t, report.Errors)
	assert.False(t, report.Partial)

	// Cleanup ran in batches of 100 until a short batch.
	assert.Equal(t, []int{100, 100, 100}, slots.deleteCalls)

	// Each service generated over the default rolling window.
	require.Len(t, gen.requests, 2)
	assert.Equal(t, int64(10), gen.requests[0].ProviderID)
	window := gen.requests[0].EndDate.Sub(gen.requests[0].StartDate)
	assert.Equal(t, domain.DefaultDaysAhead, int(window.Hours()/24))
}

func TestExecute_LockHeldIsNoOp(t *testing.T) {
	slots := &fakeSlotRepo{expired: 10}
	gen := &fakeGenerator{}
	uc := newMaintenance(slots, gen, &fakeCatalog{services: services(1)}, &fakeLocker{held: true}, Params{})

	report, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Nil(t, report)
	assert.Empty(t, gen.requests)
	assert.Equal(t, 10, slots.expired)
}

func TestExecute_ServiceFailureIsIsolated(t *testing.T) {
	slots := &fakeSlotRepo{}
	gen := &fakeGenerator{created: 2, failFor: map[int64]error{2: errors.New("availability read failed")}}
	catalog := &fakeCatalog{services: services(1, 2, 3)}
	uc := newMaintenance(slots, gen, catalog, &fakeLocker{}, Params{})

	report, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrPartialFailure)
	require.NotNil(t, report)

	// Services 1 and 3 still ran.
	assert.Equal(t, 2, report.ServicesProcessed)
	assert.Equal(t, 4, report.Created)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, int64(2), report.Errors[0].ServiceID)
	assert.Len(t, gen.requests, 3)
}

func TestExecute_DryRunCountsWithoutDeleting(t *testing.T) {
	slots := &fakeSlotRepo{expired: 42}
	gen := &fakeGenerator{created: 1}
	uc := newMaintenance(slots, gen, &fakeCatalog{services: services(1)}, &fakeLocker{}, Params{})

	report, err := uc.Execute(context.Background(), &Request{DryRun: true})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 42, report.Deleted)
	assert.Empty(t, slots.deleteCalls)
	assert.Equal(t, 42, slots.expired)

	// Dry-run propagates to generation.
	require.Len(t, gen.requests, 1)
	assert.True(t, gen.requests[0].DryRun)
}

func TestExecute_TimeBudgetMarksPartial(t *testing.T) {
	slots := &fakeSlotRepo{}
	gen := &fakeGenerator{created: 1}
	catalog := &fakeCatalog{services: services(1, 2, 3)}
	uc := newMaintenance(slots, gen, catalog, &fakeLocker{}, Params{TimeBudget: time.Minute})

	// The clock jumps past the budget after every service.
	clock := &steppingClock{now: time.Date(2026, 3, 16, 2, 0, 0, 0, time.UTC), step: 2 * time.Minute}
	uc.timeProvider = clock

	report, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.True(t, report.Partial)
	assert.Less(t, report.ServicesProcessed, 3)
}

type steppingClock struct {
	now  time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	current := c.now
	c.now = c.now.Add(c.step)
	return current
}

func TestExecute_CatalogFailureIsFatal(t *testing.T) {
	uc := newMaintenance(&fakeSlotRepo{}, &fakeGenerator{}, &fakeCatalog{err: errors.New("catalog down")}, &fakeLocker{}, Params{})

	report, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInternal)
	require.NotNil(t, report)
	assert.Equal(t, 0, report.ServicesProcessed)
}

func TestExecute_InvalidDaysAhead(t *testing.T) {
	uc := newMaintenance(&fakeSlotRepo{}, &fakeGenerator{}, &fakeCatalog{}, &fakeLocker{}, Params{})

	_, err := uc.Execute(context.Background(), &Request{DaysAhead: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{DaysAhead: domain.MaxDaysAhead + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
