package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/dbtx"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/psqlbuilder"
)

const table = "availability_windows"

var columns = []string{
	"id",
	"provider_id",
	"day_of_week",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"max_concurrent_bookings",
	"created_at",
	"updated_at",
}

// Repository reads provider availability windows. The windows are owned and
// mutated by provider-facing profile management; the scheduling core never
// writes them.
type Repository struct {
	db dbtx.Executor
}

// NewRepository creates an availability repository.
func NewRepository(db dbtx.Executor) *Repository {
	return &Repository{db: db}
}

// ListByProvider returns all availability windows of a provider ordered by
// day of week and start time.
func (r *Repository) ListByProvider(ctx context.Context, providerID int64) ([]*domain.AvailabilityWindow, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryWindows(ctx, executor, query, args, "ListByProvider")
}

// ListByProviderAndDay returns a provider's windows for one weekday.
func (r *Repository) ListByProviderAndDay(ctx context.Context, providerID int64, day time.Weekday) ([]*domain.AvailabilityWindow, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"day_of_week": int(day)}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProviderAndDay - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryWindows(ctx, executor, query, args, "ListByProviderAndDay")
}

func (r *Repository) queryWindows(ctx context.Context, executor dbtx.Executor, query string, args []interface{}, op string) ([]*domain.AvailabilityWindow, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan window: %v", ErrScanRow, op, err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	return windows, nil
}

func scanWindow(rows *sql.Rows) (*domain.AvailabilityWindow, error) {
	var (
		w                    domain.AvailabilityWindow
		day                  int
		createdAt, updatedAt sql.NullTime
	)
	err := rows.Scan(
		&w.ID,
		&w.ProviderID,
		&day,
		&w.StartTime,
		&w.EndTime,
		&w.SlotDurationMinutes,
		&w.MaxConcurrentBookings,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.DayOfWeek = time.Weekday(day)
	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time
	return &w, nil
}
