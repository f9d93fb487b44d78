package slot

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

const table = "booking_slots"

var columns = []string{
	"id",
	"service_id",
	"provider_id",
	"date",
	"start_time",
	"end_time",
	"category",
	"is_rush",
	"rush_fee_percentage",
	"provider_note",
	"max_bookings",
	"current_bookings",
	"created_at",
	"updated_at",
}

// Repository persists booking slots.
//
// Capacity mutation goes exclusively through IncrementBookings and
// DecrementBookings, which are conditional single-statement updates: the
// WHERE clause asserts the precondition, so a lost update cannot happen
// regardless of how many callers race.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a slot repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a single slot. A collision on the natural key returns
// ErrDuplicateSlot and leaves the existing row untouched.
func (r *Repository) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := insertBuilder([]*domain.Slot{s}).
		Suffix("ON CONFLICT (service_id, date, start_time, end_time) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrDuplicateSlot
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return s, nil
}

// CreateBatch inserts a batch of slots in one statement, ignoring rows whose
// natural key already exists, and returns the rows actually inserted. A
// racing writer losing the unique-constraint race shows up as a missing row
// in the result rather than an error.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	if len(slots) == 0 {
		return nil, nil
	}
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := insertBuilder(slots).
		Suffix("ON CONFLICT (service_id, date, start_time, end_time) DO NOTHING RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

func insertBuilder(slots []*domain.Slot) squirrel.InsertBuilder {
	builder := psqlbuilder.Insert(table).Columns(
		"service_id",
		"provider_id",
		"date",
		"start_time",
		"end_time",
		"category",
		"is_rush",
		"rush_fee_percentage",
		"provider_note",
		"max_bookings",
		"current_bookings",
	)
	for _, s := range slots {
		builder = builder.Values(
			s.ServiceID,
			s.ProviderID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Category,
			s.IsRush,
			s.RushFeePercentage,
			s.ProviderNote,
			s.MaxBookings,
			s.CurrentBookings,
		)
	}
	return builder
}

// GetByID fetches a slot by primary key.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}
	return s, nil
}

// ListByServiceAndDateRange returns the slots of a service ordered by date
// and start time.
func (r *Repository) ListByServiceAndDateRange(ctx context.Context, serviceID int64, from, to time.Time) ([]*domain.Slot, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.GtOrEq{"date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"date": domain.DateOnly(to)}).
		OrderBy("date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByServiceAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByServiceAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ExistingKeys returns the natural keys of the service's slots within the
// range. The generator preloads this set so re-runs skip existing slots
// without one query per candidate.
func (r *Repository) ExistingKeys(ctx context.Context, serviceID int64, from, to time.Time) (map[domain.SlotKey]struct{}, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_id", "date", "start_time", "end_time").
		From(table).
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.GtOrEq{"date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"date": domain.DateOnly(to)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ExistingKeys - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExistingKeys - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	keys := make(map[domain.SlotKey]struct{})
	for rows.Next() {
		var (
			key  domain.SlotKey
			date time.Time
		)
		if err := rows.Scan(&key.ServiceID, &date, &key.StartTime, &key.EndTime); err != nil {
			return nil, fmt.Errorf("%w: ExistingKeys - scan key: %v", ErrScanRow, err)
		}
		key.Date = date.Format(domain.DateFormat)
		keys[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ExistingKeys - rows error: %v", ErrScanRow, err)
	}
	return keys, nil
}

// CountByService returns the total number of slots stored for a service.
// Used to enforce the per-service generation cap.
func (r *Repository) CountByService(ctx context.Context, serviceID int64) (int, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByService - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByService - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// IncrementBookings atomically consumes one unit of slot capacity. The
// precondition current_bookings < max_bookings is part of the UPDATE itself;
// zero affected rows on an existing slot means the slot was full.
func (r *Repository) IncrementBookings(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("current_bookings", squirrel.Expr("current_bookings + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("current_bookings < max_bookings")).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: IncrementBookings - build update query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		// Either the slot is gone or it is full; distinguish for the caller.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrCapacityExceeded
	}
	if err != nil {
		return nil, fmt.Errorf("%w: IncrementBookings - scan slot: %v", ErrScanRow, err)
	}
	return s, nil
}

// DecrementBookings atomically returns one unit of slot capacity, flooring
// at zero. Zero affected rows on an existing slot means the counter was
// already zero; callers treat that as an idempotent no-op.
func (r *Repository) DecrementBookings(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("current_bookings", squirrel.Expr("current_bookings - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("current_bookings > 0")).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DecrementBookings - build update query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrAlreadyReleased
	}
	if err != nil {
		return nil, fmt.Errorf("%w: DecrementBookings - scan slot: %v", ErrScanRow, err)
	}
	return s, nil
}

// DeleteExpiredUnbooked removes up to limit slots dated strictly before the
// cutoff that carry no bookings. Slots with bookings are preserved
// regardless of age. Returns the number of deleted rows.
func (r *Repository) DeleteExpiredUnbooked(ctx context.Context, before time.Time, limit int) (int, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	// squirrel has no DELETE ... LIMIT for Postgres; go through a subselect
	// so cleanup can run in bounded batches.
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE id IN (SELECT id FROM %s WHERE date < $1 AND current_bookings = 0 ORDER BY date ASC LIMIT $2)",
		table, table,
	)

	result, err := executor.ExecContext(ctx, query, domain.DateOnly(before), limit)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredUnbooked - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredUnbooked - rows affected: %v", ErrExecQuery, err)
	}
	return int(deleted), nil
}

// CountExpiredUnbooked counts the rows DeleteExpiredUnbooked would remove.
// Used by dry runs.
func (r *Repository) CountExpiredUnbooked(ctx context.Context, before time.Time) (int, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Lt{"date": domain.DateOnly(before)}).
		Where(squirrel.Eq{"current_bookings": 0}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountExpiredUnbooked - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountExpiredUnbooked - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// DeleteByService removes a service's slots. Without force only unbooked
// slots are deleted; booked slots are always left in place otherwise.
func (r *Repository) DeleteByService(ctx context.Context, serviceID int64, force bool) (int, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Delete(table).Where(squirrel.Eq{"service_id": serviceID})
	if !force {
		builder = builder.Where(squirrel.Eq{"current_bookings": 0})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByService - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByService - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByService - rows affected: %v", ErrExecQuery, err)
	}
	return int(deleted), nil
}

// Recategorize rewrites the category fields of a slot, but only while no
// bookings are attached: a booked slot keeps the category it was sold under.
// Returns ErrHasBookings when the slot exists but is booked.
func (r *Repository) Recategorize(ctx context.Context, id int64, category domain.SlotCategory, isRush bool, feePercentage int, note string) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("category", category).
		Set("is_rush", isRush).
		Set("rush_fee_percentage", feePercentage).
		Set("provider_note", note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"current_bookings": 0}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Recategorize - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Recategorize - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Recategorize - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrHasBookings
	}
	return nil
}

func columnList() string {
	list := columns[0]
	for _, c := range columns[1:] {
		list += ", " + c
	}
	return list
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		s                    domain.Slot
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&s.ID,
		&s.ServiceID,
		&s.ProviderID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Category,
		&s.IsRush,
		&s.RushFeePercentage,
		&s.ProviderNote,
		&s.MaxBookings,
		&s.CurrentBookings,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}
	return slots, nil
}
