package booking

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

const table = "bookings"

var columns = []string{
	"id",
	"customer_id",
	"service_id",
	"provider_id",
	"booking_slot_id",
	"booking_date",
	"booking_time",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository persists bookings. The scheduling core only touches the slot
// link, the status and the cancellation fields; the rest of the booking row
// is owned by the booking-facing collaborators.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a booking by primary key.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

// LinkSlot attaches a booking to a slot.
func (r *Repository) LinkSlot(ctx context.Context, bookingID, slotID int64) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("booking_slot_id", slotID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LinkSlot - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "LinkSlot")
}

// UnlinkSlot detaches a booking from its slot. Already-unlinked bookings are
// a no-op so release stays idempotent.
func (r *Repository) UnlinkSlot(ctx context.Context, bookingID int64) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("booking_slot_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UnlinkSlot - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UnlinkSlot")
}

// Cancel moves a booking to cancelled with the supplied reason.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// ListExpired returns bookings dated strictly before the cutoff that are
// still in one of the given statuses. Input to the auto-cancel job.
func (r *Repository) ListExpired(ctx context.Context, before time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Lt{"booking_date": domain.DateOnly(before)}).
		Where(squirrel.Eq{"status": statusStrings}).
		OrderBy("booking_date ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListExpired - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExpired - rows error: %v", ErrScanRow, err)
	}
	return bookings, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                    domain.Booking
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&b.ID,
		&b.CustomerID,
		&b.ServiceID,
		&b.ProviderID,
		&b.SlotID,
		&b.BookingDate,
		&b.BookingTime,
		&b.Status,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}
