package auto_cancel_expired

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	bookingRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/booking"
	slotRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/slot"
)

// JobName keys the advisory lock guarding the expiry singleton.
const JobName = "auto_cancel_bookings"

// UseCase is the booking expiry job: bookings still pending or confirmed
// after their date plus a grace period are moved to cancelled and their slot
// capacity is released. Each booking is processed in its own serializable
// transaction, so one failure never blocks the rest and a crash mid-pass
// leaves only fully-processed bookings behind.
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	locker       JobLocker
	params       Params
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the expiry use case.
func NewUseCase(
	bookings BookingRepository,
	slots SlotRepository,
	txManager TransactionManager,
	locker JobLocker,
	params Params,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookings,
		slotRepo:     slots,
		txManager:    txManager,
		locker:       locker,
		params:       params.orDefaults(),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs one pass. On ErrAlreadyRunning the returned response is nil.
// On ErrPartialFailure the response is still returned with per-booking
// errors.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	grace := req.GracePeriodDays
	if grace == 0 {
		grace = uc.params.GracePeriodDays
	}
	if grace < 0 {
		return nil, fmt.Errorf("%w: gracePeriodDays must not be negative, got %d", ErrInvalidInput, grace)
	}

	var resp *Response

	acquired, err := uc.locker.WithLock(ctx, JobName, func(ctx context.Context) error {
		var runErr error
		resp, runErr = uc.run(ctx, grace, req.DryRun)
		return runErr
	})
	if err != nil {
		return resp, err
	}
	if !acquired {
		uc.logger.Warn("AutoCancel: another pass holds the %q lock, skipping", JobName)
		return nil, ErrAlreadyRunning
	}
	if resp != nil && resp.Failed() {
		return resp, ErrPartialFailure
	}
	return resp, nil
}

func (uc *UseCase) run(ctx context.Context, grace int, dryRun bool) (*Response, error) {
	resp := &Response{
		RunID:  uuid.NewString(),
		DryRun: dryRun,
	}

	// A booking dated D expires at the start of D + grace + 1: with the
	// default one-day grace, a Monday booking survives all of Tuesday and is
	// cancelled on Wednesday.
	cutoff := domain.DateOnly(uc.timeProvider.Now()).AddDate(0, 0, -grace)

	expired, err := uc.bookingRepo.ListExpired(ctx, cutoff, domain.ExpirableStatuses)
	if err != nil {
		uc.logger.Error("AutoCancel: run=%s failed to list expired bookings: %v", resp.RunID, err)
		return resp, fmt.Errorf("%w: failed to list expired bookings: %v", ErrInternal, err)
	}

	uc.logger.Info("AutoCancel: run=%s found %d expired bookings (cutoff=%s, dryRun=%t)",
		resp.RunID, len(expired), cutoff.Format(domain.DateFormat), dryRun)

	for _, b := range expired {
		if dryRun {
			resp.CancelledCount++
			if b.IsAllocated() {
				resp.ReleasedCount++
			}
			continue
		}

		cancelled, released, err := uc.cancelOne(ctx, b.ID)
		if err != nil {
			resp.Errors = append(resp.Errors, BookingError{BookingID: b.ID, Message: err.Error()})
			uc.logger.Error("AutoCancel: run=%s failed to cancel booking=%d: %v", resp.RunID, b.ID, err)
			continue
		}
		if !cancelled {
			resp.SkippedCount++
			continue
		}
		resp.CancelledCount++
		if released {
			resp.ReleasedCount++
		}
	}

	uc.logger.Info("AutoCancel: run=%s finished (cancelled=%d, released=%d, skipped=%d, errors=%d)",
		resp.RunID, resp.CancelledCount, resp.ReleasedCount, resp.SkippedCount, len(resp.Errors))

	return resp, nil
}

// cancelOne cancels a single booking and releases its slot capacity inside
// one serializable transaction. The booking is re-read within the
// transaction: the listing is a snapshot, and a manual cancellation that
// committed in between has already released the capacity, so acting on the
// stale row would decrement the slot a second time. Returns whether the
// booking was cancelled and whether a capacity unit was freed.
func (uc *UseCase) cancelOne(ctx context.Context, bookingID int64) (bool, bool, error) {
	cancelled := false
	released := false

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		cancelled = false
		released = false

		b, err := uc.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("AutoCancel: booking=%d gone since listing, skipping", bookingID)
				return nil
			}
			return fmt.Errorf("get booking: %w", err)
		}

		// Still expirable? A status change since the listing means someone
		// else handled the booking, link and capacity included.
		if !b.CanBeCancelled() {
			uc.logger.Info("AutoCancel: booking=%d is %s since listing, skipping", b.ID, b.Status)
			return nil
		}

		if err := uc.bookingRepo.Cancel(ctx, b.ID, domain.AutoCancelReason); err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}
		cancelled = true

		// The decrement only ever runs for a booking still holding the link,
		// read inside this transaction.
		if b.SlotID == nil {
			return nil
		}

		if err := uc.bookingRepo.UnlinkSlot(ctx, b.ID); err != nil {
			return fmt.Errorf("unlink slot: %w", err)
		}

		if _, err := uc.slotRepo.DecrementBookings(ctx, *b.SlotID); err != nil {
			// A slot already at zero or deleted by cleanup means there is no
			// capacity left to free; the cancellation itself still stands.
			if errors.Is(err, slotRepo.ErrAlreadyReleased) || errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("AutoCancel: slot=%d for booking=%d had no capacity to release: %v", *b.SlotID, b.ID, err)
				return nil
			}
			return fmt.Errorf("release slot capacity: %w", err)
		}
		released = true
		return nil
	})
	if err != nil {
		return false, false, err
	}
	return cancelled, released, nil
}
