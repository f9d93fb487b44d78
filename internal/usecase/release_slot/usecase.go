package release_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	bookingRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/booking"
	slotRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/slot"
)

// Request identifies the slot/booking pair to release.
type Request struct {
	SlotID    int64
	BookingID int64
}

// UseCase returns a booking's capacity unit to its slot. Release is
// idempotent: the decrement only happens while the booking is still linked
// to the slot, so a second release (manual cancel racing the expiry job, a
// retried request) is a no-op that leaves the count unchanged.
type UseCase struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase creates the release use case.
func NewUseCase(
	slots SlotRepository,
	bookings BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:    slots,
		bookingRepo: bookings,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute releases the booking from the slot and returns the slot's current
// state (updated or unchanged for a no-op).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Slot, error) {
	uc.logger.Info("ReleaseSlot: slot=%d, booking=%d", req.SlotID, req.BookingID)

	// 1. Validate input.
	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var result *domain.Slot

	// 2. Unlink and decrement as one atomic unit.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.1. Already released (or never allocated to this slot): no-op.
		// This is the idempotence guard - the decrement below only ever runs
		// for a booking still holding the link.
		if booking.SlotID == nil || *booking.SlotID != req.SlotID {
			uc.logger.Info("ReleaseSlot: booking=%d not linked to slot=%d, nothing to release",
				req.BookingID, req.SlotID)
			current, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
			if err != nil {
				if errors.Is(err, slotRepo.ErrSlotNotFound) {
					return ErrSlotNotFound
				}
				return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
			}
			result = current
			return nil
		}

		// 2.2. Unlink first so a replay of this release sees no link.
		if err := uc.bookingRepo.UnlinkSlot(txCtx, req.BookingID); err != nil {
			return fmt.Errorf("%w: failed to unlink booking: %v", ErrInternal, err)
		}

		// 2.3. Return the capacity unit, flooring at zero.
		updated, err := uc.slotRepo.DecrementBookings(txCtx, req.SlotID)
		if err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				return ErrSlotNotFound
			case errors.Is(err, slotRepo.ErrAlreadyReleased):
				// Counter already at zero. Keep the unlink and report the
				// current state instead of failing.
				uc.logger.Warn("ReleaseSlot: slot=%d counter already zero for booking=%d", req.SlotID, req.BookingID)
				current, getErr := uc.slotRepo.GetByID(txCtx, req.SlotID)
				if getErr != nil {
					return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, getErr)
				}
				result = current
				return nil
			default:
				return fmt.Errorf("%w: failed to decrement slot bookings: %v", ErrInternal, err)
			}
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReleaseSlot: booking=%d released from slot=%d (%d/%d spots taken)",
		req.BookingID, result.ID, result.CurrentBookings, result.MaxBookings)
	return result, nil
}
