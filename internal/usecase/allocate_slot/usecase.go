package allocate_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	bookingRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/booking"
	slotRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/slot"
)

// Request identifies the slot/booking pair to allocate.
type Request struct {
	SlotID    int64
	BookingID int64
}

// UseCase binds a booking to a slot, consuming one unit of slot capacity.
// The capacity increment and the booking link happen in one serializable
// transaction; the increment itself is a conditional update, so two racing
// allocations on a slot with one remaining spot produce exactly one success
// and one ErrCapacityExceeded.
type UseCase struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase creates the allocation use case.
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

// Execute allocates the booking onto the slot and returns the updated slot.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Slot, error) {
	uc.logger.Info("AllocateSlot: slot=%d, booking=%d", req.SlotID, req.BookingID)

	// 1. Validate input.
	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var result *domain.Slot

	// 2. Increment and link as one atomic unit.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. The booking must exist, be active and not yet allocated.
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			uc.logger.Warn("AllocateSlot: booking=%d lookup failed: %v", req.BookingID, err)
			return mapBookingErr(err)
		}
		if !booking.CanBeAllocated() {
			uc.logger.Warn("AllocateSlot: booking=%d is %s, refusing allocation", booking.ID, booking.Status)
			return ErrBookingInactive
		}
		if booking.IsAllocated() {
			uc.logger.Warn("AllocateSlot: booking=%d already allocated to slot=%d", booking.ID, *booking.SlotID)
			return ErrAlreadyAllocated
		}

		// 2.2. Consume capacity. The conditional update refuses full slots.
		updated, err := uc.slotRepo.IncrementBookings(txCtx, req.SlotID)
		if err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				uc.logger.Warn("AllocateSlot: slot=%d not found", req.SlotID)
				return ErrSlotNotFound
			case errors.Is(err, slotRepo.ErrCapacityExceeded):
				uc.logger.Warn("AllocateSlot: slot=%d is full", req.SlotID)
				return ErrCapacityExceeded
			default:
				uc.logger.Error("AllocateSlot: slot=%d increment failed: %v", req.SlotID, err)
				return fmt.Errorf("%w: failed to increment slot bookings: %v", ErrInternal, err)
			}
		}

		// 2.3. Link the booking to the slot.
		if err := uc.bookingRepo.LinkSlot(txCtx, req.BookingID, req.SlotID); err != nil {
			uc.logger.Error("AllocateSlot: failed to link booking=%d to slot=%d: %v", req.BookingID, req.SlotID, err)
			return fmt.Errorf("%w: failed to link booking to slot: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AllocateSlot: booking=%d allocated to slot=%d (%d/%d spots taken)",
		req.BookingID, result.ID, result.CurrentBookings, result.MaxBookings)
	return result, nil
}

func mapBookingErr(err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return ErrBookingNotFound
	}
	return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
}
