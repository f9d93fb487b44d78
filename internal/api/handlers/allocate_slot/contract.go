package allocate_slot

import (
	"context"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	allocateSlot "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/allocate_slot"
)

type AllocateSlotUseCase interface {
	Execute(ctx context.Context, req *allocateSlot.Request) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
