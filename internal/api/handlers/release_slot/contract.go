package release_slot

import (
	"context"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	releaseSlot "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/release_slot"
)

type ReleaseSlotUseCase interface {
	Execute(ctx context.Context, req *releaseSlot.Request) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
