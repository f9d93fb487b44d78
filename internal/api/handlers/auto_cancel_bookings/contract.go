package auto_cancel_bookings

import (
	"context"

	autoCancel "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/auto_cancel_expired"
)

type AutoCancelUseCase interface {
	Execute(ctx context.Context, req *autoCancel.Request) (*autoCancel.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
