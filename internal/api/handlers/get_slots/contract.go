package get_slots

import (
	"context"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/slots/models"
)

type SlotsService interface {
	GetByID(ctx context.Context, id int64) (*models.SlotResponse, error)
	List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
