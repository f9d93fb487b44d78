package categorize_slot

import (
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/categorizer"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

type Categorizer interface {
	Categorize(date time.Time, start types.TimeString) categorizer.Result
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
