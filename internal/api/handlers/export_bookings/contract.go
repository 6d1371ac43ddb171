package export_bookings

import (
	"context"

	"github.com/m04kA/SMC-SlotReservation/internal/service/bookings/models"
)

type BookingService interface {
	Query(ctx context.Context, req *models.QueryRequest) (*models.BookingsPageResponse, error)
}

// Metrics счётчик выгрузок, может быть nil
type Metrics interface {
	IncExport(format string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
