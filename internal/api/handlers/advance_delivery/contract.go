package advance_delivery

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
)

type DriverService interface {
	Advance(ctx context.Context, bookingID int64, deliveryStatus string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
