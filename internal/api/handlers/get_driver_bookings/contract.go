package get_driver_bookings

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
)

type DriverService interface {
	ListDeliveries(ctx context.Context) (*models.BookingListResponse, error)
	ListPickups(ctx context.Context) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
