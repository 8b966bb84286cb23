package get_admin_bookings

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
)

type BookingService interface {
	ListAll(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
