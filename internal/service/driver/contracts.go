package driver

import (
	"context"
	"time"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	bookingModels "github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
)

// BookingRepository выборки для водителя
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// BookingUpdater обновление бронирования с проверкой переходов и отметками времени
type BookingUpdater interface {
	Update(ctx context.Context, id int64, req *bookingModels.UpdateBookingRequest) (*bookingModels.BookingResponse, error)
}

// TokenIssuer выпуск водительской сессии
type TokenIssuer interface {
	IssueDriver() (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
