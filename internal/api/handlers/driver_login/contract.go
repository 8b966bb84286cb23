package driver_login

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/driver/models"
)

type DriverService interface {
	Login(ctx context.Context, code string) (*models.LoginResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
