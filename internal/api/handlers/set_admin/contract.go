package set_admin

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/identity/models"
)

type IdentityService interface {
	SetAdmin(ctx context.Context, userID int64, isAdmin bool) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
