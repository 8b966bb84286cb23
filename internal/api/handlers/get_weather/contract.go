package get_weather

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/integrations/weather"
)

type WeatherClient interface {
	GetCurrent(ctx context.Context, location string) (*weather.Current, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
