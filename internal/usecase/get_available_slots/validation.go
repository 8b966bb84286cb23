package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// parseRequest проверяет запрос и возвращает календарный день
func parseRequest(req *Request, loc *time.Location) (time.Time, error) {
	if req == nil || strings.TrimSpace(req.Date) == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := domain.ParseCalendarDay(req.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}

	return date, nil
}
