package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, settings Settings) (*draft, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.LocationID <= 0 {
		return nil, fmt.Errorf("%w: locationId must be positive", ErrInvalidInput)
	}

	if req.PackageID <= 0 {
		return nil, fmt.Errorf("%w: packageId must be positive", ErrInvalidInput)
	}

	timeSlot, err := settings.Slots.Parse(req.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	date, err := domain.ParseCalendarDay(req.Date, settings.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	bbqCount := domain.DefaultBBQCount
	if req.BBQCount != nil {
		bbqCount = *req.BBQCount
	}
	if bbqCount < 1 || bbqCount > domain.MaxBBQCountPerBooking {
		return nil, fmt.Errorf("%w: bbqCount must be between 1 and %d", ErrInvalidInput, domain.MaxBBQCountPerBooking)
	}

	if req.CustomerPhone != "" && len(strings.TrimSpace(req.CustomerPhone)) < domain.MinPhoneLength {
		return nil, fmt.Errorf("%w: customerPhone must be at least %d characters", ErrInvalidInput, domain.MinPhoneLength)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	d := &draft{
		date:     date,
		timeSlot: timeSlot,
		bbqCount: bbqCount,
	}

	// Взнос на уборку пляжа фиксируется только при согласии клиента
	if req.CleanupContribution {
		amount := settings.CleanupAmount
		if req.CleanupAmount != nil {
			if req.CleanupAmount.IsNegative() {
				return nil, fmt.Errorf("%w: cleanupAmount must not be negative", ErrInvalidInput)
			}
			amount = req.CleanupAmount.Round(2)
		}
		d.cleanupAmount = &amount
	}

	return d, nil
}
