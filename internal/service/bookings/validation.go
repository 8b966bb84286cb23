package bookings

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	"github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
)

// toPatch разбирает строковые поля запроса в доменный патч
func (s *Service) toPatch(req *models.UpdateBookingRequest) (*domain.BookingPatch, error) {
	patch := &domain.BookingPatch{
		ActualStartTime: req.ActualStartTime,
		ActualEndTime:   req.ActualEndTime,
		Notes:           req.Notes,
	}

	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		patch.Status = &status
	}

	if req.PaymentStatus != nil {
		status, err := domain.ParsePaymentStatus(*req.PaymentStatus)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		patch.PaymentStatus = &status
	}

	if req.DeliveryStatus != nil {
		status, err := domain.ParseDeliveryStatus(*req.DeliveryStatus)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		patch.DeliveryStatus = &status
	}

	if req.CustomerName != nil {
		name := strings.TrimSpace(*req.CustomerName)
		if name == "" {
			return nil, fmt.Errorf("%w: customerName must not be empty", ErrInvalidInput)
		}
		patch.CustomerName = &name
	}

	if req.CustomerPhone != nil {
		phone := strings.TrimSpace(*req.CustomerPhone)
		if len(phone) < domain.MinPhoneLength {
			return nil, fmt.Errorf("%w: customerPhone must be at least %d characters", ErrInvalidInput, domain.MinPhoneLength)
		}
		patch.CustomerPhone = &phone
	}

	if req.TimeSlot != nil {
		slot, err := s.settings.Slots.Parse(*req.TimeSlot)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		patch.TimeSlot = &slot
	}

	if req.Date != nil {
		date, err := domain.ParseCalendarDay(*req.Date, s.settings.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, *req.Date)
		}
		patch.Date = &date
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	return patch, nil
}

// toFilter фильтр администратора; отмененные видны всегда
func (s *Service) toFilter(req *models.ListBookingsRequest) (domain.BookingFilter, error) {
	filter := domain.BookingFilter{IncludeCancelled: true}
	if req == nil {
		return filter, nil
	}

	if req.Date != nil {
		date, err := domain.ParseCalendarDay(*req.Date, s.settings.Location)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, *req.Date)
		}
		filter.Date = &date
	}

	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	if req.DeliveryStatus != nil {
		status, err := domain.ParseDeliveryStatus(*req.DeliveryStatus)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.DeliveryStatuses = []domain.DeliveryStatus{status}
	}

	return filter, nil
}
