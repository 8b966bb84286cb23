package create_booking

import (
	"github.com/shopspring/decimal"

	bookingModels "github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
	createBooking "github.com/m04kA/BBQ-RentalService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	LocationID          int64            `json:"locationId" validate:"required,gt=0"`
	PackageID           int64            `json:"packageId" validate:"required,gt=0"`
	Date                string           `json:"date" validate:"required"`     // "2025-06-01" или ISO 8601
	TimeSlot            string           `json:"timeSlot" validate:"required"` // "12:00-15:00"
	CustomerName        string           `json:"customerName" validate:"omitempty,min=2,max=100"`
	CustomerPhone       string           `json:"customerPhone" validate:"omitempty,min=8,max=20"`
	BBQCount            *int             `json:"bbqCount,omitempty" validate:"omitempty,gte=1"`
	CleanupContribution bool             `json:"cleanupContribution"`
	CleanupAmount       *decimal.Decimal `json:"cleanupAmount,omitempty"`
	AffiliateLinkID     *int64           `json:"affiliateLinkId,omitempty" validate:"omitempty,gt=0"`
	Notes               *string          `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// CreateBookingResponse созданное бронирование
type CreateBookingResponse struct {
	*bookingModels.BookingResponse
	CommissionID *int64 `json:"commissionId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:              userID,
		LocationID:          r.LocationID,
		PackageID:           r.PackageID,
		Date:                r.Date,
		TimeSlot:            r.TimeSlot,
		CustomerName:        r.CustomerName,
		CustomerPhone:       r.CustomerPhone,
		BBQCount:            r.BBQCount,
		CleanupContribution: r.CleanupContribution,
		CleanupAmount:       r.CleanupAmount,
		AffiliateLinkID:     r.AffiliateLinkID,
		Notes:               r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	out := &CreateBookingResponse{
		BookingResponse: bookingModels.FromDomainBooking(resp.Booking),
	}
	if resp.Commission != nil {
		id := resp.Commission.ID
		out.CommissionID = &id
	}
	return out
}
