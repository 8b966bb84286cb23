package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// Request модели

// ListBookingsRequest фильтр списка бронирований для администратора
type ListBookingsRequest struct {
	Date           *string // "YYYY-MM-DD"
	Status         *string
	DeliveryStatus *string
}

// UpdateBookingRequest частичное обновление; nil - поле не меняется
type UpdateBookingRequest struct {
	Status          *string    `json:"status,omitempty"`
	PaymentStatus   *string    `json:"paymentStatus,omitempty"`
	DeliveryStatus  *string    `json:"deliveryStatus,omitempty"`
	CustomerName    *string    `json:"customerName,omitempty"`
	CustomerPhone   *string    `json:"customerPhone,omitempty"`
	TimeSlot        *string    `json:"timeSlot,omitempty"`
	Date            *string    `json:"date,omitempty"`
	ActualStartTime *time.Time `json:"actualStartTime,omitempty"`
	ActualEndTime   *time.Time `json:"actualEndTime,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// ExportRequest период выгрузки, обе границы включительно
type ExportRequest struct {
	From *string
	To   *string
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"userId"`
	LocationID int64 `json:"locationId"`
	PackageID  int64 `json:"packageId"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`

	Date     string `json:"date"`     // "2025-06-01"
	TimeSlot string `json:"timeSlot"` // "12:00-15:00"

	Status         string `json:"status"`
	PaymentStatus  string `json:"paymentStatus"`
	DeliveryStatus string `json:"deliveryStatus"`

	BBQCount int `json:"bbqCount"`

	ActualStartTime *time.Time `json:"actualStartTime"`
	ActualEndTime   *time.Time `json:"actualEndTime"`

	CleanupContribution bool             `json:"cleanupContribution"`
	CleanupAmount       *decimal.Decimal `json:"cleanupAmount"`

	AssignedBBQID   *int64 `json:"assignedBbqId"`
	AffiliateLinkID *int64 `json:"affiliateLinkId"`
	CommissionPaid  bool   `json:"commissionPaid"`

	Notes *string `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                  b.ID,
		UserID:              b.UserID,
		LocationID:          b.LocationID,
		PackageID:           b.PackageID,
		CustomerName:        b.CustomerName,
		CustomerPhone:       b.CustomerPhone,
		Date:                b.Date.Format(domain.DateFormat),
		TimeSlot:            b.TimeSlot.String(),
		Status:              string(b.Status),
		PaymentStatus:       string(b.PaymentStatus),
		DeliveryStatus:      string(b.DeliveryStatus),
		BBQCount:            b.BBQCount,
		ActualStartTime:     b.ActualStartTime,
		ActualEndTime:       b.ActualEndTime,
		CleanupContribution: b.CleanupContribution,
		CleanupAmount:       b.CleanupAmount,
		AssignedBBQID:       b.AssignedBBQID,
		AffiliateLinkID:     b.AffiliateLinkID,
		CommissionPaid:      b.CommissionPaid,
		Notes:               b.Notes,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
