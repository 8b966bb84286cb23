package advance_delivery

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/bookings"
	"github.com/m04kA/BBQ-RentalService/internal/service/driver"
	"github.com/m04kA/BBQ-RentalService/pkg/txmanager"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTransition  = "недопустимая смена статуса доставки"
	msgNotFound           = "бронирование не найдено"
	msgConcurrentUpdate   = "бронирование изменилось, повторите запрос"
)

type Handler struct {
	service DriverService
	logger  Logger
}

func NewHandler(service DriverService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/driver/bookings/{bookingId}/delivery
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /driver/bookings/{id}/delivery - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AdvanceDeliveryRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /driver/bookings/{id}/delivery - Invalid request body: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Advance(r.Context(), bookingID, req.DeliveryStatus)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /driver/bookings/{id}/delivery - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition),
			errors.Is(err, bookings.ErrInvalidInput),
			errors.Is(err, driver.ErrInvalidInput):
			h.logger.Warn("PATCH /driver/bookings/{id}/delivery - Rejected: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, txmanager.ErrSerialization):
			h.logger.Warn("PATCH /driver/bookings/{id}/delivery - Concurrent update: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("PATCH /driver/bookings/{id}/delivery - Failed to advance delivery: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /driver/bookings/{id}/delivery - Delivery advanced: booking_id=%d, delivery=%s",
		bookingID, booking.DeliveryStatus)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
