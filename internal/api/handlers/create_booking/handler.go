package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/api/middleware"
	createBooking "github.com/m04kA/BBQ-RentalService/internal/usecase/create_booking"
	"github.com/m04kA/BBQ-RentalService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "требуется сессия пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidDate        = "некорректная дата бронирования, ожидается YYYY-MM-DD"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgSlotNotAvailable   = "в выбранном слоте нет свободного оборудования"
	msgUserNotFound       = "пользователь не найден"
	msgLocationNotFound   = "пляж не найден"
	msgPackageNotFound    = "пакет не найден"
	msgLinkNotFound       = "реферальная ссылка не найдена"
	msgConcurrentUpdate   = "слот изменился, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user session")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, date=%s, slot=%s", userID, req.Date, req.TimeSlot)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, txmanager.ErrSerialization):
			h.logger.Warn("POST /bookings - Concurrent booking: user_id=%d, date=%s, slot=%s", userID, req.Date, req.TimeSlot)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: user_id=%d, slot=%s", userID, req.TimeSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrLocationNotFound):
			h.logger.Warn("POST /bookings - Location not found: location_id=%d", req.LocationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, createBooking.ErrPackageNotFound):
			h.logger.Warn("POST /bookings - Package not found: package_id=%d", req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, createBooking.ErrAffiliateLinkNotFound):
			h.logger.Warn("POST /bookings - Affiliate link not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgLinkNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, date=%s, slot=%s",
		result.Booking.ID, userID, req.Date, req.TimeSlot)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
