package assign_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/equipment"
)

const (
	msgInvalidEquipmentID   = "некорректный ID оборудования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgEquipmentNotFound    = "оборудование не найдено"
	msgBookingNotFound      = "бронирование не найдено"
	msgUnitNotAvailable     = "оборудование занято"
	msgAlreadyAssigned      = "за бронированием уже закреплено оборудование"
	msgBookingNotAssignable = "бронирование отменено или завершено"
)

type Handler struct {
	service EquipmentService
	logger  Logger
}

func NewHandler(service EquipmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/admin/bbq-equipment/{equipmentId}/assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	unitID, err := handlers.PathInt64(r, "equipmentId")
	if err != nil {
		h.logger.Warn("POST /admin/bbq-equipment/{id}/assign - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	var req AssignRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /admin/bbq-equipment/{id}/assign - Invalid request body: equipment_id=%d, error=%v", unitID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	unit, err := h.service.Assign(r.Context(), unitID, req.BookingID)
	if err != nil {
		switch {
		case errors.Is(err, equipment.ErrEquipmentNotFound):
			h.logger.Warn("POST /admin/bbq-equipment/{id}/assign - Equipment not found: equipment_id=%d", unitID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, equipment.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bbq-equipment/{id}/assign - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, equipment.ErrUnitNotAvailable):
			h.logger.Warn("POST /admin/bbq-equipment/{id}/assign - Unit not available: equipment_id=%d", unitID)
			handlers.RespondConflict(w, msgUnitNotAvailable)

		case errors.Is(err, equipment.ErrBookingAlreadyAssigned):
			h.logger.Warn("POST /admin/bbq-equipment/{id}/assign - Booking already assigned: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgAlreadyAssigned)

		case errors.Is(err, equipment.ErrBookingNotAssignable):
			h.logger.Warn("POST /admin/bbq-equipment/{id}/assign - Booking not assignable: booking_id=%d", req.BookingID)
			handlers.RespondBadRequest(w, msgBookingNotAssignable)

		default:
			h.logger.Error("POST /admin/bbq-equipment/{id}/assign - Failed to assign: equipment_id=%d, booking_id=%d, error=%v",
				unitID, req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bbq-equipment/{id}/assign - Equipment assigned: equipment_id=%d, booking_id=%d",
		unitID, req.BookingID)
	handlers.RespondJSON(w, http.StatusOK, unit)
}
