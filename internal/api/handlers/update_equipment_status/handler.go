package update_equipment_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/equipment"
)

const (
	msgInvalidEquipmentID = "некорректный ID оборудования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус оборудования"
	msgInvalidTransition  = "недопустимая смена статуса оборудования"
	msgNotFound           = "оборудование не найдено"
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

// Handle PATCH /api/admin/bbq-equipment/{equipmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	unitID, err := handlers.PathInt64(r, "equipmentId")
	if err != nil {
		h.logger.Warn("PATCH /admin/bbq-equipment/{id} - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bbq-equipment/{id} - Invalid request body: equipment_id=%d, error=%v", unitID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	unit, err := h.service.UpdateStatus(r.Context(), unitID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, equipment.ErrEquipmentNotFound):
			h.logger.Warn("PATCH /admin/bbq-equipment/{id} - Equipment not found: equipment_id=%d", unitID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, equipment.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bbq-equipment/{id} - Invalid status: equipment_id=%d, status=%s", unitID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, equipment.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/bbq-equipment/{id} - Invalid transition: equipment_id=%d, error=%v", unitID, err)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /admin/bbq-equipment/{id} - Failed to update status: equipment_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bbq-equipment/{id} - Status updated: equipment_id=%d, status=%s", unitID, unit.Status)
	handlers.RespondJSON(w, http.StatusOK, unit)
}
