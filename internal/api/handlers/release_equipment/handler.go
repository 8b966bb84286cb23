package release_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/equipment"
)

const (
	msgInvalidEquipmentID = "некорректный ID оборудования"
	msgNotFound           = "оборудование не найдено"
	msgCannotRelease      = "оборудование не выдано клиенту"
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

// Handle POST /api/admin/bbq-equipment/{equipmentId}/release
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	unitID, err := handlers.PathInt64(r, "equipmentId")
	if err != nil {
		h.logger.Warn("POST /admin/bbq-equipment/{id}/release - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	unit, err := h.service.Release(r.Context(), unitID)
	if err != nil {
		switch {
		case errors.Is(err, equipment.ErrEquipmentNotFound):
			h.logger.Warn("POST /admin/bbq-equipment/{id}/release - Equipment not found: equipment_id=%d", unitID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, equipment.ErrCannotRelease):
			h.logger.Warn("POST /admin/bbq-equipment/{id}/release - Unit not in use: equipment_id=%d", unitID)
			handlers.RespondConflict(w, msgCannotRelease)

		default:
			h.logger.Error("POST /admin/bbq-equipment/{id}/release - Failed to release: equipment_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bbq-equipment/{id}/release - Equipment released: equipment_id=%d", unitID)
	handlers.RespondJSON(w, http.StatusOK, unit)
}
