package get_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/equipment"
)

const (
	msgInvalidEquipmentID = "некорректный ID оборудования"
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

// List GET /api/admin/bbq-equipment
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/bbq-equipment - Failed to list equipment: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bbq-equipment - Equipment retrieved: count=%d", len(result.Equipment))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Available GET /api/admin/bbq-equipment/available
func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAvailable(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/bbq-equipment/available - Failed to list equipment: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bbq-equipment/available - Equipment retrieved: count=%d", len(result.Equipment))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/admin/bbq-equipment/{equipmentId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	unitID, err := handlers.PathInt64(r, "equipmentId")
	if err != nil {
		h.logger.Warn("GET /admin/bbq-equipment/{id} - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	unit, err := h.service.Get(r.Context(), unitID)
	if err != nil {
		switch {
		case errors.Is(err, equipment.ErrEquipmentNotFound):
			h.logger.Warn("GET /admin/bbq-equipment/{id} - Equipment not found: equipment_id=%d", unitID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/bbq-equipment/{id} - Failed to get equipment: equipment_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bbq-equipment/{id} - Equipment retrieved: equipment_id=%d", unitID)
	handlers.RespondJSON(w, http.StatusOK, unit)
}
