package create_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/equipment"
	"github.com/m04kA/BBQ-RentalService/internal/service/equipment/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные оборудования"
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

// Handle POST /api/admin/bbq-equipment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateEquipmentRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /admin/bbq-equipment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	unit, err := h.service.Create(r.Context(), &models.CreateEquipmentRequest{Name: req.Name, Notes: req.Notes})
	if err != nil {
		switch {
		case errors.Is(err, equipment.ErrInvalidInput):
			h.logger.Warn("POST /admin/bbq-equipment - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/bbq-equipment - Failed to create equipment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bbq-equipment - Equipment created: equipment_id=%d", unit.ID)
	handlers.RespondJSON(w, http.StatusCreated, unit)
}
