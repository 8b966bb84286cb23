package process_commission

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate"
)

const (
	msgInvalidCommissionID = "некорректный ID начисления"
	msgNotFound            = "начисление не найдено"
	msgAlreadyProcessed    = "начисление уже проведено"
)

type Handler struct {
	service AffiliateService
	logger  Logger
}

func NewHandler(service AffiliateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/admin/commissions/{commissionId}/process
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	commissionID, err := handlers.PathInt64(r, "commissionId")
	if err != nil {
		h.logger.Warn("POST /admin/commissions/{id}/process - Invalid commission ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCommissionID)
		return
	}

	commission, err := h.service.ProcessCommission(r.Context(), commissionID)
	if err != nil {
		switch {
		case errors.Is(err, affiliate.ErrCommissionNotFound):
			h.logger.Warn("POST /admin/commissions/{id}/process - Commission not found: commission_id=%d", commissionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, affiliate.ErrAlreadyProcessed):
			h.logger.Warn("POST /admin/commissions/{id}/process - Already processed: commission_id=%d", commissionID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		default:
			h.logger.Error("POST /admin/commissions/{id}/process - Failed to process commission: commission_id=%d, error=%v",
				commissionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/commissions/{id}/process - Commission processed: commission_id=%d, amount=%s",
		commissionID, commission.Amount.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, commission)
}
