package get_commissions

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate"
)

const (
	msgInvalidStatus = "некорректный статус начисления"
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

// Handle GET /api/admin/commissions?status=pending|processed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	status := handlers.OptionalQuery(r, "status")

	result, err := h.service.ListCommissions(r.Context(), status)
	if err != nil {
		switch {
		case errors.Is(err, affiliate.ErrInvalidInput):
			h.logger.Warn("GET /admin/commissions - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /admin/commissions - Failed to list commissions: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/commissions - Commissions retrieved: count=%d", len(result.Commissions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
