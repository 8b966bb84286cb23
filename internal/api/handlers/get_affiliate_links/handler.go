package get_affiliate_links

import (
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
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

// Handle GET /api/admin/affiliate-links
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListLinks(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/affiliate-links - Failed to list links: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/affiliate-links - Links retrieved: count=%d", len(result.Links))
	handlers.RespondJSON(w, http.StatusOK, result)
}
