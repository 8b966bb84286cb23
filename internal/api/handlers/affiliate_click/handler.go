package affiliate_click

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate"
)

const (
	msgNotFound = "реферальная ссылка не найдена"
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

// Handle GET /api/affiliate/{customUrl}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customURL := mux.Vars(r)["customUrl"]

	link, err := h.service.Click(r.Context(), customURL)
	if err != nil {
		switch {
		case errors.Is(err, affiliate.ErrLinkNotFound):
			h.logger.Warn("GET /affiliate/{url} - Link not found: url=%s", customURL)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /affiliate/{url} - Failed to register click: url=%s, error=%v", customURL, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /affiliate/{url} - Click registered: link_id=%d, clicks=%d", link.ID, link.Clicks)
	handlers.RespondJSON(w, http.StatusOK, ClickResponse{AffiliateLinkID: link.ID, CustomURL: link.CustomURL})
}
