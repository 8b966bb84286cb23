package get_catalog

import (
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Locations GET /api/locations
func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.ListLocations(r.Context())
	if err != nil {
		h.logger.Error("GET /locations - Failed to list locations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /locations - Locations retrieved: count=%d", len(locations))
	handlers.RespondJSON(w, http.StatusOK, locations)
}

// Packages GET /api/packages
func (h *Handler) Packages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.ListPackages(r.Context())
	if err != nil {
		h.logger.Error("GET /packages - Failed to list packages: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /packages - Packages retrieved: count=%d", len(packages))
	handlers.RespondJSON(w, http.StatusOK, packages)
}
