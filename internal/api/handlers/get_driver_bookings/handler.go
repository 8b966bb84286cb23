package get_driver_bookings

import (
	"context"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
)

type Handler struct {
	service DriverService
	logger  Logger
}

func NewHandler(service DriverService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Deliveries GET /api/driver/deliveries
func (h *Handler) Deliveries(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "GET /driver/deliveries", h.service.ListDeliveries)
}

// Pickups GET /api/driver/pickups
func (h *Handler) Pickups(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "GET /driver/pickups", h.service.ListPickups)
}

func (h *Handler) respond(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	list func(ctx context.Context) (*models.BookingListResponse, error),
) {
	result, err := list(r.Context())
	if err != nil {
		h.logger.Error("%s - Failed to list bookings: %v", route, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Bookings retrieved successfully: count=%d", route, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
