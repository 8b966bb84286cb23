package driver_login

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/driver"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDriverCode  = "неверный код водителя"
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

// Handle POST /api/driver/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req DriverLoginRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /driver/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.Login(r.Context(), req.DriverCode)
	if err != nil {
		switch {
		case errors.Is(err, driver.ErrInvalidDriverCode):
			h.logger.Warn("POST /driver/login - Invalid driver code")
			handlers.RespondUnauthorized(w, msgInvalidDriverCode)

		default:
			h.logger.Error("POST /driver/login - Failed to issue session: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /driver/login - Driver session issued")
	handlers.RespondJSON(w, http.StatusOK, session)
}
