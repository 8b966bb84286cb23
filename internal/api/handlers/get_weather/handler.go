package get_weather

import (
	"net/http"
	"strings"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
)

const (
	msgMissingLocation = "параметр location обязателен"
)

type Handler struct {
	client WeatherClient
	logger Logger
}

func NewHandler(client WeatherClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// Handle GET /api/weather?location=<name>
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	location := strings.TrimSpace(r.URL.Query().Get("location"))
	if location == "" {
		h.logger.Warn("GET /weather - Missing location")
		handlers.RespondBadRequest(w, msgMissingLocation)
		return
	}

	current, err := h.client.GetCurrent(r.Context(), location)
	if err != nil {
		// Ошибку погодного сервиса отдаем клиенту как есть
		h.logger.Error("GET /weather - Failed to fetch weather: location=%s, error=%v", location, err)
		handlers.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("GET /weather - Weather retrieved: location=%s", location)
	handlers.RespondJSON(w, http.StatusOK, FromCurrent(location, current))
}
