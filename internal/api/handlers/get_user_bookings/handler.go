package get_user_bookings

import (
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/api/middleware"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "требуется сессия пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/users/{userId}/bookings (владелец или администратор)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	sessionID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if sessionID != userID && !middleware.IsAdmin(r.Context()) {
		h.logger.Warn("GET /users/{userId}/bookings - Access denied: user_id=%d, session_user_id=%d", userID, sessionID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	h.respond(w, r, "GET /users/{userId}/bookings", userID)
}

// HandleCurrent GET /api/user/bookings
func (h *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /user/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	h.respond(w, r, "GET /user/bookings", userID)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, route string, userID int64) {
	result, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("%s - Failed to get bookings: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Bookings retrieved successfully: user_id=%d, count=%d", route, userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
