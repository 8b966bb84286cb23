package get_me

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/api/middleware"
	"github.com/m04kA/BBQ-RentalService/internal/service/identity"
	"github.com/m04kA/BBQ-RentalService/internal/service/identity/models"
)

const (
	msgMissingUserID = "требуется сессия пользователя"
	msgUserNotFound  = "пользователь не найден"
)

type Handler struct {
	service IdentityService
	logger  Logger
}

func NewHandler(service IdentityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/user
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r, "GET /user")
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, user)
}

// Balance GET /api/user/balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r, "GET /user/balance")
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, BalanceResponse{Balance: user.Balance})
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request, route string) (*models.UserResponse, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return nil, false
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrUserNotFound):
			h.logger.Warn("%s - User not found: user_id=%d", route, userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("%s - Failed to get user: user_id=%d, error=%v", route, userID, err)
			handlers.RespondInternalError(w)
		}
		return nil, false
	}

	h.logger.Info("%s - User retrieved: user_id=%d", route, userID)
	return user, true
}
