package register

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/identity"
	"github.com/m04kA/BBQ-RentalService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные пользователя"
	msgUsernameTaken      = "имя пользователя уже занято"
	msgConcurrentUpdate   = "регистрация не завершена, повторите запрос"
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

// Handle POST /api/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.Register(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrUsernameTaken):
			h.logger.Warn("POST /register - Username taken: username=%s", req.Username)
			handlers.RespondConflict(w, msgUsernameTaken)

		case errors.Is(err, identity.ErrInvalidInput):
			h.logger.Warn("POST /register - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, txmanager.ErrSerialization):
			h.logger.Warn("POST /register - Concurrent registration: username=%s", req.Username)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /register - Failed to register user: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /register - User registered: user_id=%d, admin=%t", session.User.ID, session.User.IsAdmin)
	handlers.RespondJSON(w, http.StatusCreated, session)
}
