package create_affiliate_link

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры ссылки"
	msgURLTaken           = "адрес ссылки уже занят"
	msgUserNotFound       = "пользователь не найден"
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

// Handle POST /api/admin/affiliate-links
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /admin/affiliate-links - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	link, err := h.service.CreateLink(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, affiliate.ErrInvalidInput):
			h.logger.Warn("POST /admin/affiliate-links - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, affiliate.ErrURLTaken):
			h.logger.Warn("POST /admin/affiliate-links - URL taken: user_id=%d", req.UserID)
			handlers.RespondConflict(w, msgURLTaken)

		case errors.Is(err, affiliate.ErrUserNotFound):
			h.logger.Warn("POST /admin/affiliate-links - User not found: user_id=%d", req.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("POST /admin/affiliate-links - Failed to create link: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/affiliate-links - Link created: link_id=%d, url=%s", link.ID, link.CustomURL)
	handlers.RespondJSON(w, http.StatusCreated, link)
}
