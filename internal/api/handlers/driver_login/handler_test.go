package driver_login

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/BBQ-RentalService/internal/service/driver"
	"github.com/m04kA/BBQ-RentalService/internal/service/driver/models"
	"github.com/m04kA/BBQ-RentalService/pkg/logger"
)

type MockDriverService struct {
	mock.Mock
}

func (m *MockDriverService) Login(ctx context.Context, code string) (*models.LoginResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/driver/login", strings.NewReader(body)))
	return rec
}

func TestHandler(t *testing.T) {
	t.Run("valid code", func(t *testing.T) {
		svc := new(MockDriverService)
		svc.On("Login", mock.Anything, "BEACH-1").Return(&models.LoginResponse{}, nil)

		assert.Equal(t, http.StatusOK, post(NewHandler(svc, logger.NewNop()), `{"driverCode":"BEACH-1"}`).Code)
	})

	t.Run("wrong code", func(t *testing.T) {
		svc := new(MockDriverService)
		svc.On("Login", mock.Anything, "nope").Return(nil, driver.ErrInvalidDriverCode)

		assert.Equal(t, http.StatusUnauthorized, post(NewHandler(svc, logger.NewNop()), `{"driverCode":"nope"}`).Code)
	})

	t.Run("empty body", func(t *testing.T) {
		svc := new(MockDriverService)

		assert.Equal(t, http.StatusBadRequest, post(NewHandler(svc, logger.NewNop()), `{}`).Code)
		svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}
