package register

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/BBQ-RentalService/internal/service/identity"
	"github.com/m04kA/BBQ-RentalService/internal/service/identity/models"
	"github.com/m04kA/BBQ-RentalService/pkg/logger"
	"github.com/m04kA/BBQ-RentalService/pkg/txmanager"
)

type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

const validBody = `{"username":"grillmaster","password":"secret1","email":"grill@beach.mt","phone":"+35612345678"}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))
	return rec
}

func TestHandler_Created(t *testing.T) {
	svc := new(MockIdentityService)
	svc.On("Register", mock.Anything, mock.MatchedBy(func(req *models.RegisterRequest) bool {
		return req.Username == "grillmaster" && req.Email == "grill@beach.mt"
	})).Return(&models.AuthResponse{Token: "t", User: &models.UserResponse{ID: 1, IsAdmin: true}}, nil)

	rec := post(NewHandler(svc, logger.NewNop()), validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isAdmin":true`)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "username taken", err: identity.ErrUsernameTaken, wantStatus: http.StatusConflict},
		{name: "concurrent first registration", err: fmt.Errorf("commit: %w", txmanager.ErrSerialization), wantStatus: http.StatusConflict},
		{name: "invalid input", err: identity.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unexpected", err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockIdentityService)
			svc.On("Register", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := post(NewHandler(svc, logger.NewNop()), validBody)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_InvalidEmail(t *testing.T) {
	svc := new(MockIdentityService)

	rec := post(NewHandler(svc, logger.NewNop()), `{"username":"grillmaster","password":"secret1","email":"nope","phone":"+35612345678"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}
