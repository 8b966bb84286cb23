package affiliate_click

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate"
	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate/models"
	"github.com/m04kA/BBQ-RentalService/pkg/logger"
)

type MockAffiliateService struct {
	mock.Mock
}

func (m *MockAffiliateService) Click(ctx context.Context, customURL string) (*models.LinkResponse, error) {
	args := m.Called(ctx, customURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LinkResponse), args.Error(1)
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/affiliate/{customUrl}", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_ReturnsLinkID(t *testing.T) {
	svc := new(MockAffiliateService)
	svc.On("Click", mock.Anything, "summer-grill").
		Return(&models.LinkResponse{ID: 12, CustomURL: "summer-grill", Clicks: 3}, nil)

	rec := serve(NewHandler(svc, logger.NewNop()), "/api/affiliate/summer-grill")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"affiliateLinkId":12,"customUrl":"summer-grill"}`, rec.Body.String())
}

func TestHandler_UnknownLink(t *testing.T) {
	svc := new(MockAffiliateService)
	svc.On("Click", mock.Anything, "missing").Return(nil, affiliate.ErrLinkNotFound)

	rec := serve(NewHandler(svc, logger.NewNop()), "/api/affiliate/missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
