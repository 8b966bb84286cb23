package export_bookings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/BBQ-RentalService/internal/service/bookings"
	"github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
	"github.com/m04kA/BBQ-RentalService/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Export(ctx context.Context, req *models.ExportRequest) ([]byte, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestHandler_WritesAttachment(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("Export", mock.Anything, mock.MatchedBy(func(req *models.ExportRequest) bool {
		return req.From != nil && *req.From == "2025-06-01" && req.To == nil
	})).Return([]byte("PK-xlsx"), nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/admin/bookings/export?from=2025-06-01", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="bookings.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK-xlsx", rec.Body.String())
}

func TestHandler_InvalidRange(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("Export", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: from after to", bookings.ErrInvalidInput))

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/admin/bookings/export?from=2025-07-01&to=2025-06-01", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
