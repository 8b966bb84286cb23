package update_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/BBQ-RentalService/internal/service/bookings"
	"github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
	"github.com/m04kA/BBQ-RentalService/pkg/logger"
	"github.com/m04kA/BBQ-RentalService/pkg/ptr"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func serve(h *Handler, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/admin/bookings/{bookingId:[0-9]+}", h.Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body)))
	return rec
}

func TestHandler_Success(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("Update", mock.Anything, int64(4), &models.UpdateBookingRequest{DeliveryStatus: ptr.Ptr("in_transit")}).
		Return(&models.BookingResponse{ID: 4, Status: "confirmed", DeliveryStatus: "in_transit"}, nil)

	rec := serve(NewHandler(svc, logger.NewNop()), "/api/admin/bookings/4", `{"deliveryStatus":"in_transit"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deliveryStatus":"in_transit"`)
	svc.AssertExpectations(t)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "bad transition", err: bookings.ErrInvalidTransition, wantStatus: http.StatusBadRequest},
		{name: "bad input", err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "slot full", err: bookings.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "unexpected", err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBookingService)
			svc.On("Update", mock.Anything, int64(9), mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(svc, logger.NewNop()), "/api/admin/bookings/9", `{"status":"completed"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_RejectsUnknownFields(t *testing.T) {
	svc := new(MockBookingService)

	rec := serve(NewHandler(svc, logger.NewNop()), "/api/admin/bookings/9", `{"bbqCount":3}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
