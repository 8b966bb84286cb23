package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BBQ-RentalService/internal/api/middleware"
	"github.com/m04kA/BBQ-RentalService/internal/domain"
	createBooking "github.com/m04kA/BBQ-RentalService/internal/usecase/create_booking"
	"github.com/m04kA/BBQ-RentalService/pkg/auth"
	"github.com/m04kA/BBQ-RentalService/pkg/logger"
	"github.com/m04kA/BBQ-RentalService/pkg/txmanager"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

const validBody = `{"locationId":1,"packageId":2,"date":"2025-06-01","timeSlot":"12:00-15:00","bbqCount":2}`

func newRequest(t *testing.T, body string, userID int64) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	if userID == 0 {
		return req
	}
	issuer := auth.NewIssuer("secret", time.Hour)
	token, _, err := issuer.IssueUser(userID, false)
	require.NoError(t, err)
	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func TestHandler_Created(t *testing.T) {
	uc := new(MockUseCase)
	booking := &domain.Booking{
		ID:             10,
		UserID:         5,
		LocationID:     1,
		PackageID:      2,
		Date:           time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:       "12:00-15:00",
		Status:         domain.BookingStatusPending,
		PaymentStatus:  domain.PaymentStatusUnpaid,
		DeliveryStatus: domain.DeliveryStatusScheduled,
		BBQCount:       2,
	}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.UserID == 5 && req.LocationID == 1 && req.PackageID == 2 &&
			req.BBQCount != nil && *req.BBQCount == 2
	})).Return(&createBooking.Response{Booking: booking}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(t, validBody, 5))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(10), resp["id"])
	assert.Equal(t, "2025-06-01", resp["date"])
	assert.Equal(t, "12:00-15:00", resp["timeSlot"])
	assert.NotContains(t, resp, "commissionId")
	uc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     int64
		ucErr      error
		wantStatus int
	}{
		{name: "no session", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "missing location", body: `{"packageId":2,"date":"2025-06-01","timeSlot":"12:00-15:00"}`, userID: 5, wantStatus: http.StatusBadRequest},
		{name: "zero bbq count", body: `{"locationId":1,"packageId":2,"date":"2025-06-01","timeSlot":"12:00-15:00","bbqCount":0}`, userID: 5, wantStatus: http.StatusBadRequest},
		{name: "slot full", body: validBody, userID: 5, ucErr: createBooking.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "serialization", body: validBody, userID: 5, ucErr: fmt.Errorf("commit: %w", txmanager.ErrSerialization), wantStatus: http.StatusConflict},
		{name: "bad date", body: validBody, userID: 5, ucErr: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "bad slot", body: validBody, userID: 5, ucErr: createBooking.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest},
		{name: "package missing", body: validBody, userID: 5, ucErr: createBooking.ErrPackageNotFound, wantStatus: http.StatusNotFound},
		{name: "link missing", body: validBody, userID: 5, ucErr: createBooking.ErrAffiliateLinkNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", body: validBody, userID: 5, ucErr: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(t, tt.body, tt.userID))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestFromUseCaseResponse_Commission(t *testing.T) {
	resp := FromUseCaseResponse(&createBooking.Response{
		Booking:    &domain.Booking{ID: 3, TimeSlot: "09:00-12:00"},
		Commission: &domain.CommissionTransaction{ID: 77},
	})

	require.NotNil(t, resp.CommissionID)
	assert.Equal(t, int64(77), *resp.CommissionID)
	assert.Equal(t, int64(3), resp.ID)
}
