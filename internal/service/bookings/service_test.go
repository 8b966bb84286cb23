package bookings

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	"github.com/m04kA/BBQ-RentalService/internal/infra/storage/memory"
	"github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
	"github.com/m04kA/BBQ-RentalService/pkg/logger"
	"github.com/m04kA/BBQ-RentalService/pkg/ptr"
)

type recordingNotifier struct {
	dates []time.Time
}

func (n *recordingNotifier) Refresh(_ context.Context, date time.Time) {
	n.dates = append(n.dates, date)
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishBooking(_ context.Context, eventType string, _ *domain.Booking) error {
	p.events = append(p.events, eventType)
	return nil
}

var (
	june1 = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	june2 = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
)

type env struct {
	store     *memory.Store
	service   *Service
	notifier  *recordingNotifier
	publisher *recordingPublisher
}

func newEnv(t *testing.T, maxUnits int) *env {
	t.Helper()

	store := memory.NewStore()
	notifier := &recordingNotifier{}
	publisher := &recordingPublisher{}

	svc := NewService(
		store.Bookings(),
		store.Equipment(),
		memory.NewTxManager(store),
		notifier,
		publisher,
		Settings{
			Slots:    domain.MustSlotTable(domain.DefaultTimeSlots...),
			MaxUnits: maxUnits,
			Location: time.UTC,
		},
		logger.NewNop(),
	)

	return &env{store: store, service: svc, notifier: notifier, publisher: publisher}
}

func (e *env) seed(t *testing.T, b domain.Booking) *domain.Booking {
	t.Helper()

	if b.Status == "" {
		b.Status = domain.BookingStatusPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = domain.PaymentStatusUnpaid
	}
	if b.DeliveryStatus == "" {
		b.DeliveryStatus = domain.DeliveryStatusScheduled
	}
	if b.BBQCount == 0 {
		b.BBQCount = 1
	}
	if b.TimeSlot == "" {
		b.TimeSlot = "12:00-15:00"
	}
	if b.Date.IsZero() {
		b.Date = june1
	}
	if b.UserID == 0 {
		b.UserID = 1
	}

	created, err := e.store.Bookings().Create(context.Background(), &b)
	require.NoError(t, err)
	return created
}

func TestService_GetByID_RoundTrip(t *testing.T) {
	e := newEnv(t, 1)
	created := e.seed(t, domain.Booking{
		LocationID:          2,
		PackageID:           3,
		CustomerName:        "Ken",
		CustomerPhone:       "+35699990000",
		CleanupContribution: true,
		Notes:               ptr.Ptr("near the kiosk"),
	})

	got, err := e.service.GetByID(context.Background(), created.ID, 1, false)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, int64(2), got.LocationID)
	assert.Equal(t, int64(3), got.PackageID)
	assert.Equal(t, "Ken", got.CustomerName)
	assert.Equal(t, "+35699990000", got.CustomerPhone)
	assert.Equal(t, "2025-06-01", got.Date)
	assert.Equal(t, "12:00-15:00", got.TimeSlot)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, "unpaid", got.PaymentStatus)
	assert.Equal(t, "scheduled", got.DeliveryStatus)
	assert.True(t, got.CleanupContribution)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "near the kiosk", *got.Notes)
}

func TestService_GetByID_AccessDenied(t *testing.T) {
	e := newEnv(t, 1)
	created := e.seed(t, domain.Booking{UserID: 1})

	_, err := e.service.GetByID(context.Background(), created.ID, 2, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = e.service.GetByID(context.Background(), created.ID, 2, true)
	assert.NoError(t, err)
}

func TestService_GetByID_NotFound(t *testing.T) {
	e := newEnv(t, 1)

	_, err := e.service.GetByID(context.Background(), 404, 1, true)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_ListByUser_IncludesCancelled(t *testing.T) {
	e := newEnv(t, 1)
	e.seed(t, domain.Booking{UserID: 1})
	e.seed(t, domain.Booking{UserID: 1, Status: domain.BookingStatusCancelled, TimeSlot: "16:00-19:00"})
	e.seed(t, domain.Booking{UserID: 2, TimeSlot: "20:00-23:00"})

	resp, err := e.service.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestService_ListAll_Filters(t *testing.T) {
	e := newEnv(t, 1)
	e.seed(t, domain.Booking{Status: domain.BookingStatusConfirmed})
	e.seed(t, domain.Booking{Status: domain.BookingStatusCancelled, TimeSlot: "16:00-19:00"})
	e.seed(t, domain.Booking{Date: june2})

	all, err := e.service.ListAll(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 3)

	confirmed, err := e.service.ListAll(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("confirmed")})
	require.NoError(t, err)
	assert.Len(t, confirmed.Bookings, 1)

	onDay, err := e.service.ListAll(context.Background(), &models.ListBookingsRequest{Date: ptr.Ptr("2025-06-02")})
	require.NoError(t, err)
	assert.Len(t, onDay.Bookings, 1)

	_, err = e.service.ListAll(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_DeliveryStampsTimestamps(t *testing.T) {
	e := newEnv(t, 1)
	created := e.seed(t, domain.Booking{Status: domain.BookingStatusConfirmed})

	start := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
	e.service.now = func() time.Time { return start }

	resp, err := e.service.Update(context.Background(), created.ID, &models.UpdateBookingRequest{
		DeliveryStatus: ptr.Ptr("in_transit"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ActualStartTime)
	assert.True(t, start.Equal(*resp.ActualStartTime))
	assert.Nil(t, resp.ActualEndTime)

	end := start.Add(3 * time.Hour)
	e.service.now = func() time.Time { return end }

	resp, err = e.service.Update(context.Background(), created.ID, &models.UpdateBookingRequest{
		DeliveryStatus: ptr.Ptr("delivered"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ActualEndTime)
	assert.True(t, end.Equal(*resp.ActualEndTime))
	assert.True(t, start.Equal(*resp.ActualStartTime))

	stored, err := e.store.Bookings().GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryStatusDelivered, stored.DeliveryStatus)
	assert.True(t, start.Equal(*stored.ActualStartTime))

	assert.Equal(t, []string{eventBookingUpdated, eventBookingUpdated}, e.publisher.events)
}

func TestService_Update_ExplicitTimestampWins(t *testing.T) {
	e := newEnv(t, 1)
	created := e.seed(t, domain.Booking{})

	explicit := time.Date(2025, 6, 1, 11, 50, 0, 0, time.UTC)
	resp, err := e.service.Update(context.Background(), created.ID, &models.UpdateBookingRequest{
		DeliveryStatus:  ptr.Ptr("in_transit"),
		ActualStartTime: &explicit,
	})
	require.NoError(t, err)
	assert.True(t, explicit.Equal(*resp.ActualStartTime))
}

func TestService_Update_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateBookingRequest
	}{
		{"доставка через шаг", &models.UpdateBookingRequest{DeliveryStatus: ptr.Ptr("delivered")}},
		{"возврат без оплаты", &models.UpdateBookingRequest{PaymentStatus: ptr.Ptr("refunded")}},
		{"завершение без подтверждения", &models.UpdateBookingRequest{Status: ptr.Ptr("completed")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, 1)
			created := e.seed(t, domain.Booking{})

			_, err := e.service.Update(context.Background(), created.ID, tt.req)
			assert.ErrorIs(t, err, ErrInvalidTransition)

			stored, err := e.store.Bookings().GetByID(context.Background(), created.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.BookingStatusPending, stored.Status)
			assert.Equal(t, domain.PaymentStatusUnpaid, stored.PaymentStatus)
			assert.Equal(t, domain.DeliveryStatusScheduled, stored.DeliveryStatus)
			assert.Empty(t, e.notifier.dates)
		})
	}
}

func TestService_Update_CancelledIsTerminal(t *testing.T) {
	e := newEnv(t, 1)
	created := e.seed(t, domain.Booking{})

	_, err := e.service.Update(context.Background(), created.ID, &models.UpdateBookingRequest{Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)

	// Повторная запись того же статуса ничего не меняет
	_, err = e.service.Update(context.Background(), created.ID, &models.UpdateBookingRequest{Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)

	_, err = e.service.Update(context.Background(), created.ID, &models.UpdateBookingRequest{Status: ptr.Ptr("confirmed")})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Update_ClosingReleasesAssignedUnit(t *testing.T) {
	for _, status := range []string{"cancelled", "completed"} {
		t.Run(status, func(t *testing.T) {
			e := newEnv(t, 1)
			ctx := context.Background()

			booking := e.seed(t, domain.Booking{Status: domain.BookingStatusConfirmed})
			unit, err := e.store.Equipment().Create(ctx, &domain.Equipment{
				Name:             "BBQ-1",
				Status:           domain.EquipmentInUse,
				CurrentBookingID: ptr.Ptr(booking.ID),
			})
			require.NoError(t, err)
			booking.AssignedBBQID = ptr.Ptr(unit.ID)
			require.NoError(t, e.store.Bookings().Update(ctx, booking))

			resp, err := e.service.Update(ctx, booking.ID, &models.UpdateBookingRequest{Status: ptr.Ptr(status)})
			require.NoError(t, err)
			assert.Nil(t, resp.AssignedBBQID)

			stored, err := e.store.Equipment().GetByID(ctx, unit.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.EquipmentCleaning, stored.Status)
			assert.Nil(t, stored.CurrentBookingID)
		})
	}
}

func TestService_Update_ClosingKeepsForeignUnit(t *testing.T) {
	e := newEnv(t, 2)
	ctx := context.Background()

	booking := e.seed(t, domain.Booking{})
	other := e.seed(t, domain.Booking{})
	unit, err := e.store.Equipment().Create(ctx, &domain.Equipment{
		Name:             "BBQ-1",
		Status:           domain.EquipmentInUse,
		CurrentBookingID: ptr.Ptr(other.ID),
	})
	require.NoError(t, err)
	booking.AssignedBBQID = ptr.Ptr(unit.ID)
	require.NoError(t, e.store.Bookings().Update(ctx, booking))

	_, err = e.service.Update(ctx, booking.ID, &models.UpdateBookingRequest{Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)

	stored, err := e.store.Equipment().GetByID(ctx, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentInUse, stored.Status)
	assert.Equal(t, other.ID, *stored.CurrentBookingID)
}

func TestService_Update_Validation(t *testing.T) {
	e := newEnv(t, 1)
	created := e.seed(t, domain.Booking{})

	tests := []struct {
		name string
		req  *models.UpdateBookingRequest
	}{
		{"пустой патч", &models.UpdateBookingRequest{}},
		{"неизвестный статус", &models.UpdateBookingRequest{Status: ptr.Ptr("archived")}},
		{"слот вне расписания", &models.UpdateBookingRequest{TimeSlot: ptr.Ptr("09:00-12:00")}},
		{"битая дата", &models.UpdateBookingRequest{Date: ptr.Ptr("2025-02-30")}},
		{"пустое имя", &models.UpdateBookingRequest{CustomerName: ptr.Ptr("  ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.service.Update(context.Background(), created.ID, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Update_NotFound(t *testing.T) {
	e := newEnv(t, 1)

	_, err := e.service.Update(context.Background(), 7, &models.UpdateBookingRequest{Status: ptr.Ptr("confirmed")})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Update_MoveIntoFullSlot(t *testing.T) {
	e := newEnv(t, 1)
	e.seed(t, domain.Booking{Date: june2, TimeSlot: "16:00-19:00"})
	moving := e.seed(t, domain.Booking{})

	_, err := e.service.Update(context.Background(), moving.ID, &models.UpdateBookingRequest{
		Date:     ptr.Ptr("2025-06-02"),
		TimeSlot: ptr.Ptr("16:00-19:00"),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	stored, err := e.store.Bookings().GetByID(context.Background(), moving.ID)
	require.NoError(t, err)
	assert.True(t, june1.Equal(stored.Date))
}

func TestService_Update_MoveRefreshesBothDays(t *testing.T) {
	e := newEnv(t, 1)
	moving := e.seed(t, domain.Booking{})

	resp, err := e.service.Update(context.Background(), moving.ID, &models.UpdateBookingRequest{
		Date: ptr.Ptr("2025-06-02T10:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", resp.Date)

	require.Len(t, e.notifier.dates, 2)
	assert.True(t, june1.Equal(e.notifier.dates[0]))
	assert.True(t, june2.Equal(e.notifier.dates[1]))
}

func TestService_Export(t *testing.T) {
	e := newEnv(t, 1)
	e.seed(t, domain.Booking{CustomerName: "Ken"})
	e.seed(t, domain.Booking{CustomerName: "Maria", Date: june2})
	e.seed(t, domain.Booking{CustomerName: "Later", Date: june2.AddDate(0, 0, 5)})

	data, err := e.service.Export(context.Background(), &models.ExportRequest{
		From: ptr.Ptr("2025-06-01"),
		To:   ptr.Ptr("2025-06-02"),
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Maria", rows[1][3])
	assert.Equal(t, "Ken", rows[2][3])
}

func TestService_Export_InvalidPeriod(t *testing.T) {
	e := newEnv(t, 1)

	_, err := e.service.Export(context.Background(), &models.ExportRequest{
		From: ptr.Ptr("2025-06-02"),
		To:   ptr.Ptr("2025-06-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
