package equipment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	"github.com/m04kA/BBQ-RentalService/internal/infra/storage/memory"
	"github.com/m04kA/BBQ-RentalService/internal/service/equipment/models"
	"github.com/m04kA/BBQ-RentalService/pkg/logger"
	"github.com/m04kA/BBQ-RentalService/pkg/ptr"
)

type nopNotifier struct{}

func (nopNotifier) Refresh(context.Context, time.Time) {}

type recordingMetrics struct {
	transitions []string
}

func (m *recordingMetrics) EquipmentTransition(from, to string) {
	m.transitions = append(m.transitions, from+"->"+to)
}

// failingBookings отказывает при записи бронирования, чтобы проверить откат
type failingBookings struct {
	*memory.BookingRepository
}

func (failingBookings) Update(context.Context, *domain.Booking) error {
	return errors.New("disk full")
}

type env struct {
	store   *memory.Store
	service *Service
	metrics *recordingMetrics
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	m := &recordingMetrics{}
	svc := NewService(store.Equipment(), store.Bookings(), memory.NewTxManager(store), nopNotifier{}, m, logger.NewNop())
	return &env{store: store, service: svc, metrics: m}
}

func (e *env) unit(t *testing.T, status domain.EquipmentStatus) *domain.Equipment {
	t.Helper()
	u, err := e.store.Equipment().Create(context.Background(), &domain.Equipment{Name: "Weber Kettle", Status: status})
	require.NoError(t, err)
	return u
}

func (e *env) booking(t *testing.T) *domain.Booking {
	t.Helper()
	b, err := e.store.Bookings().Create(context.Background(), &domain.Booking{
		UserID:         1,
		Date:           time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:       "12:00-15:00",
		Status:         domain.BookingStatusConfirmed,
		PaymentStatus:  domain.PaymentStatusPaid,
		DeliveryStatus: domain.DeliveryStatusScheduled,
		BBQCount:       1,
	})
	require.NoError(t, err)
	return b
}

func (e *env) reload(t *testing.T, unitID, bookingID int64) (*domain.Equipment, *domain.Booking) {
	t.Helper()
	u, err := e.store.Equipment().GetByID(context.Background(), unitID)
	require.NoError(t, err)
	b, err := e.store.Bookings().GetByID(context.Background(), bookingID)
	require.NoError(t, err)
	return u, b
}

func TestService_Create(t *testing.T) {
	e := newEnv(t)

	resp, err := e.service.Create(context.Background(), &models.CreateEquipmentRequest{Name: "  Weber Kettle  "})
	require.NoError(t, err)
	assert.Equal(t, "Weber Kettle", resp.Name)
	assert.Equal(t, "available", resp.Status)

	_, err = e.service.Create(context.Background(), &models.CreateEquipmentRequest{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListAvailable(t *testing.T) {
	e := newEnv(t)
	e.unit(t, domain.EquipmentAvailable)
	e.unit(t, domain.EquipmentMaintenance)
	e.unit(t, domain.EquipmentAvailable)

	all, err := e.service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all.Equipment, 3)

	free, err := e.service.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, free.Equipment, 2)
	for _, u := range free.Equipment {
		assert.Equal(t, "available", u.Status)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	e := newEnv(t)

	_, err := e.service.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}

func TestService_Assign_Success(t *testing.T) {
	e := newEnv(t)
	u := e.unit(t, domain.EquipmentAvailable)
	b := e.booking(t)

	resp, err := e.service.Assign(context.Background(), u.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_use", resp.Status)
	require.NotNil(t, resp.CurrentBookingID)
	assert.Equal(t, b.ID, *resp.CurrentBookingID)

	unit, booking := e.reload(t, u.ID, b.ID)
	assert.Equal(t, domain.EquipmentInUse, unit.Status)
	assert.Equal(t, b.ID, *unit.CurrentBookingID)
	require.NotNil(t, booking.AssignedBBQID)
	assert.Equal(t, u.ID, *booking.AssignedBBQID)

	assert.Equal(t, []string{"available->in_use"}, e.metrics.transitions)
}

func TestService_Assign_MaintenanceUnitFails(t *testing.T) {
	e := newEnv(t)
	u := e.unit(t, domain.EquipmentMaintenance)
	b := e.booking(t)

	_, err := e.service.Assign(context.Background(), u.ID, b.ID)
	assert.ErrorIs(t, err, ErrUnitNotAvailable)

	unit, booking := e.reload(t, u.ID, b.ID)
	assert.Equal(t, domain.EquipmentMaintenance, unit.Status)
	assert.Nil(t, unit.CurrentBookingID)
	assert.Nil(t, booking.AssignedBBQID)
}

func TestService_Assign_BookingAlreadyAssigned(t *testing.T) {
	e := newEnv(t)
	first := e.unit(t, domain.EquipmentAvailable)
	second := e.unit(t, domain.EquipmentAvailable)
	b := e.booking(t)

	_, err := e.service.Assign(context.Background(), first.ID, b.ID)
	require.NoError(t, err)

	_, err = e.service.Assign(context.Background(), second.ID, b.ID)
	assert.ErrorIs(t, err, ErrBookingAlreadyAssigned)

	unit, _ := e.reload(t, second.ID, b.ID)
	assert.Equal(t, domain.EquipmentAvailable, unit.Status)
}

func TestService_Assign_BusyUnit(t *testing.T) {
	e := newEnv(t)
	u := e.unit(t, domain.EquipmentAvailable)
	first := e.booking(t)
	second := e.booking(t)

	_, err := e.service.Assign(context.Background(), u.ID, first.ID)
	require.NoError(t, err)

	_, err = e.service.Assign(context.Background(), u.ID, second.ID)
	assert.ErrorIs(t, err, ErrUnitNotAvailable)
}

func TestService_Assign_RollsBackOnBookingWriteFailure(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(
		store.Equipment(),
		failingBookings{store.Bookings()},
		memory.NewTxManager(store),
		nopNotifier{},
		&recordingMetrics{},
		logger.NewNop(),
	)
	e := &env{store: store, service: svc}
	u := e.unit(t, domain.EquipmentAvailable)
	b := e.booking(t)

	_, err := svc.Assign(context.Background(), u.ID, b.ID)
	assert.ErrorIs(t, err, ErrInternal)

	unit, booking := e.reload(t, u.ID, b.ID)
	assert.Equal(t, domain.EquipmentAvailable, unit.Status)
	assert.Nil(t, unit.CurrentBookingID)
	assert.Nil(t, booking.AssignedBBQID)
}

func TestService_Assign_CancelledBooking(t *testing.T) {
	e := newEnv(t)
	u := e.unit(t, domain.EquipmentAvailable)
	b := e.booking(t)
	b.Status = domain.BookingStatusCancelled
	require.NoError(t, e.store.Bookings().Update(context.Background(), b))

	_, err := e.service.Assign(context.Background(), u.ID, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotAssignable)
}

func TestService_Release(t *testing.T) {
	e := newEnv(t)
	u := e.unit(t, domain.EquipmentAvailable)
	b := e.booking(t)

	_, err := e.service.Assign(context.Background(), u.ID, b.ID)
	require.NoError(t, err)

	resp, err := e.service.Release(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "cleaning", resp.Status)
	assert.Nil(t, resp.CurrentBookingID)

	unit, booking := e.reload(t, u.ID, b.ID)
	assert.Equal(t, domain.EquipmentCleaning, unit.Status)
	assert.Nil(t, unit.CurrentBookingID)
	assert.Nil(t, booking.AssignedBBQID)

	// Повторное освобождение отклоняется, статус не меняется
	_, err = e.service.Release(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrCannotRelease)

	unit, _ = e.reload(t, u.ID, b.ID)
	assert.Equal(t, domain.EquipmentCleaning, unit.Status)
}

func TestService_Release_AvailableUnitRejected(t *testing.T) {
	e := newEnv(t)
	u := e.unit(t, domain.EquipmentAvailable)

	_, err := e.service.Release(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrCannotRelease)
}

func TestService_UpdateStatus_CleaningToAvailableIsIdempotent(t *testing.T) {
	e := newEnv(t)
	u := e.unit(t, domain.EquipmentCleaning)

	cleanedAt := time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC)
	e.service.now = func() time.Time { return cleanedAt }

	resp, err := e.service.UpdateStatus(context.Background(), u.ID, &models.UpdateStatusRequest{Status: "available"})
	require.NoError(t, err)
	require.NotNil(t, resp.LastCleaned)
	assert.True(t, cleanedAt.Equal(*resp.LastCleaned))

	e.service.now = func() time.Time { return cleanedAt.Add(time.Hour) }

	resp, err = e.service.UpdateStatus(context.Background(), u.ID, &models.UpdateStatusRequest{Status: "available"})
	require.NoError(t, err)
	assert.True(t, cleanedAt.Equal(*resp.LastCleaned))

	assert.Equal(t, []string{"cleaning->available"}, e.metrics.transitions)
}

func TestService_UpdateStatus_MaintenanceStampsLastMaintenance(t *testing.T) {
	e := newEnv(t)
	u := e.unit(t, domain.EquipmentMaintenance)

	resp, err := e.service.UpdateStatus(context.Background(), u.ID, &models.UpdateStatusRequest{
		Status: "available",
		Notes:  ptr.Ptr("new grill grate"),
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.LastMaintenance)
	assert.Nil(t, resp.LastCleaned)
	assert.Equal(t, "new grill grate", *resp.Notes)
}

func TestService_UpdateStatus_LinkedUnitToMaintenanceClearsLink(t *testing.T) {
	e := newEnv(t)
	u := e.unit(t, domain.EquipmentAvailable)
	b := e.booking(t)

	_, err := e.service.Assign(context.Background(), u.ID, b.ID)
	require.NoError(t, err)

	_, err = e.service.UpdateStatus(context.Background(), u.ID, &models.UpdateStatusRequest{Status: "transit_delivery"})
	require.NoError(t, err)

	unit, booking := e.reload(t, u.ID, b.ID)
	assert.Equal(t, domain.EquipmentTransitDelivery, unit.Status)
	require.NotNil(t, unit.CurrentBookingID)
	require.NotNil(t, booking.AssignedBBQID)

	_, err = e.service.UpdateStatus(context.Background(), u.ID, &models.UpdateStatusRequest{Status: "maintenance"})
	require.NoError(t, err)

	unit, booking = e.reload(t, u.ID, b.ID)
	assert.Equal(t, domain.EquipmentMaintenance, unit.Status)
	assert.Nil(t, unit.CurrentBookingID)
	assert.Nil(t, booking.AssignedBBQID)
}

func TestService_UpdateStatus_Rejected(t *testing.T) {
	e := newEnv(t)
	u := e.unit(t, domain.EquipmentAvailable)

	_, err := e.service.UpdateStatus(context.Background(), u.ID, &models.UpdateStatusRequest{Status: "in_use"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = e.service.UpdateStatus(context.Background(), u.ID, &models.UpdateStatusRequest{Status: "transit_pickup"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = e.service.UpdateStatus(context.Background(), u.ID, &models.UpdateStatusRequest{Status: "broken"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.service.UpdateStatus(context.Background(), 99, &models.UpdateStatusRequest{Status: "cleaning"})
	assert.ErrorIs(t, err, ErrEquipmentNotFound)

	unit, err := e.store.Equipment().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentAvailable, unit.Status)
}
