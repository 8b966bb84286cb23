package driver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	"github.com/m04kA/BBQ-RentalService/internal/infra/storage/memory"
	"github.com/m04kA/BBQ-RentalService/internal/service/bookings"
	"github.com/m04kA/BBQ-RentalService/pkg/auth"
	"github.com/m04kA/BBQ-RentalService/pkg/logger"
)

type nopNotifier struct{}

func (nopNotifier) Refresh(context.Context, time.Time) {}

func newService(t *testing.T) (*Service, *memory.Store, *auth.Issuer) {
	t.Helper()

	store := memory.NewStore()
	issuer := auth.NewIssuer("test-secret", time.Hour)
	updater := bookings.NewService(
		store.Bookings(),
		store.Equipment(),
		memory.NewTxManager(store),
		nopNotifier{},
		nil,
		bookings.Settings{
			Slots:    domain.MustSlotTable(domain.DefaultTimeSlots...),
			MaxUnits: 1,
			Location: time.UTC,
		},
		logger.NewNop(),
	)

	svc := NewService(store.Bookings(), updater, issuer, []string{"KEN2024", "DRIVER01"}, logger.NewNop())
	return svc, store, issuer
}

func seed(t *testing.T, store *memory.Store, status domain.BookingStatus, delivery domain.DeliveryStatus) *domain.Booking {
	t.Helper()
	b, err := store.Bookings().Create(context.Background(), &domain.Booking{
		UserID:         1,
		Date:           time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:       "12:00-15:00",
		Status:         status,
		PaymentStatus:  domain.PaymentStatusPaid,
		DeliveryStatus: delivery,
		BBQCount:       1,
	})
	require.NoError(t, err)
	return b
}

func TestService_Login(t *testing.T) {
	svc, _, issuer := newService(t)

	resp, err := svc.Login(context.Background(), " KEN2024 ")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleDriver, resp.Role)

	claims, err := issuer.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleDriver, claims.Role)
	_, hasUser := claims.UserID()
	assert.False(t, hasUser)

	_, err = svc.Login(context.Background(), "ken2024")
	assert.ErrorIs(t, err, ErrInvalidDriverCode)

	_, err = svc.Login(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidDriverCode)
}

func TestService_ListDeliveriesAndPickups(t *testing.T) {
	svc, store, _ := newService(t)

	scheduled := seed(t, store, domain.BookingStatusConfirmed, domain.DeliveryStatusScheduled)
	inTransit := seed(t, store, domain.BookingStatusConfirmed, domain.DeliveryStatusInTransit)
	seed(t, store, domain.BookingStatusPending, domain.DeliveryStatusScheduled)
	delivered := seed(t, store, domain.BookingStatusConfirmed, domain.DeliveryStatusDelivered)
	seed(t, store, domain.BookingStatusCompleted, domain.DeliveryStatusCollected)
	// Отмена после доставки: оборудование все равно надо забрать с пляжа
	cancelledOnBeach := seed(t, store, domain.BookingStatusCancelled, domain.DeliveryStatusDelivered)
	seed(t, store, domain.BookingStatusCancelled, domain.DeliveryStatusScheduled)

	deliveries, err := svc.ListDeliveries(context.Background())
	require.NoError(t, err)
	ids := make([]int64, 0, len(deliveries.Bookings))
	for _, b := range deliveries.Bookings {
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []int64{scheduled.ID, inTransit.ID}, ids)

	pickups, err := svc.ListPickups(context.Background())
	require.NoError(t, err)
	pickupIDs := make([]int64, 0, len(pickups.Bookings))
	for _, b := range pickups.Bookings {
		pickupIDs = append(pickupIDs, b.ID)
	}
	assert.ElementsMatch(t, []int64{delivered.ID, cancelledOnBeach.ID}, pickupIDs)
}

func TestService_Advance(t *testing.T) {
	svc, store, _ := newService(t)
	b := seed(t, store, domain.BookingStatusConfirmed, domain.DeliveryStatusScheduled)

	resp, err := svc.Advance(context.Background(), b.ID, "in_transit")
	require.NoError(t, err)
	assert.Equal(t, "in_transit", resp.DeliveryStatus)
	assert.NotNil(t, resp.ActualStartTime)

	_, err = svc.Advance(context.Background(), b.ID, "collected")
	assert.ErrorIs(t, err, bookings.ErrInvalidTransition)

	_, err = svc.Advance(context.Background(), b.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
