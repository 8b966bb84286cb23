package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	"github.com/m04kA/BBQ-RentalService/pkg/logger"
)

// Mock структуры

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, date time.Time) ([]domain.SlotAvailability, bool, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.SlotAvailability), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, date time.Time, slots []domain.SlotAvailability) error {
	args := m.Called(ctx, date, slots)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAvailability(ctx context.Context, date time.Time, slots []domain.SlotAvailability) error {
	args := m.Called(ctx, date, slots)
	return args.Error(0)
}

var day = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func bookingsIn(slot domain.TimeSlot, n int) []*domain.Booking {
	out := make([]*domain.Booking, n)
	for i := range out {
		out[i] = &domain.Booking{
			ID:       int64(i + 1),
			Date:     day,
			TimeSlot: slot,
			Status:   domain.BookingStatusPending,
			BBQCount: 1,
		}
	}
	return out
}

func dayFilter() domain.BookingFilter {
	d := day
	return domain.BookingFilter{Date: &d}
}

func newUseCase(repo BookingRepository, maxUnits int, opts ...Option) *UseCase {
	table := domain.MustSlotTable("09:00-12:00", "13:00-16:00", "17:00-20:00")
	return NewUseCase(repo, table, maxUnits, time.UTC, logger.NewNop(), opts...)
}

// ============================ Execute ============================

func TestUseCase_Execute_FullSlotPointsToNext(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("List", mock.Anything, dayFilter()).Return(bookingsIn("09:00-12:00", 5), nil).Once()

	uc := newUseCase(repo, 5)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-01"})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	first := resp.Slots[0]
	assert.Equal(t, domain.TimeSlot("09:00-12:00"), first.TimeSlot)
	assert.Equal(t, 0, first.AvailableUnits)
	require.NotNil(t, first.NextAvailableSlot)
	assert.Equal(t, domain.TimeSlot("13:00-16:00"), *first.NextAvailableSlot)

	assert.Equal(t, 5, resp.Slots[1].AvailableUnits)
	assert.Nil(t, resp.Slots[1].NextAvailableSlot)

	repo.AssertExpectations(t)
}

func TestUseCase_Execute_EmptyDay(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("List", mock.Anything, dayFilter()).Return([]*domain.Booking{}, nil).Once()

	uc := newUseCase(repo, 5)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-01"})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.Equal(t, 5, s.AvailableUnits)
		assert.Nil(t, s.NextAvailableSlot)
	}
}

func TestUseCase_Execute_OverbookedSlotIsClamped(t *testing.T) {
	bookings := bookingsIn("13:00-16:00", 3)
	bookings[0].BBQCount = 3

	repo := &MockBookingRepository{}
	repo.On("List", mock.Anything, dayFilter()).Return(bookings, nil).Once()

	uc := newUseCase(repo, 2)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-01"})
	require.NoError(t, err)

	slot := resp.Slots[1]
	assert.Equal(t, 0, slot.AvailableUnits)
	assert.Equal(t, 5, slot.BookedUnits)
	assert.True(t, slot.IsOverbooked())
	require.NotNil(t, slot.NextAvailableSlot)
	assert.Equal(t, domain.TimeSlot("17:00-20:00"), *slot.NextAvailableSlot)
}

func TestUseCase_Execute_LastSlotFullHasNoNext(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("List", mock.Anything, dayFilter()).Return(bookingsIn("17:00-20:00", 1), nil).Once()

	uc := newUseCase(repo, 1)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-01"})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Slots[2].AvailableUnits)
	assert.Nil(t, resp.Slots[2].NextAvailableSlot)
}

func TestUseCase_Execute_CancelledBookingsFreeCapacity(t *testing.T) {
	bookings := bookingsIn("09:00-12:00", 2)
	bookings[1].Status = domain.BookingStatusCancelled

	repo := &MockBookingRepository{}
	repo.On("List", mock.Anything, dayFilter()).Return(bookings, nil).Once()

	uc := newUseCase(repo, 2)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Slots[0].AvailableUnits)
}

func TestUseCase_Execute_ISODate(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("List", mock.Anything, dayFilter()).Return([]*domain.Booking{}, nil).Once()

	uc := newUseCase(repo, 1)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-01T10:30:00.000Z"})
	require.NoError(t, err)
	assert.True(t, day.Equal(resp.Date))
}

func TestUseCase_Execute_InvalidDate(t *testing.T) {
	uc := newUseCase(&MockBookingRepository{}, 1)

	for _, raw := range []string{"", "   ", "01/06/2025", "2025-13-01"} {
		_, err := uc.Execute(context.Background(), &Request{Date: raw})
		assert.ErrorIs(t, err, ErrInvalidInput, raw)
	}
}

func TestUseCase_Execute_RepositoryError(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	uc := newUseCase(repo, 1)

	_, err := uc.Execute(context.Background(), &Request{Date: "2025-06-01"})
	assert.ErrorIs(t, err, ErrInternal)
}

// ============================ Кеш ============================

func TestUseCase_Execute_CacheHit(t *testing.T) {
	repo := &MockBookingRepository{}
	cached := []domain.SlotAvailability{{TimeSlot: "09:00-12:00", AvailableUnits: 3, TotalUnits: 3}}

	cache := &MockCache{}
	cache.On("Get", mock.Anything, day).Return(cached, true, nil).Once()

	uc := newUseCase(repo, 3, WithCache(cache))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-01"})
	require.NoError(t, err)
	assert.Equal(t, cached, resp.Slots)

	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestUseCase_Execute_CacheMissStoresSnapshot(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("List", mock.Anything, dayFilter()).Return([]*domain.Booking{}, nil).Once()

	cache := &MockCache{}
	cache.On("Get", mock.Anything, day).Return(nil, false, nil).Once()
	cache.On("Set", mock.Anything, day, mock.AnythingOfType("[]domain.SlotAvailability")).Return(nil).Once()

	uc := newUseCase(repo, 1, WithCache(cache))

	_, err := uc.Execute(context.Background(), &Request{Date: "2025-06-01"})
	require.NoError(t, err)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestUseCase_Execute_CacheErrorFallsBackToRepository(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("List", mock.Anything, dayFilter()).Return([]*domain.Booking{}, nil).Once()

	cache := &MockCache{}
	cache.On("Get", mock.Anything, day).Return(nil, false, errors.New("redis down")).Once()
	cache.On("Set", mock.Anything, day, mock.Anything).Return(errors.New("redis down")).Once()

	uc := newUseCase(repo, 1, WithCache(cache))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-01"})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
}

// ============================ Refresh ============================

func TestUseCase_Refresh_InvalidatesAndPublishes(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("List", mock.Anything, dayFilter()).Return(bookingsIn("09:00-12:00", 1), nil).Once()

	cache := &MockCache{}
	cache.On("Invalidate", mock.Anything, day).Return(nil).Once()

	publisher := &MockPublisher{}
	publisher.On("PublishAvailability", mock.Anything, day, mock.MatchedBy(func(slots []domain.SlotAvailability) bool {
		return len(slots) == 3 && slots[0].AvailableUnits == 0
	})).Return(nil).Once()

	uc := newUseCase(repo, 1, WithCache(cache), WithPublisher(publisher))

	uc.Refresh(context.Background(), day.Add(15*time.Hour))

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUseCase_Refresh_FailuresAreNotFatal(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()

	cache := &MockCache{}
	cache.On("Invalidate", mock.Anything, day).Return(errors.New("redis down")).Once()

	publisher := &MockPublisher{}
	publisher.On("PublishAvailability", mock.Anything, day, mock.Anything).Return(errors.New("kafka down")).Once()

	uc := newUseCase(repo, 1, WithCache(cache), WithPublisher(publisher))

	assert.NotPanics(t, func() { uc.Refresh(context.Background(), day) })
	publisher.AssertExpectations(t)
}
