package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	affiliateRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/affiliate"
	catalogRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/catalog"
	"github.com/m04kA/BBQ-RentalService/pkg/logger"
	"github.com/m04kA/BBQ-RentalService/pkg/metrics"
	"github.com/m04kA/BBQ-RentalService/pkg/ptr"
)

// Mock структуры

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Booking) *domain.Booking); ok {
		return fn(ctx, booking), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockCatalogRepository) GetPackage(ctx context.Context, id int64) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

type MockAffiliateRepository struct {
	mock.Mock
}

func (m *MockAffiliateRepository) GetLinkByID(ctx context.Context, id int64) (*domain.AffiliateLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AffiliateLink), args.Error(1)
}

func (m *MockAffiliateRepository) CreateCommission(ctx context.Context, tx *domain.CommissionTransaction) (*domain.CommissionTransaction, error) {
	args := m.Called(ctx, tx)
	if fn, ok := args.Get(0).(func(context.Context, *domain.CommissionTransaction) *domain.CommissionTransaction); ok {
		return fn(ctx, tx), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionTransaction), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Refresh(ctx context.Context, date time.Time) {
	m.Called(ctx, date)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBooking(ctx context.Context, eventType string, b *domain.Booking) error {
	args := m.Called(ctx, eventType, b)
	return args.Error(0)
}

// passthroughTx выполняет функцию без реальной транзакции
type passthroughTx struct {
	calls int
}

func (t *passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

var day = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	bookings  *MockBookingRepository
	users     *MockUserRepository
	catalog   *MockCatalogRepository
	affiliate *MockAffiliateRepository
	notifier  *MockNotifier
	publisher *MockPublisher
	tx        *passthroughTx
}

func newFixture() *fixture {
	return &fixture{
		bookings:  &MockBookingRepository{},
		users:     &MockUserRepository{},
		catalog:   &MockCatalogRepository{},
		affiliate: &MockAffiliateRepository{},
		notifier:  &MockNotifier{},
		publisher: &MockPublisher{},
		tx:        &passthroughTx{},
	}
}

func (f *fixture) useCase(maxUnits int, allowOverbooking bool) *UseCase {
	var m *metrics.Metrics
	return NewUseCase(
		f.bookings, f.users, f.catalog, f.affiliate, f.tx, f.notifier, f.publisher, m,
		Settings{
			Slots:            domain.MustSlotTable(domain.DefaultTimeSlots...),
			MaxUnits:         maxUnits,
			Location:         time.UTC,
			AllowOverbooking: allowOverbooking,
			CleanupAmount:    decimal.RequireFromString("5.00"),
		},
		logger.NewNop(),
	)
}

// expectLookups пользователь, пляж и пакет найдены
func (f *fixture) expectLookups() {
	f.users.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.User{ID: 1, Username: "alice", Phone: "+35699990000"}, nil).Once()
	f.catalog.On("GetLocation", mock.Anything, int64(2)).
		Return(&domain.Location{ID: 2, Name: "Golden Bay"}, nil).Once()
	f.catalog.On("GetPackage", mock.Anything, int64(3)).
		Return(&domain.Package{ID: 3, Price: decimal.NewFromInt(70)}, nil).Once()
}

func (f *fixture) expectCreated() {
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Booking).ID = 42
		}).
		Return(func(_ context.Context, b *domain.Booking) *domain.Booking { return b }, nil).Once()
	f.notifier.On("Refresh", mock.Anything, day).Once()
	f.publisher.On("PublishBooking", mock.Anything, eventBookingCreated, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
}

func validRequest() *Request {
	return &Request{
		UserID:     1,
		LocationID: 2,
		PackageID:  3,
		Date:       "2025-06-01",
		TimeSlot:   "12:00-15:00",
	}
}

// ============================ Успешные сценарии ============================

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture()
	f.expectLookups()
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()
	f.expectCreated()

	resp, err := f.useCase(1, false).Execute(context.Background(), validRequest())
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, int64(42), b.ID)
	assert.Equal(t, domain.BookingStatusPending, b.Status)
	assert.Equal(t, domain.PaymentStatusUnpaid, b.PaymentStatus)
	assert.Equal(t, domain.DeliveryStatusScheduled, b.DeliveryStatus)
	assert.Equal(t, 1, b.BBQCount)
	assert.Equal(t, "alice", b.CustomerName)
	assert.Equal(t, "+35699990000", b.CustomerPhone)
	assert.True(t, day.Equal(b.Date))
	assert.Nil(t, b.CleanupAmount)
	assert.Nil(t, resp.Commission)
	assert.Equal(t, 1, f.tx.calls)

	f.bookings.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestUseCase_Execute_CleanupContributionUsesFixedAmount(t *testing.T) {
	f := newFixture()
	f.expectLookups()
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()
	f.expectCreated()

	req := validRequest()
	req.CleanupContribution = true

	resp, err := f.useCase(1, false).Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Booking.CleanupAmount)
	assert.Equal(t, "5", resp.Booking.CleanupAmount.String())
}

func TestUseCase_Execute_AffiliateCommission(t *testing.T) {
	f := newFixture()
	f.expectLookups()
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()
	f.expectCreated()

	f.affiliate.On("GetLinkByID", mock.Anything, int64(9)).
		Return(&domain.AffiliateLink{ID: 9, IsActive: true, CommissionRate: decimal.NewFromInt(10)}, nil).Once()
	f.affiliate.On("CreateCommission", mock.Anything, mock.MatchedBy(func(tx *domain.CommissionTransaction) bool {
		return tx.AffiliateLinkID == 9 && tx.BookingID == 42 &&
			tx.Status == domain.CommissionPending && tx.Amount.Equal(decimal.NewFromInt(7))
	})).Return(func(_ context.Context, tx *domain.CommissionTransaction) *domain.CommissionTransaction {
		tx.ID = 100
		return tx
	}, nil).Once()

	req := validRequest()
	req.AffiliateLinkID = ptr.Ptr(int64(9))

	resp, err := f.useCase(1, false).Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Commission)
	assert.Equal(t, int64(100), resp.Commission.ID)

	f.affiliate.AssertExpectations(t)
}

func TestUseCase_Execute_OverbookingAllowed(t *testing.T) {
	f := newFixture()
	f.expectLookups()
	full := []*domain.Booking{{ID: 1, TimeSlot: "12:00-15:00", Status: domain.BookingStatusPending, BBQCount: 1}}
	f.bookings.On("List", mock.Anything, mock.Anything).Return(full, nil).Once()
	f.expectCreated()

	_, err := f.useCase(1, true).Execute(context.Background(), validRequest())
	require.NoError(t, err)
	f.bookings.AssertExpectations(t)
}

// ============================ Ошибки ============================

func TestUseCase_Execute_SlotFull(t *testing.T) {
	f := newFixture()
	f.expectLookups()
	full := []*domain.Booking{{ID: 1, TimeSlot: "12:00-15:00", Status: domain.BookingStatusConfirmed, BBQCount: 1}}
	f.bookings.On("List", mock.Anything, mock.Anything).Return(full, nil).Once()

	_, err := f.useCase(1, false).Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_OtherSlotDoesNotConsumeCapacity(t *testing.T) {
	f := newFixture()
	f.expectLookups()
	other := []*domain.Booking{{ID: 1, TimeSlot: "16:00-19:00", Status: domain.BookingStatusConfirmed, BBQCount: 1}}
	f.bookings.On("List", mock.Anything, mock.Anything).Return(other, nil).Once()
	f.expectCreated()

	_, err := f.useCase(1, false).Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "неизвестный слот",
			mutate:  func(r *Request) { r.TimeSlot = "09:00-12:00" },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "битая дата",
			mutate:  func(r *Request) { r.Date = "not-a-date" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "нулевое количество BBQ",
			mutate:  func(r *Request) { r.BBQCount = ptr.Ptr(0) },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "короткий телефон",
			mutate:  func(r *Request) { r.CustomerPhone = "123" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "нет пляжа",
			mutate:  func(r *Request) { r.LocationID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name: "отрицательный взнос",
			mutate: func(r *Request) {
				r.CleanupContribution = true
				r.CleanupAmount = ptr.Ptr(decimal.NewFromInt(-1))
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.useCase(1, false).Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.tx.calls)
		})
	}
}

func TestUseCase_Execute_PackageNotFound(t *testing.T) {
	f := newFixture()
	f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil).Once()
	f.catalog.On("GetLocation", mock.Anything, int64(2)).Return(&domain.Location{ID: 2}, nil).Once()
	f.catalog.On("GetPackage", mock.Anything, int64(3)).Return(nil, catalogRepo.ErrPackageNotFound).Once()

	_, err := f.useCase(1, false).Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestUseCase_Execute_InactiveAffiliateLink(t *testing.T) {
	f := newFixture()
	f.expectLookups()
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()
	f.affiliate.On("GetLinkByID", mock.Anything, int64(9)).
		Return(&domain.AffiliateLink{ID: 9, IsActive: false}, nil).Once()

	req := validRequest()
	req.AffiliateLinkID = ptr.Ptr(int64(9))

	_, err := f.useCase(1, false).Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAffiliateLinkNotFound)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_UnknownAffiliateLink(t *testing.T) {
	f := newFixture()
	f.expectLookups()
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()
	f.affiliate.On("GetLinkByID", mock.Anything, int64(9)).Return(nil, affiliateRepo.ErrLinkNotFound).Once()

	req := validRequest()
	req.AffiliateLinkID = ptr.Ptr(int64(9))

	_, err := f.useCase(1, false).Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAffiliateLinkNotFound)
}

func TestUseCase_Execute_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.expectLookups()
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()
	f.bookings.On("Create", mock.Anything, mock.Anything).
		Return(func(_ context.Context, b *domain.Booking) *domain.Booking { return b }, nil).Once()
	f.notifier.On("Refresh", mock.Anything, day).Once()
	f.publisher.On("PublishBooking", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("kafka down")).Once()

	resp, err := f.useCase(1, false).Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp.Booking)
}
