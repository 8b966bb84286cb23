package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	bookingModels "github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
	"github.com/m04kA/BBQ-RentalService/internal/service/driver/models"
	"github.com/m04kA/BBQ-RentalService/pkg/auth"
)

// Service операции водителя поверх журнала бронирований
type Service struct {
	bookingRepo BookingRepository
	updater     BookingUpdater
	issuer      TokenIssuer
	codes       map[string]struct{}
	logger      Logger
}

// NewService создает новый экземпляр сервиса водителей
func NewService(
	bookingRepo BookingRepository,
	updater BookingUpdater,
	issuer TokenIssuer,
	driverCodes []string,
	logger Logger,
) *Service {
	codes := make(map[string]struct{}, len(driverCodes))
	for _, c := range driverCodes {
		if c = strings.TrimSpace(c); c != "" {
			codes[c] = struct{}{}
		}
	}

	return &Service{
		bookingRepo: bookingRepo,
		updater:     updater,
		issuer:      issuer,
		codes:       codes,
		logger:      logger,
	}
}

// Login проверяет код по списку разрешенных и выдает водительскую сессию
func (s *Service) Login(ctx context.Context, code string) (*models.LoginResponse, error) {
	code = strings.TrimSpace(code)
	if _, ok := s.codes[code]; !ok || code == "" {
		s.logger.Warn("Login: rejected driver code")
		return nil, ErrInvalidDriverCode
	}

	token, exp, err := s.issuer.IssueDriver()
	if err != nil {
		s.logger.Error("Login: failed to issue token: %v", err)
		return nil, fmt.Errorf("%w: Login - token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: driver session issued")
	return &models.LoginResponse{Token: token, ExpiresAt: exp, Role: auth.RoleDriver}, nil
}

// ListDeliveries подтвержденные бронирования, которые еще не доставлены
func (s *Service) ListDeliveries(ctx context.Context) (*bookingModels.BookingListResponse, error) {
	return s.list(ctx, "ListDeliveries", domain.BookingFilter{
		Statuses:         []domain.BookingStatus{domain.BookingStatusConfirmed},
		DeliveryStatuses: []domain.DeliveryStatus{domain.DeliveryStatusScheduled, domain.DeliveryStatusInTransit},
	})
}

// ListPickups доставленное оборудование, которое ждет вывоза, в том числе по отмененным бронированиям
func (s *Service) ListPickups(ctx context.Context) (*bookingModels.BookingListResponse, error) {
	return s.list(ctx, "ListPickups", domain.BookingFilter{
		DeliveryStatuses: []domain.DeliveryStatus{domain.DeliveryStatusDelivered},
		IncludeCancelled: true,
	})
}

func (s *Service) list(ctx context.Context, op string, filter domain.BookingFilter) (*bookingModels.BookingListResponse, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d bookings", op, len(bookings))
	return bookingModels.FromDomainBookingList(bookings), nil
}

// Advance переводит доставку на следующий шаг; ошибки переходов отдает сервис бронирований
func (s *Service) Advance(ctx context.Context, bookingID int64, deliveryStatus string) (*bookingModels.BookingResponse, error) {
	deliveryStatus = strings.TrimSpace(deliveryStatus)
	if deliveryStatus == "" {
		return nil, fmt.Errorf("%w: deliveryStatus is required", ErrInvalidInput)
	}

	s.logger.Info("Advance: booking id=%d to delivery=%s", bookingID, deliveryStatus)
	return s.updater.Update(ctx, bookingID, &bookingModels.UpdateBookingRequest{
		DeliveryStatus: &deliveryStatus,
	})
}
