package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/booking"
	equipmentRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/equipment"
	"github.com/m04kA/BBQ-RentalService/internal/service/bookings/models"
)

// Тип события об изменении бронирования
const eventBookingUpdated = "booking_updated"

// Settings параметры расписания из конфигурации
type Settings struct {
	Slots            *domain.SlotTable
	MaxUnits         int
	Location         *time.Location
	AllowOverbooking bool
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	equipmentRepo EquipmentRepository
	txManager    TransactionManager
	availability AvailabilityNotifier
	publisher    Publisher
	settings     Settings
	logger       Logger
	now          func() time.Time
}

// NewService создает новый экземпляр сервиса бронирований.
// publisher может быть nil, если Kafka выключена.
func NewService(
	bookingRepo BookingRepository,
	equipmentRepo EquipmentRepository,
	txManager TransactionManager,
	availability AvailabilityNotifier,
	publisher Publisher,
	settings Settings,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		txManager:     txManager,
		availability:  availability,
		publisher:     publisher,
		settings:      settings,
		logger:        logger,
		now:           time.Now,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только свои бронирования, администратор - любые.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// ListByUser история бронирований пользователя, включая отмененные
func (s *Service) ListByUser(ctx context.Context, userID int64) (*models.BookingListResponse, error) {
	s.logger.Info("ListByUser: fetching bookings for user=%d", userID)

	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{
		UserID:           &userID,
		IncludeCancelled: true,
	})
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByUser: successfully fetched %d bookings for user=%d", len(bookings), userID)
	return models.FromDomainBookingList(bookings), nil
}

// ListAll все бронирования с необязательными фильтрами (для администратора)
func (s *Service) ListAll(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := s.toFilter(req)
	if err != nil {
		s.logger.Warn("ListAll: invalid filter: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Update частично обновляет бронирование.
// Каждая ось статусов проверяется по таблице переходов, отметки времени
// доставки проставляются автоматически, перенос в другой слот проверяет вместимость.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d", id)

	// 1. Валидация и разбор патча
	patch, err := s.toPatch(req)
	if err != nil {
		s.logger.Warn("Update: invalid patch for booking id=%d: %v", id, err)
		return nil, err
	}

	var (
		updated  *domain.Booking
		prevDate time.Time
	)

	// 2. Чтение, проверка переходов и запись в одной транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Update: booking id=%d not found", id)
				return ErrBookingNotFound
			}
			s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if err := domain.CheckPatch(booking, patch); err != nil {
			s.logger.Warn("Update: booking id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		prevDate = booking.Date
		prevSlot := booking.TimeSlot
		wasOpen := booking.Status != domain.BookingStatusCancelled && booking.Status != domain.BookingStatusCompleted

		now := s.now().UTC()
		patch.StampDelivery(booking, now)
		patch.Apply(booking)

		// Закрытое бронирование отпускает единицу на чистку
		closed := booking.Status == domain.BookingStatusCancelled || booking.Status == domain.BookingStatusCompleted
		if wasOpen && closed && booking.AssignedBBQID != nil {
			if err := s.releaseUnit(txCtx, booking, now); err != nil {
				return err
			}
		}

		movedCell := !domain.SameDay(prevDate, booking.Date) || prevSlot != booking.TimeSlot
		if movedCell && booking.IsActive() {
			if err := s.checkCapacity(txCtx, booking); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Update: failed to save booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated booking id=%d status=%s payment=%s delivery=%s",
		id, updated.Status, updated.PaymentStatus, updated.DeliveryStatus)

	// 3. Уведомления после фиксации транзакции
	s.availability.Refresh(ctx, prevDate)
	if !domain.SameDay(prevDate, updated.Date) {
		s.availability.Refresh(ctx, updated.Date)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishBooking(ctx, eventBookingUpdated, updated); err != nil {
			s.logger.Warn("Update: failed to publish event booking id=%d: %v", id, err)
		}
	}

	return models.FromDomainBooking(updated), nil
}

// releaseUnit снимает связь единицы с бронированием и отправляет ее на чистку
func (s *Service) releaseUnit(ctx context.Context, booking *domain.Booking, now time.Time) error {
	unitID := *booking.AssignedBBQID
	booking.AssignedBBQID = nil

	unit, err := s.equipmentRepo.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			s.logger.Warn("Update: assigned unit id=%d for booking id=%d is gone", unitID, booking.ID)
			return nil
		}
		s.logger.Error("Update: failed to get unit id=%d: %v", unitID, err)
		return fmt.Errorf("%w: Update - equipment repository error: %v", ErrInternal, err)
	}

	if unit.CurrentBookingID == nil || *unit.CurrentBookingID != booking.ID {
		return nil
	}

	unit.ApplyStatus(domain.EquipmentCleaning, now)
	if err := s.equipmentRepo.Update(ctx, unit); err != nil {
		s.logger.Error("Update: failed to release unit id=%d: %v", unitID, err)
		return fmt.Errorf("%w: Update - equipment repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: unit id=%d released from booking id=%d", unitID, booking.ID)
	return nil
}

// checkCapacity остаток оборудования в ячейке без учета самого бронирования
func (s *Service) checkCapacity(ctx context.Context, booking *domain.Booking) error {
	sameDay, err := s.bookingRepo.List(ctx, domain.BookingFilter{Date: &booking.Date})
	if err != nil {
		s.logger.Error("Update: failed to get bookings: %v", err)
		return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	others := make([]*domain.Booking, 0, len(sameDay))
	for _, b := range sameDay {
		if b.ID != booking.ID {
			others = append(others, b)
		}
	}

	consumed := domain.ConsumedUnits(others, booking.TimeSlot)
	if consumed+booking.BBQCount <= s.settings.MaxUnits {
		return nil
	}
	if s.settings.AllowOverbooking {
		s.logger.Warn("Update: overbooking slot %s on %s, %d+%d/%d units",
			booking.TimeSlot, booking.Date.Format(domain.DateFormat), consumed, booking.BBQCount, s.settings.MaxUnits)
		return nil
	}

	s.logger.Warn("Update: slot %s on %s is full, %d/%d units taken",
		booking.TimeSlot, booking.Date.Format(domain.DateFormat), consumed, s.settings.MaxUnits)
	return ErrSlotNotAvailable
}
