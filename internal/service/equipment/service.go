package equipment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/booking"
	equipmentRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/equipment"
	"github.com/m04kA/BBQ-RentalService/internal/service/equipment/models"
	"github.com/m04kA/BBQ-RentalService/pkg/ptr"
)

// Service реестр оборудования.
// Связь единица <-> бронирование меняется только вместе на обеих записях.
type Service struct {
	equipmentRepo EquipmentRepository
	bookingRepo   BookingRepository
	txManager     TransactionManager
	availability  AvailabilityNotifier
	metrics       Metrics
	logger        Logger
	now           func() time.Time
}

// NewService создает новый экземпляр сервиса оборудования
func NewService(
	equipmentRepo EquipmentRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	availability AvailabilityNotifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		equipmentRepo: equipmentRepo,
		bookingRepo:   bookingRepo,
		txManager:     txManager,
		availability:  availability,
		metrics:       metrics,
		logger:        logger,
		now:           time.Now,
	}
}

// Create регистрирует новую единицу в статусе available
func (s *Service) Create(ctx context.Context, req *models.CreateEquipmentRequest) (*models.EquipmentResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > domain.MaxEquipmentNameLength {
		s.logger.Warn("Create: invalid equipment name %q", req.Name)
		return nil, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxEquipmentNameLength)
	}

	created, err := s.equipmentRepo.Create(ctx, &domain.Equipment{
		Name:   name,
		Status: domain.EquipmentAvailable,
		Notes:  req.Notes,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: registered equipment id=%d name=%s", created.ID, created.Name)
	return models.FromDomainEquipment(created), nil
}

// List все единицы оборудования
func (s *Service) List(ctx context.Context) (*models.EquipmentListResponse, error) {
	return s.list(ctx, "List", nil)
}

// ListAvailable единицы, которые можно закрепить за бронированием
func (s *Service) ListAvailable(ctx context.Context) (*models.EquipmentListResponse, error) {
	status := domain.EquipmentAvailable
	return s.list(ctx, "ListAvailable", &status)
}

func (s *Service) list(ctx context.Context, op string, status *domain.EquipmentStatus) (*models.EquipmentListResponse, error) {
	list, err := s.equipmentRepo.List(ctx, status)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d units", op, len(list))
	return models.FromDomainEquipmentList(list), nil
}

// Get единица по id
func (s *Service) Get(ctx context.Context, id int64) (*models.EquipmentResponse, error) {
	unit, err := s.getUnit(ctx, "Get", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainEquipment(unit), nil
}

// Assign закрепляет свободную единицу за бронированием: единица уходит в in_use,
// бронирование получает assignedBbqId. Обе записи меняются в одной транзакции.
func (s *Service) Assign(ctx context.Context, unitID, bookingID int64) (*models.EquipmentResponse, error) {
	s.logger.Info("Assign: unit=%d booking=%d", unitID, bookingID)

	var (
		unit    *domain.Equipment
		booking *domain.Booking
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		// 1. Единица должна быть свободна
		unit, err = s.getUnit(txCtx, "Assign", unitID)
		if err != nil {
			return err
		}
		if !unit.IsAvailable() {
			s.logger.Warn("Assign: unit id=%d is %s", unitID, unit.Status)
			return fmt.Errorf("%w: unit %d is %s", ErrUnitNotAvailable, unitID, unit.Status)
		}

		// 2. Бронирование активно и еще без оборудования
		booking, err = s.getBooking(txCtx, "Assign", bookingID)
		if err != nil {
			return err
		}
		if booking.Status == domain.BookingStatusCancelled || booking.Status == domain.BookingStatusCompleted {
			s.logger.Warn("Assign: booking id=%d is %s", bookingID, booking.Status)
			return fmt.Errorf("%w: booking %d is %s", ErrBookingNotAssignable, bookingID, booking.Status)
		}
		if booking.AssignedBBQID != nil {
			s.logger.Warn("Assign: booking id=%d already has unit id=%d", bookingID, *booking.AssignedBBQID)
			return ErrBookingAlreadyAssigned
		}

		// 3. Записываем обе стороны связи
		from := unit.Status
		unit.Status = domain.EquipmentInUse
		unit.CurrentBookingID = &booking.ID
		if err := s.saveUnit(txCtx, "Assign", unit); err != nil {
			return err
		}

		booking.AssignedBBQID = &unit.ID
		if err := s.saveBooking(txCtx, "Assign", booking); err != nil {
			return err
		}

		s.metrics.EquipmentTransition(string(from), string(unit.Status))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Assign: unit id=%d assigned to booking id=%d", unitID, bookingID)
	s.availability.Refresh(ctx, booking.Date)

	return models.FromDomainEquipment(unit), nil
}

// Release возвращает единицу с пляжа: она уходит на чистку, связь
// с бронированием снимается на обеих записях. Свободную или уже
// находящуюся на чистке единицу освободить нельзя.
func (s *Service) Release(ctx context.Context, unitID int64) (*models.EquipmentResponse, error) {
	s.logger.Info("Release: unit=%d", unitID)

	var (
		unit     *domain.Equipment
		released *domain.Booking
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		unit, err = s.getUnit(txCtx, "Release", unitID)
		if err != nil {
			return err
		}
		if !unit.CanRelease() {
			s.logger.Warn("Release: unit id=%d is %s", unitID, unit.Status)
			return fmt.Errorf("%w: unit %d is %s", ErrCannotRelease, unitID, unit.Status)
		}

		from := unit.Status
		released, err = s.unlinkBooking(txCtx, "Release", unit)
		if err != nil {
			return err
		}

		unit.ApplyStatus(domain.EquipmentCleaning, s.now().UTC())
		if err := s.saveUnit(txCtx, "Release", unit); err != nil {
			return err
		}

		s.metrics.EquipmentTransition(string(from), string(unit.Status))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Release: unit id=%d moved to cleaning", unitID)
	if released != nil {
		s.availability.Refresh(ctx, released.Date)
	}

	return models.FromDomainEquipment(unit), nil
}

// UpdateStatus ручная смена статуса администратором.
// cleaning -> available отмечает lastCleaned, maintenance -> available - lastMaintenance.
// Уход закрепленной единицы в нетранзитный статус снимает связь с бронированием.
func (s *Service) UpdateStatus(ctx context.Context, unitID int64, req *models.UpdateStatusRequest) (*models.EquipmentResponse, error) {
	s.logger.Info("UpdateStatus: unit=%d status=%s", unitID, req.Status)

	to, err := domain.ParseEquipmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		unit     *domain.Equipment
		released *domain.Booking
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		unit, err = s.getUnit(txCtx, "UpdateStatus", unitID)
		if err != nil {
			return err
		}

		if err := domain.CheckAdminOverride(unit, to); err != nil {
			s.logger.Warn("UpdateStatus: unit id=%d: %v", unitID, err)
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		from := unit.Status
		if unit.IsLinked() && !to.KeepsBookingLink() {
			released, err = s.unlinkBooking(txCtx, "UpdateStatus", unit)
			if err != nil {
				return err
			}
		}

		unit.ApplyStatus(to, s.now().UTC())
		if req.Notes != nil {
			unit.Notes = req.Notes
		}

		if err := s.saveUnit(txCtx, "UpdateStatus", unit); err != nil {
			return err
		}

		if from != to {
			s.metrics.EquipmentTransition(string(from), string(to))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: unit id=%d is %s", unitID, unit.Status)
	if released != nil {
		s.availability.Refresh(ctx, released.Date)
	}

	return models.FromDomainEquipment(unit), nil
}

// unlinkBooking снимает ссылку бронирования на единицу, если она указывает на нее
func (s *Service) unlinkBooking(ctx context.Context, op string, unit *domain.Equipment) (*domain.Booking, error) {
	if !unit.IsLinked() {
		return nil, nil
	}

	booking, err := s.bookingRepo.GetByID(ctx, *unit.CurrentBookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: linked booking id=%d is gone", op, *unit.CurrentBookingID)
			unit.CurrentBookingID = nil
			return nil, nil
		}
		s.logger.Error("%s: failed to get booking id=%d: %v", op, *unit.CurrentBookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.AssignedBBQID != nil && *booking.AssignedBBQID == unit.ID {
		booking.AssignedBBQID = nil
		if err := s.saveBooking(ctx, op, booking); err != nil {
			return nil, err
		}
	}

	unit.CurrentBookingID = nil
	return booking, nil
}

func (s *Service) getUnit(ctx context.Context, op string, id int64) (*domain.Equipment, error) {
	unit, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			s.logger.Warn("%s: unit id=%d not found", op, id)
			return nil, ErrEquipmentNotFound
		}
		s.logger.Error("%s: repository error for unit id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return unit, nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) saveUnit(ctx context.Context, op string, unit *domain.Equipment) error {
	if err := s.equipmentRepo.Update(ctx, unit); err != nil {
		switch {
		case errors.Is(err, equipmentRepo.ErrEquipmentNotFound):
			return ErrEquipmentNotFound
		case errors.Is(err, equipmentRepo.ErrBookingAlreadyLinked):
			s.logger.Warn("%s: booking id=%d is linked to another unit", op, ptr.Value(unit.CurrentBookingID))
			return ErrBookingAlreadyAssigned
		}
		s.logger.Error("%s: failed to save unit id=%d: %v", op, unit.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}

func (s *Service) saveBooking(ctx context.Context, op string, booking *domain.Booking) error {
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("%s: failed to save booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}
