package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	affiliateRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/affiliate"
	catalogRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/catalog"
	userRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/user"
)

// Тип события о созданном бронировании
const eventBookingCreated = "booking_created"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	userRepo      UserRepository
	catalogRepo   CatalogRepository
	affiliateRepo AffiliateRepository
	txManager     TransactionManager
	availability  AvailabilityNotifier
	publisher     Publisher
	metrics       Metrics
	settings      Settings
	logger        Logger
}

// NewUseCase создает новый экземпляр use case.
// publisher может быть nil, если Kafka выключена.
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	catalogRepo CatalogRepository,
	affiliateRepo AffiliateRepository,
	txManager TransactionManager,
	availability AvailabilityNotifier,
	publisher Publisher,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		userRepo:      userRepo,
		catalogRepo:   catalogRepo,
		affiliateRepo: affiliateRepo,
		txManager:     txManager,
		availability:  availability,
		publisher:     publisher,
		metrics:       metrics,
		settings:      settings,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка вместимости и запись выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, location=%d, package=%d, date=%s, slot=%s",
		req.UserID, req.LocationID, req.PackageID, req.Date, req.TimeSlot)

	// 1. Валидация входных данных
	d, err := validateRequest(req, uc.settings)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.BookingRejected("validation")
		return nil, err
	}

	// 2. Получаем пользователя для денормализации контактов
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 3. Проверяем пляж и пакет
	if _, err := uc.catalogRepo.GetLocation(ctx, req.LocationID); err != nil {
		if errors.Is(err, catalogRepo.ErrLocationNotFound) {
			uc.logger.Warn("CreateBooking: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	pkg, err := uc.catalogRepo.GetPackage(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPackageNotFound) {
			uc.logger.Warn("CreateBooking: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CreateBooking: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	booking := &domain.Booking{
		UserID:              req.UserID,
		LocationID:          req.LocationID,
		PackageID:           req.PackageID,
		CustomerName:        firstNonEmpty(req.CustomerName, user.Username),
		CustomerPhone:       firstNonEmpty(req.CustomerPhone, user.Phone),
		Date:                d.date,
		TimeSlot:            d.timeSlot,
		Status:              domain.BookingStatusPending,
		PaymentStatus:       domain.PaymentStatusUnpaid,
		DeliveryStatus:      domain.DeliveryStatusScheduled,
		BBQCount:            d.bbqCount,
		CleanupContribution: req.CleanupContribution,
		CleanupAmount:       d.cleanupAmount,
		AffiliateLinkID:     req.AffiliateLinkID,
		Notes:               req.Notes,
	}

	var commission *domain.CommissionTransaction

	// 4. Выполняем операции с хранилищем в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Активные бронирования дня с блокировкой
		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingFilter{Date: &d.date})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.2. Проверяем остаток оборудования в слоте
		consumed := domain.ConsumedUnits(bookings, d.timeSlot)
		if consumed+d.bbqCount > uc.settings.MaxUnits {
			if !uc.settings.AllowOverbooking {
				uc.logger.Warn("CreateBooking: slot %s on %s is full, %d/%d units taken",
					d.timeSlot, d.date.Format(domain.DateFormat), consumed, uc.settings.MaxUnits)
				return ErrSlotNotAvailable
			}
			uc.logger.Warn("CreateBooking: overbooking slot %s on %s, %d+%d/%d units",
				d.timeSlot, d.date.Format(domain.DateFormat), consumed, d.bbqCount, uc.settings.MaxUnits)
		}

		// 4.3. Реферальная ссылка должна существовать и быть активной
		var link *domain.AffiliateLink
		if req.AffiliateLinkID != nil {
			link, err = uc.affiliateRepo.GetLinkByID(txCtx, *req.AffiliateLinkID)
			if errors.Is(err, affiliateRepo.ErrLinkNotFound) || (err == nil && !link.IsActive) {
				uc.logger.Warn("CreateBooking: affiliate link id=%d not found or inactive", *req.AffiliateLinkID)
				return ErrAffiliateLinkNotFound
			}
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get affiliate link: %v", err)
				return fmt.Errorf("%w: failed to get affiliate link: %v", ErrInternal, err)
			}
		}

		// 4.4. Сохраняем бронирование
		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 4.5. Начисляем комиссию по ссылке
		if link != nil {
			commission, err = uc.affiliateRepo.CreateCommission(txCtx, &domain.CommissionTransaction{
				AffiliateLinkID: link.ID,
				BookingID:       booking.ID,
				Amount:          link.CommissionFor(pkg.Price),
				Status:          domain.CommissionPending,
			})
			if err != nil {
				uc.logger.Error("CreateBooking: failed to create commission: %v", err)
				return fmt.Errorf("%w: failed to create commission: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.BookingRejected("slot_full")
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", booking.ID)
	uc.metrics.BookingCreated(string(booking.TimeSlot))

	// 5. Уведомления после фиксации транзакции
	uc.availability.Refresh(ctx, booking.Date)
	if uc.publisher != nil {
		if err := uc.publisher.PublishBooking(ctx, eventBookingCreated, booking); err != nil {
			uc.logger.Warn("CreateBooking: failed to publish event booking id=%d: %v", booking.ID, err)
		}
	}

	return &Response{Booking: booking, Commission: commission}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
