package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

// UseCase расчет доступности оборудования по слотам дня
type UseCase struct {
	bookingRepo BookingRepository
	slots       *domain.SlotTable
	maxUnits    int
	location    *time.Location
	cache       AvailabilityCache
	publisher   Publisher
	metrics     Metrics
	logger      Logger
}

// Option необязательная зависимость use case
type Option func(*UseCase)

// WithCache включает кеш снимков в Redis
func WithCache(cache AvailabilityCache) Option {
	return func(uc *UseCase) { uc.cache = cache }
}

// WithPublisher включает публикацию availability_update
func WithPublisher(publisher Publisher) Option {
	return func(uc *UseCase) { uc.publisher = publisher }
}

// WithMetrics включает счетчик кеша
func WithMetrics(m Metrics) Option {
	return func(uc *UseCase) { uc.metrics = m }
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slots *domain.SlotTable,
	maxUnits int,
	location *time.Location,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		bookingRepo: bookingRepo,
		slots:       slots,
		maxUnits:    maxUnits,
		location:    location,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute возвращает доступность на дату.
// Результат - снимок на момент чтения, гонка с параллельным созданием допустима.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация даты
	date, err := parseRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Пробуем снимок из кеша
	if uc.cache != nil {
		slots, ok, err := uc.cache.Get(ctx, date)
		switch {
		case err != nil:
			uc.observeCache(cacheError)
			uc.logger.Warn("GetAvailableSlots: cache read failed date=%s: %v", date.Format(domain.DateFormat), err)
		case ok:
			uc.observeCache(cacheHit)
			return &Response{Date: date, Slots: slots}, nil
		default:
			uc.observeCache(cacheMiss)
		}
	}

	// 3. Считаем по бронированиям дня
	slots, err := uc.calculate(ctx, date)
	if err != nil {
		return nil, err
	}

	// 4. Сохраняем снимок
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, date, slots); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache write failed date=%s: %v", date.Format(domain.DateFormat), err)
		}
	}

	uc.logger.Info("GetAvailableSlots: date=%s slots=%d", date.Format(domain.DateFormat), len(slots))

	return &Response{Date: date, Slots: slots}, nil
}

// Refresh сбрасывает снимок дня и рассылает пересчитанную доступность.
// Вызывается после изменения бронирований; ошибки только логируются.
func (uc *UseCase) Refresh(ctx context.Context, date time.Time) {
	day := domain.CalendarDay(date, time.UTC)

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, day); err != nil {
			uc.logger.Warn("RefreshAvailability: cache invalidate failed date=%s: %v", day.Format(domain.DateFormat), err)
		}
	}

	if uc.publisher == nil {
		return
	}

	slots, err := uc.calculate(ctx, day)
	if err != nil {
		uc.logger.Warn("RefreshAvailability: recalculation failed date=%s: %v", day.Format(domain.DateFormat), err)
		return
	}

	if err := uc.publisher.PublishAvailability(ctx, day, slots); err != nil {
		uc.logger.Warn("RefreshAvailability: publish failed date=%s: %v", day.Format(domain.DateFormat), err)
	}
}

func (uc *UseCase) calculate(ctx context.Context, date time.Time) ([]domain.SlotAvailability, error) {
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingFilter{Date: &date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return domain.CalculateAvailability(uc.slots, uc.maxUnits, bookings), nil
}

func (uc *UseCase) observeCache(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveCache(result)
	}
}
