package affiliate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	affiliateRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/affiliate"
	bookingRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/user"
	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate/models"
)

var customURLPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

// Service реферальные ссылки и журнал начислений
type Service struct {
	affiliateRepo AffiliateRepository
	userRepo      UserRepository
	bookingRepo   BookingRepository
	txManager     TransactionManager
	metrics       Metrics
	logger        Logger
	now           func() time.Time
}

// NewService создает новый экземпляр сервиса ссылок
func NewService(
	affiliateRepo AffiliateRepository,
	userRepo UserRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		affiliateRepo: affiliateRepo,
		userRepo:      userRepo,
		bookingRepo:   bookingRepo,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
		now:           time.Now,
	}
}

// CreateLink создает активную ссылку для пользователя
func (s *Service) CreateLink(ctx context.Context, req *models.CreateLinkRequest) (*models.LinkResponse, error) {
	s.logger.Info("CreateLink: user=%d", req.UserID)

	// 1. Валидация
	rate := decimal.NewFromInt(domain.DefaultCommissionRate)
	if req.CommissionRate != nil {
		rate = *req.CommissionRate
	}
	if rate.LessThan(decimal.NewFromInt(domain.MinCommissionRate)) || rate.GreaterThan(decimal.NewFromInt(domain.MaxCommissionRate)) {
		s.logger.Warn("CreateLink: commission rate %s out of range", rate)
		return nil, fmt.Errorf("%w: commissionRate must be between %d and %d", ErrInvalidInput, domain.MinCommissionRate, domain.MaxCommissionRate)
	}

	customURL := ""
	if req.CustomURL != nil {
		customURL = strings.TrimSpace(*req.CustomURL)
	}
	if customURL == "" {
		customURL = "ref-" + strings.Split(uuid.NewString(), "-")[0]
	}
	if !customURLPattern.MatchString(customURL) {
		s.logger.Warn("CreateLink: invalid custom url %q", customURL)
		return nil, fmt.Errorf("%w: customUrl must be 3..64 letters, digits, '-' or '_'", ErrInvalidInput)
	}

	// 2. Владелец должен существовать
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("CreateLink: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("CreateLink: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: CreateLink - repository error: %v", ErrInternal, err)
	}

	// 3. Сохраняем
	link, err := s.affiliateRepo.CreateLink(ctx, &domain.AffiliateLink{
		UserID:         req.UserID,
		CustomURL:      customURL,
		CommissionRate: rate.Round(2),
		IsActive:       true,
	})
	if err != nil {
		if errors.Is(err, affiliateRepo.ErrURLTaken) {
			s.logger.Warn("CreateLink: url %s already taken", customURL)
			return nil, ErrURLTaken
		}
		s.logger.Error("CreateLink: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateLink - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateLink: created link id=%d url=%s", link.ID, link.CustomURL)
	return models.FromDomainLink(link), nil
}

// ListLinks все ссылки, новые первыми
func (s *Service) ListLinks(ctx context.Context) (*models.LinkListResponse, error) {
	links, err := s.affiliateRepo.ListLinks(ctx)
	if err != nil {
		s.logger.Error("ListLinks: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLinks - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainLinkList(links), nil
}

// Click учитывает переход по ссылке; отключенная ссылка считается несуществующей
func (s *Service) Click(ctx context.Context, customURL string) (*models.LinkResponse, error) {
	customURL = strings.TrimSpace(customURL)

	link, err := s.affiliateRepo.GetLinkByURL(ctx, customURL)
	if err != nil {
		if errors.Is(err, affiliateRepo.ErrLinkNotFound) {
			s.logger.Warn("Click: url %s not found", customURL)
			return nil, ErrLinkNotFound
		}
		s.logger.Error("Click: repository error: %v", err)
		return nil, fmt.Errorf("%w: Click - repository error: %v", ErrInternal, err)
	}
	if !link.IsActive {
		s.logger.Warn("Click: link id=%d is inactive", link.ID)
		return nil, ErrLinkNotFound
	}

	if err := s.affiliateRepo.IncrementClicks(ctx, link.ID); err != nil {
		s.logger.Error("Click: failed to count click for link id=%d: %v", link.ID, err)
		return nil, fmt.Errorf("%w: Click - repository error: %v", ErrInternal, err)
	}
	link.Clicks++

	return models.FromDomainLink(link), nil
}

// ListCommissions начисления с необязательным фильтром по статусу
func (s *Service) ListCommissions(ctx context.Context, status *string) (*models.CommissionListResponse, error) {
	var filter *domain.CommissionStatus
	if status != nil {
		st := domain.CommissionStatus(*status)
		if st != domain.CommissionPending && st != domain.CommissionProcessed {
			return nil, fmt.Errorf("%w: unknown commission status %q", ErrInvalidInput, *status)
		}
		filter = &st
	}

	list, err := s.affiliateRepo.ListCommissions(ctx, filter)
	if err != nil {
		s.logger.Error("ListCommissions: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCommissions - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCommissionList(list), nil
}

// ProcessCommission проводит начисление: pending -> processed, баланс владельца
// ссылки и накопленная комиссия ссылки растут на сумму, бронирование
// отмечается как оплаченное комиссией. Все записи - в одной транзакции.
func (s *Service) ProcessCommission(ctx context.Context, id int64) (*models.CommissionResponse, error) {
	s.logger.Info("ProcessCommission: commission id=%d", id)

	var commission *domain.CommissionTransaction

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		// 1. Начисление с блокировкой, проводится один раз
		commission, err = s.affiliateRepo.GetCommission(txCtx, id)
		if err != nil {
			if errors.Is(err, affiliateRepo.ErrCommissionNotFound) {
				s.logger.Warn("ProcessCommission: commission id=%d not found", id)
				return ErrCommissionNotFound
			}
			return s.internal("get commission", err)
		}
		if commission.IsProcessed() {
			s.logger.Warn("ProcessCommission: commission id=%d already processed", id)
			return ErrAlreadyProcessed
		}

		link, err := s.affiliateRepo.GetLinkByID(txCtx, commission.AffiliateLinkID)
		if err != nil {
			return s.internal("get link", err)
		}

		// 2. Проводим начисление
		processedAt := s.now().UTC()
		if err := s.affiliateRepo.MarkProcessed(txCtx, commission.ID, processedAt); err != nil {
			return s.internal("mark processed", err)
		}
		commission.Status = domain.CommissionProcessed
		commission.ProcessedAt = &processedAt

		// 3. Баланс владельца и итог ссылки
		if err := s.userRepo.AddBalance(txCtx, link.UserID, commission.Amount); err != nil {
			return s.internal("add balance", err)
		}
		if err := s.affiliateRepo.AddCommission(txCtx, link.ID, commission.Amount); err != nil {
			return s.internal("add link commission", err)
		}

		// 4. Отметка на бронировании
		booking, err := s.bookingRepo.GetByID(txCtx, commission.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("ProcessCommission: booking id=%d is gone", commission.BookingID)
				return nil
			}
			return s.internal("get booking", err)
		}
		booking.CommissionPaid = true
		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			return s.internal("update booking", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.CommissionProcessed()
	s.logger.Info("ProcessCommission: processed commission id=%d amount=%s", id, commission.Amount)
	return models.FromDomainCommission(commission), nil
}

func (s *Service) internal(step string, err error) error {
	s.logger.Error("ProcessCommission: failed to %s: %v", step, err)
	return fmt.Errorf("%w: ProcessCommission - %s: %v", ErrInternal, step, err)
}
