package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	userRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/user"
	"github.com/m04kA/BBQ-RentalService/internal/service/identity/models"
	"github.com/m04kA/BBQ-RentalService/pkg/password"
)

// Service регистрация, вход и профиль пользователей
type Service struct {
	userRepo   UserRepository
	txManager  TransactionManager
	issuer     TokenIssuer
	bcryptCost int
	validate   *validator.Validate
	logger     Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(
	userRepo UserRepository,
	txManager TransactionManager,
	issuer TokenIssuer,
	bcryptCost int,
	logger Logger,
) *Service {
	return &Service{
		userRepo:   userRepo,
		txManager:  txManager,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Register создает пользователя и сразу открывает сессию.
// Первый зарегистрированный пользователь становится администратором;
// подсчет и вставка идут в одной сериализуемой транзакции.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	s.logger.Info("Register: username=%s", req.Username)

	// 1. Валидация
	user, err := s.validateRegister(req)
	if err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	// 2. Хэш пароля вне транзакции
	hash, err := password.Hash(req.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash: %v", ErrInternal, err)
	}
	user.PasswordHash = hash

	// 3. Подсчет и вставка
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := s.userRepo.Count(txCtx)
		if err != nil {
			s.logger.Error("Register: failed to count users: %v", err)
			return fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
		}
		user.IsAdmin = count == 0

		if _, err := s.userRepo.Create(txCtx, user); err != nil {
			if errors.Is(err, userRepo.ErrUsernameTaken) {
				s.logger.Warn("Register: username=%s already taken", user.Username)
				return ErrUsernameTaken
			}
			s.logger.Error("Register: failed to create user: %v", err)
			return fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Register: created user id=%d admin=%t", user.ID, user.IsAdmin)
	return s.session(user)
}

// Login проверяет пароль и выдает сессию
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown username=%s", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if !password.Verify(user.PasswordHash, req.Password) {
		s.logger.Warn("Login: wrong password for username=%s", username)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Login: user id=%d signed in", user.ID)
	return s.session(user)
}

// Me профиль пользователя сессии
func (s *Service) Me(ctx context.Context, userID int64) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, "Me", userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainUser(user), nil
}

// SetAdmin выдает или снимает права администратора
func (s *Service) SetAdmin(ctx context.Context, userID int64, isAdmin bool) (*models.UserResponse, error) {
	s.logger.Info("SetAdmin: user id=%d admin=%t", userID, isAdmin)

	if err := s.userRepo.SetAdmin(ctx, userID, isAdmin); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("SetAdmin: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("SetAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: SetAdmin - repository error: %v", ErrInternal, err)
	}

	return s.Me(ctx, userID)
}

func (s *Service) getUser(ctx context.Context, op string, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", op, id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return user, nil
}

func (s *Service) session(user *domain.User) (*models.AuthResponse, error) {
	token, exp, err := s.issuer.IssueUser(user.ID, user.IsAdmin)
	if err != nil {
		s.logger.Error("session: failed to issue token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: token: %v", ErrInternal, err)
	}
	return &models.AuthResponse{Token: token, ExpiresAt: exp, User: models.FromDomainUser(user)}, nil
}

func (s *Service) validateRegister(req *models.RegisterRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if utf8.RuneCountInString(username) < domain.MinUsernameLength {
		return nil, fmt.Errorf("%w: username must be at least %d characters", ErrInvalidInput, domain.MinUsernameLength)
	}

	if utf8.RuneCountInString(req.Password) < domain.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}

	email := strings.TrimSpace(req.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	phone := strings.TrimSpace(req.Phone)
	if len(phone) < domain.MinPhoneLength {
		return nil, fmt.Errorf("%w: phone must be at least %d characters", ErrInvalidInput, domain.MinPhoneLength)
	}

	return &domain.User{
		Username: username,
		Email:    email,
		Phone:    phone,
		Balance:  decimal.Zero,
	}, nil
}
