package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	userRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/user"
)

// UserRepository пользователи в памяти
type UserRepository struct {
	s *Store
}

// Create регистрирует пользователя; имя уникально
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	err := r.s.run(ctx, func(st *state) error {
		for _, existing := range st.users {
			if existing.Username == u.Username {
				return userRepo.ErrUsernameTaken
			}
		}

		st.userSeq++
		u.ID = st.userSeq
		u.CreatedAt = r.s.now()

		st.users[u.ID] = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID пользователь по id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var out *domain.User
	err := r.s.run(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return userRepo.ErrUserNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

// GetByUsername пользователь по имени
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var out *domain.User
	err := r.s.run(ctx, func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				found := u
				out = &found
				return nil
			}
		}
		return userRepo.ErrUserNotFound
	})
	return out, err
}

// Count количество пользователей
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.s.run(ctx, func(st *state) error {
		count = int64(len(st.users))
		return nil
	})
	return count, err
}

// SetAdmin выставляет флаг администратора
func (r *UserRepository) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	return r.s.run(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return userRepo.ErrUserNotFound
		}
		u.IsAdmin = isAdmin
		st.users[id] = u
		return nil
	})
}

// AddBalance увеличивает баланс
func (r *UserRepository) AddBalance(ctx context.Context, id int64, amount decimal.Decimal) error {
	return r.s.run(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return userRepo.ErrUserNotFound
		}
		u.Balance = u.Balance.Add(amount)
		st.users[id] = u
		return nil
	})
}
