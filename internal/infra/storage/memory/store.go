// Package memory хранилище в памяти процесса с теми же контрактами,
// что и репозитории PostgreSQL. Данные не переживают перезапуск.
package memory

import (
	"sync"
	"time"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// Store общее состояние всех репозиториев в памяти
type Store struct {
	mu    sync.Mutex
	state state
	now   func() time.Time

	locations []domain.Location
	packages  []domain.Package
}

type state struct {
	bookings    map[int64]domain.Booking
	equipment   map[int64]domain.Equipment
	users       map[int64]domain.User
	links       map[int64]domain.AffiliateLink
	commissions map[int64]domain.CommissionTransaction

	bookingSeq    int64
	equipmentSeq  int64
	userSeq       int64
	linkSeq       int64
	commissionSeq int64
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		state: state{
			bookings:    make(map[int64]domain.Booking),
			equipment:   make(map[int64]domain.Equipment),
			users:       make(map[int64]domain.User),
			links:       make(map[int64]domain.AffiliateLink),
			commissions: make(map[int64]domain.CommissionTransaction),
		},
		now: time.Now,
	}
}

// Bookings репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

// Equipment репозиторий оборудования
func (s *Store) Equipment() *EquipmentRepository {
	return &EquipmentRepository{s: s}
}

// Users репозиторий пользователей
func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

// Affiliates репозиторий реферальных ссылок и начислений
func (s *Store) Affiliates() *AffiliateRepository {
	return &AffiliateRepository{s: s}
}

// Catalog справочник пляжей и пакетов
func (s *Store) Catalog() *CatalogRepository {
	return &CatalogRepository{s: s}
}

// clone копия состояния для отката транзакции.
// Значения в картах хранятся по значению, указатели внутри не разделяются
// благодаря copy*-функциям при записи.
func (st *state) clone() state {
	out := *st
	out.bookings = make(map[int64]domain.Booking, len(st.bookings))
	for k, v := range st.bookings {
		out.bookings[k] = v
	}
	out.equipment = make(map[int64]domain.Equipment, len(st.equipment))
	for k, v := range st.equipment {
		out.equipment[k] = v
	}
	out.users = make(map[int64]domain.User, len(st.users))
	for k, v := range st.users {
		out.users[k] = v
	}
	out.links = make(map[int64]domain.AffiliateLink, len(st.links))
	for k, v := range st.links {
		out.links[k] = v
	}
	out.commissions = make(map[int64]domain.CommissionTransaction, len(st.commissions))
	for k, v := range st.commissions {
		out.commissions[k] = v
	}
	return out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
