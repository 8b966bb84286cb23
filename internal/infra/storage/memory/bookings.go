package memory

import (
	"context"
	"sort"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/booking"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	s *Store
}

// Create присваивает id и сохраняет бронирование
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	err := r.s.run(ctx, func(st *state) error {
		st.bookingSeq++
		now := r.s.now()

		booking.ID = st.bookingSeq
		booking.CreatedAt = now
		booking.UpdatedAt = now

		st.bookings[booking.ID] = copyBooking(booking)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// GetByID бронирование по id
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.s.run(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}
		c := copyBooking(&b)
		out = &c
		return nil
	})
	return out, err
}

// List бронирования по фильтру в том же порядке, что и в PostgreSQL
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	err := r.s.run(ctx, func(st *state) error {
		for _, b := range st.bookings {
			if !filter.Matches(&b) {
				continue
			}
			c := copyBooking(&b)
			out = append(out, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if filter.Date != nil {
		sort.Slice(out, func(i, j int) bool {
			if out[i].TimeSlot != out[j].TimeSlot {
				return out[i].TimeSlot < out[j].TimeSlot
			}
			return out[i].ID < out[j].ID
		})
	} else {
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Date.Equal(out[j].Date) {
				return out[i].Date.After(out[j].Date)
			}
			if out[i].TimeSlot != out[j].TimeSlot {
				return out[i].TimeSlot > out[j].TimeSlot
			}
			return out[i].ID > out[j].ID
		})
	}

	return out, nil
}

// Update перезаписывает бронирование целиком
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	return r.s.run(ctx, func(st *state) error {
		if _, ok := st.bookings[booking.ID]; !ok {
			return bookingRepo.ErrBookingNotFound
		}
		booking.UpdatedAt = r.s.now()
		st.bookings[booking.ID] = copyBooking(booking)
		return nil
	})
}

func copyBooking(b *domain.Booking) domain.Booking {
	c := *b
	c.ActualStartTime = copyPtr(b.ActualStartTime)
	c.ActualEndTime = copyPtr(b.ActualEndTime)
	c.CleanupAmount = copyPtr(b.CleanupAmount)
	c.AssignedBBQID = copyPtr(b.AssignedBBQID)
	c.AffiliateLinkID = copyPtr(b.AffiliateLinkID)
	c.Notes = copyPtr(b.Notes)
	return c
}
