package memory

import (
	"context"
	"sort"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	equipmentRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/equipment"
)

// EquipmentRepository оборудование в памяти
type EquipmentRepository struct {
	s *Store
}

// Create добавляет единицу оборудования
func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error) {
	err := r.s.run(ctx, func(st *state) error {
		st.equipmentSeq++
		now := r.s.now()

		e.ID = st.equipmentSeq
		e.CreatedAt = now
		e.UpdatedAt = now

		st.equipment[e.ID] = copyEquipment(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetByID единица по id
func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	var out *domain.Equipment
	err := r.s.run(ctx, func(st *state) error {
		e, ok := st.equipment[id]
		if !ok {
			return equipmentRepo.ErrEquipmentNotFound
		}
		c := copyEquipment(&e)
		out = &c
		return nil
	})
	return out, err
}

// List оборудование по id; status == nil - все единицы
func (r *EquipmentRepository) List(ctx context.Context, status *domain.EquipmentStatus) ([]*domain.Equipment, error) {
	out := make([]*domain.Equipment, 0)
	err := r.s.run(ctx, func(st *state) error {
		for _, e := range st.equipment {
			if status != nil && e.Status != *status {
				continue
			}
			c := copyEquipment(&e)
			out = append(out, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update перезаписывает единицу; одно бронирование - не больше одной единицы
func (r *EquipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	return r.s.run(ctx, func(st *state) error {
		if _, ok := st.equipment[e.ID]; !ok {
			return equipmentRepo.ErrEquipmentNotFound
		}
		if e.CurrentBookingID != nil {
			for id, other := range st.equipment {
				if id != e.ID && other.CurrentBookingID != nil && *other.CurrentBookingID == *e.CurrentBookingID {
					return equipmentRepo.ErrBookingAlreadyLinked
				}
			}
		}
		e.UpdatedAt = r.s.now()
		st.equipment[e.ID] = copyEquipment(e)
		return nil
	})
}

func copyEquipment(e *domain.Equipment) domain.Equipment {
	c := *e
	c.CurrentBookingID = copyPtr(e.CurrentBookingID)
	c.LastCleaned = copyPtr(e.LastCleaned)
	c.LastMaintenance = copyPtr(e.LastMaintenance)
	c.Notes = copyPtr(e.Notes)
	return c
}
