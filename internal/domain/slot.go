package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/BBQ-RentalService/pkg/types"
)

var (
	// ErrInvalidTimeSlot слот не входит в перечень или записан неверно
	ErrInvalidTimeSlot = errors.New("invalid time slot")

	// ErrOverlappingSlots слоты в расписании пересекаются или не упорядочены
	ErrOverlappingSlots = errors.New("time slots overlap or are out of order")
)

// TimeSlot название слота в формате "HH:MM-HH:MM"
type TimeSlot string

func (s TimeSlot) String() string {
	return string(s)
}

// SlotDefinition разобранный слот расписания
type SlotDefinition struct {
	Name  TimeSlot
	Start types.TimeString
	End   types.TimeString
	// CleaningBefore перед слотом есть окно на чистку (разрыв с предыдущим слотом)
	CleaningBefore bool
}

// DurationMinutes длительность слота
func (d SlotDefinition) DurationMinutes() int {
	return d.Start.MinutesUntil(d.End)
}

// ParseTimeSlot разбирает строку "12:00-15:00"
func ParseTimeSlot(raw string) (SlotDefinition, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return SlotDefinition{}, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, raw)
	}

	start, err := types.NewTimeStringFromString(parts[0])
	if err != nil {
		return SlotDefinition{}, fmt.Errorf("%w: %q start: %v", ErrInvalidTimeSlot, raw, err)
	}
	end, err := types.NewTimeStringFromString(parts[1])
	if err != nil {
		return SlotDefinition{}, fmt.Errorf("%w: %q end: %v", ErrInvalidTimeSlot, raw, err)
	}
	if !start.IsBefore(end) {
		return SlotDefinition{}, fmt.Errorf("%w: %q ends before it starts", ErrInvalidTimeSlot, raw)
	}

	return SlotDefinition{
		Name:  TimeSlot(start.String() + "-" + end.String()),
		Start: start,
		End:   end,
	}, nil
}

// SlotTable фиксированный упорядоченный набор непересекающихся слотов дня
type SlotTable struct {
	slots []SlotDefinition
	index map[TimeSlot]int
}

// NewSlotTable строит расписание; порядок в конфиге должен совпадать с порядком по времени
func NewSlotTable(raw []string) (*SlotTable, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty slot list", ErrInvalidTimeSlot)
	}

	table := &SlotTable{
		slots: make([]SlotDefinition, 0, len(raw)),
		index: make(map[TimeSlot]int, len(raw)),
	}

	for i, r := range raw {
		def, err := ParseTimeSlot(r)
		if err != nil {
			return nil, err
		}

		if i > 0 {
			prev := table.slots[i-1]
			if def.Start.IsBefore(prev.End) {
				return nil, fmt.Errorf("%w: %s after %s", ErrOverlappingSlots, def.Name, prev.Name)
			}
			def.CleaningBefore = prev.End.IsBefore(def.Start)
		}

		table.index[def.Name] = i
		table.slots = append(table.slots, def)
	}

	return table, nil
}

// MustSlotTable для констант и тестов
func MustSlotTable(raw ...string) *SlotTable {
	t, err := NewSlotTable(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Slots копия расписания в порядке перечисления
func (t *SlotTable) Slots() []SlotDefinition {
	out := make([]SlotDefinition, len(t.slots))
	copy(out, t.slots)
	return out
}

// Contains проверяет, что слот есть в перечне
func (t *SlotTable) Contains(slot TimeSlot) bool {
	_, ok := t.index[slot]
	return ok
}

// Parse нормализует строку и проверяет, что такой слот есть в расписании
func (t *SlotTable) Parse(raw string) (TimeSlot, error) {
	def, err := ParseTimeSlot(raw)
	if err != nil {
		return "", err
	}
	if !t.Contains(def.Name) {
		return "", fmt.Errorf("%w: %q is not offered", ErrInvalidTimeSlot, raw)
	}
	return def.Name, nil
}

// Len количество слотов
func (t *SlotTable) Len() int {
	return len(t.slots)
}

// SlotAvailability остаток оборудования в слоте на дату
type SlotAvailability struct {
	TimeSlot          TimeSlot
	AvailableUnits    int // Свободно, не меньше 0
	BookedUnits       int // Занято бронированиями (может превышать TotalUnits при овербукинге)
	TotalUnits        int
	IsCleaningWindow  bool
	NextAvailableSlot *TimeSlot
}

// IsFull в слоте не осталось оборудования
func (s *SlotAvailability) IsFull() bool {
	return s.AvailableUnits <= 0
}

// IsOverbooked бронирований больше, чем оборудования
func (s *SlotAvailability) IsOverbooked() bool {
	return s.BookedUnits > s.TotalUnits
}
