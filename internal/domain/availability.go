package domain

// ConsumedUnits сумма BBQCount активных бронирований в слоте.
// Бронирования должны относиться к одному дню.
func ConsumedUnits(bookings []*Booking, slot TimeSlot) int {
	consumed := 0
	for _, b := range bookings {
		if !b.IsActive() || b.TimeSlot != slot {
			continue
		}
		consumed += b.BBQCount
	}
	return consumed
}

// CalculateAvailability считает остаток оборудования по каждому слоту дня.
//
// availableUnits = maxUnits - consumed, отрицательный остаток при овербукинге
// приводится к 0. Для заполненного слота ищется первый следующий слот того же
// дня со свободным оборудованием; через границу дня поиск не идет.
func CalculateAvailability(table *SlotTable, maxUnits int, bookings []*Booking) []SlotAvailability {
	defs := table.Slots()
	result := make([]SlotAvailability, len(defs))

	for i, def := range defs {
		booked := ConsumedUnits(bookings, def.Name)
		available := maxUnits - booked
		if available < 0 {
			available = 0
		}

		result[i] = SlotAvailability{
			TimeSlot:         def.Name,
			AvailableUnits:   available,
			BookedUnits:      booked,
			TotalUnits:       maxUnits,
			IsCleaningWindow: def.CleaningBefore,
		}
	}

	for i := range result {
		if !result[i].IsFull() {
			continue
		}
		for j := i + 1; j < len(result); j++ {
			if !result[j].IsFull() {
				next := result[j].TimeSlot
				result[i].NextAvailableSlot = &next
				break
			}
		}
	}

	return result
}
