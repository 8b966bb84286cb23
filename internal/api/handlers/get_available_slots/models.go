package get_available_slots

import (
	"github.com/m04kA/BBQ-RentalService/internal/domain"
	getAvailableSlots "github.com/m04kA/BBQ-RentalService/internal/usecase/get_available_slots"
)

// AvailableSlot остаток оборудования в слоте
type AvailableSlot struct {
	TimeSlot          string  `json:"timeSlot"`
	AvailableUnits    int     `json:"availableUnits"`
	BookedUnits       int     `json:"bookedUnits"`
	TotalUnits        int     `json:"totalUnits"`
	IsCleaningWindow  bool    `json:"isCleaningWindow"`
	NextAvailableSlot *string `json:"nextAvailableSlot"`
}

// FromUseCaseResponse конвертирует ответ use case в массив слотов
func FromUseCaseResponse(resp *getAvailableSlots.Response) []AvailableSlot {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = fromDomainSlot(s)
	}
	return slots
}

func fromDomainSlot(s domain.SlotAvailability) AvailableSlot {
	slot := AvailableSlot{
		TimeSlot:         string(s.TimeSlot),
		AvailableUnits:   s.AvailableUnits,
		BookedUnits:      s.BookedUnits,
		TotalUnits:       s.TotalUnits,
		IsCleaningWindow: s.IsCleaningWindow,
	}
	if s.NextAvailableSlot != nil {
		next := string(*s.NextAvailableSlot)
		slot.NextAvailableSlot = &next
	}
	return slot
}
