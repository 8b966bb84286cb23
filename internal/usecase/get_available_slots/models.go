package get_available_slots

import (
	"time"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// Request модель запроса доступности
type Request struct {
	Date string // "YYYY-MM-DD" или ISO 8601
}

// Response доступность по всем слотам дня в порядке расписания
type Response struct {
	Date  time.Time
	Slots []domain.SlotAvailability
}
