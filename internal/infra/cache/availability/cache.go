package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

var (
	// ErrCache ошибка обращения к Redis
	ErrCache = errors.New("availability.cache: redis error")

	// ErrDecode снимок в кеше не разбирается
	ErrDecode = errors.New("availability.cache: failed to decode snapshot")
)

// Cache снимок доступности по дням в Redis
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache создает кеш поверх готового клиента
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

type slotEntry struct {
	TimeSlot          string  `json:"timeSlot"`
	AvailableUnits    int     `json:"availableUnits"`
	BookedUnits       int     `json:"bookedUnits"`
	TotalUnits        int     `json:"totalUnits"`
	IsCleaningWindow  bool    `json:"isCleaningWindow"`
	NextAvailableSlot *string `json:"nextAvailableSlot,omitempty"`
}

// Get снимок дня; ok == false при промахе
func (c *Cache) Get(ctx context.Context, date time.Time) ([]domain.SlotAvailability, bool, error) {
	data, err := c.client.Get(ctx, key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	var entries []slotEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	slots := make([]domain.SlotAvailability, len(entries))
	for i, e := range entries {
		slots[i] = domain.SlotAvailability{
			TimeSlot:         domain.TimeSlot(e.TimeSlot),
			AvailableUnits:   e.AvailableUnits,
			BookedUnits:      e.BookedUnits,
			TotalUnits:       e.TotalUnits,
			IsCleaningWindow: e.IsCleaningWindow,
		}
		if e.NextAvailableSlot != nil {
			next := domain.TimeSlot(*e.NextAvailableSlot)
			slots[i].NextAvailableSlot = &next
		}
	}

	return slots, true, nil
}

// Set сохраняет снимок дня на ttl
func (c *Cache) Set(ctx context.Context, date time.Time, slots []domain.SlotAvailability) error {
	entries := make([]slotEntry, len(slots))
	for i, s := range slots {
		entries[i] = slotEntry{
			TimeSlot:         string(s.TimeSlot),
			AvailableUnits:   s.AvailableUnits,
			BookedUnits:      s.BookedUnits,
			TotalUnits:       s.TotalUnits,
			IsCleaningWindow: s.IsCleaningWindow,
		}
		if s.NextAvailableSlot != nil {
			next := string(*s.NextAvailableSlot)
			entries[i].NextAvailableSlot = &next
		}
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, key(date), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет снимок дня
func (c *Cache) Invalidate(ctx context.Context, date time.Time) error {
	if err := c.client.Del(ctx, key(date)).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCache, err)
	}
	return nil
}

func key(date time.Time) string {
	return "cache:availability:" + date.Format(domain.DateFormat)
}
