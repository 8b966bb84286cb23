package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate дата не разбирается как календарный день
var ErrInvalidDate = errors.New("invalid calendar date")

// CalendarDay переводит момент времени в календарный день часового пояса loc.
// День хранится как полночь UTC, чтобы совпадать с колонкой DATE.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseCalendarDay принимает "YYYY-MM-DD" или ISO 8601 с временем
// (клиент присылает Date.toISOString()); момент приводится к дню в loc.
func ParseCalendarDay(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}

	if t, err := time.Parse(DateFormat, raw); err == nil {
		return t, nil
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return CalendarDay(t, loc), nil
		}
	}

	if loc == nil {
		loc = time.UTC
	}
	// Без смещения время считается локальным для loc
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, loc); err == nil {
		return CalendarDay(t, loc), nil
	}

	return time.Time{}, ErrInvalidDate
}

// SameDay две даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
