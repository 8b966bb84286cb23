package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}

func TestProducer_PublishAvailability(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducer(w, "bbq.availability", "bbq.bookings", nopLogger{})

	next := domain.TimeSlot("16:00-19:00")
	slots := []domain.SlotAvailability{
		{TimeSlot: "12:00-15:00", AvailableUnits: 0, NextAvailableSlot: &next},
		{TimeSlot: "16:00-19:00", AvailableUnits: 1, IsCleaningWindow: true},
	}
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, p.PublishAvailability(context.Background(), date, slots))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "bbq.availability", msg.Topic)
	assert.Equal(t, "2025-06-01", string(msg.Key))

	var event AvailabilityEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, TypeAvailabilityUpdate, event.Type)
	require.Len(t, event.Data, 2)
	require.NotNil(t, event.Data[0].NextAvailableSlot)
	assert.Equal(t, "16:00-19:00", *event.Data[0].NextAvailableSlot)
	assert.True(t, event.Data[1].IsCleaningWindow)
}

func TestProducer_PublishBooking_WriterError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewProducer(w, "a", "b", nopLogger{})

	err := p.PublishBooking(context.Background(), TypeBookingCreated, &domain.Booking{ID: 7})
	assert.ErrorIs(t, err, ErrPublish)
}
