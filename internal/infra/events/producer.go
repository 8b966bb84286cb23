package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

const (
	TypeAvailabilityUpdate = "availability_update"
	TypeBookingCreated     = "booking_created"
	TypeBookingUpdated     = "booking_updated"
)

var (
	// ErrEncode событие не сериализуется
	ErrEncode = errors.New("events: failed to encode event")

	// ErrPublish брокер не принял сообщение
	ErrPublish = errors.New("events: failed to publish")
)

// MessageWriter запись сообщений в Kafka (*kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Producer публикует уведомления об изменении доступности и бронирований
type Producer struct {
	writer            MessageWriter
	availabilityTopic string
	bookingTopic      string
	logger            Logger
	now               func() time.Time
}

// NewKafkaWriter писатель с топиком в каждом сообщении
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

// NewProducer создает продюсер поверх writer
func NewProducer(writer MessageWriter, availabilityTopic, bookingTopic string, logger Logger) *Producer {
	return &Producer{
		writer:            writer,
		availabilityTopic: availabilityTopic,
		bookingTopic:      bookingTopic,
		logger:            logger,
		now:               time.Now,
	}
}

// AvailabilityEvent {type: "availability_update", date, data: SlotAvailability[]}
type AvailabilityEvent struct {
	Type string             `json:"type"`
	Date string             `json:"date"`
	Data []SlotAvailability `json:"data"`
}

// SlotAvailability остаток слота в сообщении
type SlotAvailability struct {
	TimeSlot          string  `json:"timeSlot"`
	AvailableUnits    int     `json:"availableUnits"`
	IsCleaningWindow  bool    `json:"isCleaningWindow"`
	NextAvailableSlot *string `json:"nextAvailableSlot,omitempty"`
}

// BookingEvent изменение бронирования
type BookingEvent struct {
	Type           string    `json:"type"`
	BookingID      int64     `json:"bookingId"`
	UserID         int64     `json:"userId"`
	Date           string    `json:"date"`
	TimeSlot       string    `json:"timeSlot"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`
	DeliveryStatus string    `json:"deliveryStatus"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// PublishAvailability публикует снимок доступности дня
func (p *Producer) PublishAvailability(ctx context.Context, date time.Time, slots []domain.SlotAvailability) error {
	event := AvailabilityEvent{
		Type: TypeAvailabilityUpdate,
		Date: date.Format(domain.DateFormat),
		Data: make([]SlotAvailability, len(slots)),
	}
	for i, s := range slots {
		event.Data[i] = SlotAvailability{
			TimeSlot:         string(s.TimeSlot),
			AvailableUnits:   s.AvailableUnits,
			IsCleaningWindow: s.IsCleaningWindow,
		}
		if s.NextAvailableSlot != nil {
			next := string(*s.NextAvailableSlot)
			event.Data[i].NextAvailableSlot = &next
		}
	}

	return p.publish(ctx, p.availabilityTopic, event.Date, event)
}

// PublishBooking публикует событие бронирования (booking_created, booking_updated)
func (p *Producer) PublishBooking(ctx context.Context, eventType string, b *domain.Booking) error {
	event := BookingEvent{
		Type:           eventType,
		BookingID:      b.ID,
		UserID:         b.UserID,
		Date:           b.Date.Format(domain.DateFormat),
		TimeSlot:       string(b.TimeSlot),
		Status:         string(b.Status),
		PaymentStatus:  string(b.PaymentStatus),
		DeliveryStatus: string(b.DeliveryStatus),
		OccurredAt:     p.now().UTC(),
	}

	return p.publish(ctx, p.bookingTopic, strconv.FormatInt(b.ID, 10), event)
}

func (p *Producer) publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  p.now(),
	})
	if err != nil {
		return fmt.Errorf("%w: topic=%s key=%s: %v", ErrPublish, topic, key, err)
	}

	p.logger.Info("Events: published topic=%s key=%s", topic, key)
	return nil
}

// Close закрывает writer
func (p *Producer) Close() error {
	return p.writer.Close()
}
