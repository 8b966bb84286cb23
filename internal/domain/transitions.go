package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStatus значение не входит в перечень статусов оси
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrInvalidTransition переход между статусами запрещен
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Таблицы разрешенных переходов по каждой оси.
// Запись в тот же статус разрешена всегда и ничего не меняет.
var (
	bookingTransitions = map[BookingStatus][]BookingStatus{
		BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
		BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
		BookingStatusCompleted: {},
		BookingStatusCancelled: {},
	}

	paymentTransitions = map[PaymentStatus][]PaymentStatus{
		PaymentStatusUnpaid:   {PaymentStatusPaid},
		PaymentStatusPaid:     {PaymentStatusRefunded},
		PaymentStatusRefunded: {},
	}

	deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
		DeliveryStatusScheduled: {DeliveryStatusInTransit},
		DeliveryStatusInTransit: {DeliveryStatusDelivered},
		DeliveryStatusDelivered: {DeliveryStatusCollected},
		DeliveryStatusCollected: {},
	}
)

// ParseBookingStatus валидирует строку статуса бронирования
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if _, ok := bookingTransitions[status]; !ok {
		return "", fmt.Errorf("%w: booking status %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// ParsePaymentStatus валидирует строку статуса оплаты
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if _, ok := paymentTransitions[status]; !ok {
		return "", fmt.Errorf("%w: payment status %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// ParseDeliveryStatus валидирует строку статуса доставки
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	status := DeliveryStatus(s)
	if _, ok := deliveryTransitions[status]; !ok {
		return "", fmt.Errorf("%w: delivery status %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// CheckBookingTransition проверяет переход статуса бронирования
func CheckBookingTransition(from, to BookingStatus) error {
	if from == to {
		return nil
	}
	for _, next := range bookingTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: booking %s -> %s", ErrInvalidTransition, from, to)
}

// CheckPaymentTransition проверяет переход статуса оплаты
func CheckPaymentTransition(from, to PaymentStatus) error {
	if from == to {
		return nil
	}
	for _, next := range paymentTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: payment %s -> %s", ErrInvalidTransition, from, to)
}

// CheckDeliveryTransition проверяет переход статуса доставки
func CheckDeliveryTransition(from, to DeliveryStatus) error {
	if from == to {
		return nil
	}
	for _, next := range deliveryTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: delivery %s -> %s", ErrInvalidTransition, from, to)
}

// CheckPatch проверяет все переходы патча относительно текущего состояния бронирования
func CheckPatch(b *Booking, p *BookingPatch) error {
	if p.Status != nil {
		if err := CheckBookingTransition(b.Status, *p.Status); err != nil {
			return err
		}
	}
	if p.PaymentStatus != nil {
		if err := CheckPaymentTransition(b.PaymentStatus, *p.PaymentStatus); err != nil {
			return err
		}
	}
	if p.DeliveryStatus != nil {
		if err := CheckDeliveryTransition(b.DeliveryStatus, *p.DeliveryStatus); err != nil {
			return err
		}
	}
	return nil
}
