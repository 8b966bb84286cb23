package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus общий жизненный цикл бронирования
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus статус оплаты, не зависит от статуса бронирования
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// DeliveryStatus физическая доставка и вывоз оборудования
type DeliveryStatus string

const (
	DeliveryStatusScheduled DeliveryStatus = "scheduled"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusCollected DeliveryStatus = "collected"
)

// Booking бронирование BBQ на пляже.
// Занимает ровно одну ячейку (Date, TimeSlot) и BBQCount единиц оборудования в ней.
type Booking struct {
	ID         int64
	UserID     int64
	LocationID int64
	PackageID  int64

	// Денормализовано из пользователя при создании
	CustomerName  string
	CustomerPhone string

	Date     time.Time // Календарный день (00:00 UTC)
	TimeSlot TimeSlot

	Status         BookingStatus
	PaymentStatus  PaymentStatus
	DeliveryStatus DeliveryStatus

	BBQCount int

	ActualStartTime *time.Time
	ActualEndTime   *time.Time

	CleanupContribution bool
	CleanupAmount       *decimal.Decimal

	AssignedBBQID   *int64
	AffiliateLinkID *int64
	CommissionPaid  bool

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive бронирование занимает оборудование в слоте
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}

// IsAwaitingDelivery заказ подтвержден и еще не доставлен
func (b *Booking) IsAwaitingDelivery() bool {
	return b.Status == BookingStatusConfirmed &&
		(b.DeliveryStatus == DeliveryStatusScheduled || b.DeliveryStatus == DeliveryStatusInTransit)
}

// IsAwaitingPickup оборудование на пляже, ждет вывоза
func (b *Booking) IsAwaitingPickup() bool {
	return b.DeliveryStatus == DeliveryStatusDelivered
}

// Elapsed время с фактического начала; до доставки - ноль
func (b *Booking) Elapsed(now time.Time) time.Duration {
	if b.ActualStartTime == nil {
		return 0
	}
	end := now
	if b.ActualEndTime != nil {
		end = *b.ActualEndTime
	}
	if end.Before(*b.ActualStartTime) {
		return 0
	}
	return end.Sub(*b.ActualStartTime)
}

// BookingPatch частичное обновление; nil означает "не менять"
type BookingPatch struct {
	Status          *BookingStatus
	PaymentStatus   *PaymentStatus
	DeliveryStatus  *DeliveryStatus
	CustomerName    *string
	CustomerPhone   *string
	TimeSlot        *TimeSlot
	Date            *time.Time
	ActualStartTime *time.Time
	ActualEndTime   *time.Time
	Notes           *string
}

// IsEmpty в патче нет ни одного поля
func (p *BookingPatch) IsEmpty() bool {
	return p.Status == nil && p.PaymentStatus == nil && p.DeliveryStatus == nil &&
		p.CustomerName == nil && p.CustomerPhone == nil && p.TimeSlot == nil && p.Date == nil &&
		p.ActualStartTime == nil && p.ActualEndTime == nil && p.Notes == nil
}

// Apply переносит поля патча в бронирование (без проверки переходов)
func (p *BookingPatch) Apply(b *Booking) {
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.PaymentStatus != nil {
		b.PaymentStatus = *p.PaymentStatus
	}
	if p.DeliveryStatus != nil {
		b.DeliveryStatus = *p.DeliveryStatus
	}
	if p.CustomerName != nil {
		b.CustomerName = *p.CustomerName
	}
	if p.CustomerPhone != nil {
		b.CustomerPhone = *p.CustomerPhone
	}
	if p.TimeSlot != nil {
		b.TimeSlot = *p.TimeSlot
	}
	if p.Date != nil {
		b.Date = *p.Date
	}
	if p.ActualStartTime != nil {
		b.ActualStartTime = p.ActualStartTime
	}
	if p.ActualEndTime != nil {
		b.ActualEndTime = p.ActualEndTime
	}
	if p.Notes != nil {
		b.Notes = p.Notes
	}
}

// StampDelivery дополняет патч отметками времени доставки:
// переход в in_transit ставит фактическое начало, в delivered - конец.
// Уже записанные и явно переданные значения не перезаписываются.
func (p *BookingPatch) StampDelivery(b *Booking, now time.Time) {
	if p.DeliveryStatus == nil || *p.DeliveryStatus == b.DeliveryStatus {
		return
	}
	switch *p.DeliveryStatus {
	case DeliveryStatusInTransit:
		if p.ActualStartTime == nil && b.ActualStartTime == nil {
			p.ActualStartTime = &now
		}
	case DeliveryStatusDelivered:
		if p.ActualEndTime == nil && b.ActualEndTime == nil {
			p.ActualEndTime = &now
		}
	}
}

// BookingFilter фильтр выборки бронирований
type BookingFilter struct {
	UserID           *int64
	Date             *time.Time       // Конкретный день
	From             *time.Time       // Начало периода (включительно)
	To               *time.Time       // Конец периода (включительно)
	Statuses         []BookingStatus  // Пустой - любые
	DeliveryStatuses []DeliveryStatus // Пустой - любые
	IncludeCancelled bool
}

// Matches проверяет бронирование на соответствие фильтру (для in-memory хранилища)
func (f BookingFilter) Matches(b *Booking) bool {
	if f.UserID != nil && b.UserID != *f.UserID {
		return false
	}
	if f.Date != nil && !SameDay(b.Date, *f.Date) {
		return false
	}
	if f.From != nil && b.Date.Before(CalendarDay(*f.From, time.UTC)) {
		return false
	}
	if f.To != nil && b.Date.After(CalendarDay(*f.To, time.UTC)) {
		return false
	}
	if !f.IncludeCancelled && len(f.Statuses) == 0 && !b.IsActive() {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, b.Status) {
		return false
	}
	if len(f.DeliveryStatuses) > 0 && !containsDelivery(f.DeliveryStatuses, b.DeliveryStatus) {
		return false
	}
	return true
}

func containsStatus(list []BookingStatus, s BookingStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsDelivery(list []DeliveryStatus, s DeliveryStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
