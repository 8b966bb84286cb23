package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// CreateLinkRequest новая реферальная ссылка
type CreateLinkRequest struct {
	UserID         int64            `json:"userId"`
	CustomURL      *string          `json:"customUrl,omitempty"`      // Пусто - сгенерировать
	CommissionRate *decimal.Decimal `json:"commissionRate,omitempty"` // Проценты, по умолчанию 10
}

// LinkResponse реферальная ссылка
type LinkResponse struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	CustomURL       string          `json:"customUrl"`
	CommissionRate  decimal.Decimal `json:"commissionRate"`
	IsActive        bool            `json:"isActive"`
	Clicks          int64           `json:"clicks"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// LinkListResponse список ссылок
type LinkListResponse struct {
	Links []LinkResponse `json:"links"`
}

// CommissionResponse начисление комиссии
type CommissionResponse struct {
	ID              int64           `json:"id"`
	AffiliateLinkID int64           `json:"affiliateLinkId"`
	BookingID       int64           `json:"bookingId"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	ProcessedAt     *time.Time      `json:"processedAt"`
}

// CommissionListResponse список начислений
type CommissionListResponse struct {
	Commissions []CommissionResponse `json:"commissions"`
}

// FromDomainLink конвертирует domain модель в DTO
func FromDomainLink(l *domain.AffiliateLink) *LinkResponse {
	if l == nil {
		return nil
	}
	return &LinkResponse{
		ID:              l.ID,
		UserID:          l.UserID,
		CustomURL:       l.CustomURL,
		CommissionRate:  l.CommissionRate,
		IsActive:        l.IsActive,
		Clicks:          l.Clicks,
		TotalCommission: l.TotalCommission,
		CreatedAt:       l.CreatedAt,
	}
}

// FromDomainLinkList конвертирует список domain моделей в DTO
func FromDomainLinkList(links []*domain.AffiliateLink) *LinkListResponse {
	resp := &LinkListResponse{Links: make([]LinkResponse, 0, len(links))}
	for _, l := range links {
		resp.Links = append(resp.Links, *FromDomainLink(l))
	}
	return resp
}

// FromDomainCommission конвертирует domain модель в DTO
func FromDomainCommission(c *domain.CommissionTransaction) *CommissionResponse {
	if c == nil {
		return nil
	}
	return &CommissionResponse{
		ID:              c.ID,
		AffiliateLinkID: c.AffiliateLinkID,
		BookingID:       c.BookingID,
		Amount:          c.Amount,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
		ProcessedAt:     c.ProcessedAt,
	}
}

// FromDomainCommissionList конвертирует список domain моделей в DTO
func FromDomainCommissionList(list []*domain.CommissionTransaction) *CommissionListResponse {
	resp := &CommissionListResponse{Commissions: make([]CommissionResponse, 0, len(list))}
	for _, c := range list {
		resp.Commissions = append(resp.Commissions, *FromDomainCommission(c))
	}
	return resp
}
