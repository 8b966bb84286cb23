package models

import (
	"time"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// CreateEquipmentRequest новая единица оборудования
type CreateEquipmentRequest struct {
	Name  string  `json:"name"`
	Notes *string `json:"notes,omitempty"`
}

// UpdateStatusRequest ручная смена статуса администратором
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// EquipmentResponse единица оборудования
type EquipmentResponse struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Status           string     `json:"status"`
	CurrentBookingID *int64     `json:"currentBookingId"`
	LastCleaned      *time.Time `json:"lastCleaned"`
	LastMaintenance  *time.Time `json:"lastMaintenance"`
	Notes            *string    `json:"notes"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// EquipmentListResponse список оборудования
type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
}

// FromDomainEquipment конвертирует domain модель в DTO
func FromDomainEquipment(e *domain.Equipment) *EquipmentResponse {
	if e == nil {
		return nil
	}
	return &EquipmentResponse{
		ID:               e.ID,
		Name:             e.Name,
		Status:           string(e.Status),
		CurrentBookingID: e.CurrentBookingID,
		LastCleaned:      e.LastCleaned,
		LastMaintenance:  e.LastMaintenance,
		Notes:            e.Notes,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// FromDomainEquipmentList конвертирует список domain моделей в DTO
func FromDomainEquipmentList(list []*domain.Equipment) *EquipmentListResponse {
	resp := &EquipmentListResponse{Equipment: make([]EquipmentResponse, 0, len(list))}
	for _, e := range list {
		resp.Equipment = append(resp.Equipment, *FromDomainEquipment(e))
	}
	return resp
}
