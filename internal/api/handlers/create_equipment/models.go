package create_equipment

// CreateEquipmentRequest HTTP request model
type CreateEquipmentRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
