package assign_equipment

// AssignRequest HTTP request model
type AssignRequest struct {
	BookingID int64 `json:"bookingId" validate:"required,gt=0"`
}
