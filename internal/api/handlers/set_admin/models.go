package set_admin

// SetAdminRequest HTTP request model
type SetAdminRequest struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}
