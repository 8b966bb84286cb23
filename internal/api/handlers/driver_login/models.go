package driver_login

// DriverLoginRequest HTTP request model
type DriverLoginRequest struct {
	DriverCode string `json:"driverCode" validate:"required"`
}
