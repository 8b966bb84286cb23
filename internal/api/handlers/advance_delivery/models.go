package advance_delivery

// AdvanceDeliveryRequest HTTP request model
type AdvanceDeliveryRequest struct {
	DeliveryStatus string `json:"deliveryStatus" validate:"required,oneof=scheduled in_transit delivered collected"`
}
