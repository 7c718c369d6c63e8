package dto

import "time"

// AdminLoginRequest carries the operator credential.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLoginResponse returns the bearer token.
type AdminLoginResponse struct {
	Token string `json:"token"`
}

// StatusUpdateRequest selects the target fulfillment status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// StatusUpdateResponse summarizes the applied transition.
type StatusUpdateResponse struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WebhookResponse acknowledges a provider event.
type WebhookResponse struct {
	Received bool `json:"received"`
}
