package dto

// CheckoutItem is one cart line as submitted by the client. Price is an
// integer amount in minor currency units.
type CheckoutItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

// CustomerPayload carries contact and delivery details.
type CustomerPayload struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
}

// CheckoutRequest is the body of POST /api/checkout and POST /api/orders.
type CheckoutRequest struct {
	Items        []CheckoutItem   `json:"items"`
	Customer     *CustomerPayload `json:"customer"`
	DeliveryMode string           `json:"deliveryMode"`
}

// CheckoutResponse returns the hosted session to redirect the customer to.
type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
	OrderID   string `json:"orderId"`
}

// ErrorDetails pinpoints a validation failure.
type ErrorDetails struct {
	Code      string `json:"code"`
	Field     string `json:"field,omitempty"`
	ItemIndex *int   `json:"itemIndex,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details *ErrorDetails `json:"details,omitempty"`
}
