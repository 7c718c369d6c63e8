package dto

import (
	"time"

	"github.com/lafrite/friterie/internal/domain/model"
)

// OrderItemResponse is one order line in API responses.
type OrderItemResponse struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

// OrderResponse is the sanitized order representation served to the status
// page and the dashboard. The payment session id never leaves the backend.
type OrderResponse struct {
	ID            string              `json:"id"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      int64               `json:"subtotal"`
	DeliveryFee   int64               `json:"deliveryFee"`
	Total         int64               `json:"total"`
	Customer      CustomerPayload     `json:"customer"`
	DeliveryMode  string              `json:"deliveryMode"`
	PaymentMethod string              `json:"paymentMethod"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// ToOrderResponse maps a domain order onto its API representation.
func ToOrderResponse(order *model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, OrderItemResponse{Name: it.Name, Price: it.UnitPrice, Quantity: it.Quantity})
	}
	return OrderResponse{
		ID:          order.ID,
		Items:       items,
		Subtotal:    order.Subtotal,
		DeliveryFee: order.DeliveryFee,
		Total:       order.Total,
		Customer: CustomerPayload{
			Name:       order.Customer.Name,
			Phone:      order.Customer.Phone,
			Address:    order.Customer.Address,
			PostalCode: order.Customer.PostalCode,
			City:       order.Customer.City,
		},
		DeliveryMode:  string(order.DeliveryMode),
		PaymentMethod: string(order.PaymentMethod),
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
