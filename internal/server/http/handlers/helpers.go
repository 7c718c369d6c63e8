package handlers

import (
	"github.com/gin-gonic/gin"

	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
	"github.com/lafrite/friterie/internal/server/http/dto"
)

// writeError emits the uniform error body.
func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Error: message})
}

// writeValidationError maps a domain validation error onto the error body,
// pointing at the offending field and cart line.
func writeValidationError(c *gin.Context, status int, ve *domainErrors.ValidationError) {
	details := &dto.ErrorDetails{Code: ve.Code, Field: ve.Field}
	if ve.ItemIndex >= 0 {
		idx := ve.ItemIndex
		details.ItemIndex = &idx
	}
	c.JSON(status, dto.ErrorResponse{Error: ve.Detail, Details: details})
}

// itemsFromRequest maps request cart lines to domain items.
func itemsFromRequest(items []dto.CheckoutItem) []model.OrderItem {
	result := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		result = append(result, model.OrderItem{Name: it.Name, UnitPrice: it.Price, Quantity: it.Quantity})
	}
	return result
}

// customerFromRequest maps the optional customer payload.
func customerFromRequest(payload *dto.CustomerPayload) model.Customer {
	if payload == nil {
		return model.Customer{}
	}
	return model.Customer{
		Name:       payload.Name,
		Phone:      payload.Phone,
		Address:    payload.Address,
		PostalCode: payload.PostalCode,
		City:       payload.City,
	}
}
