package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
	"github.com/lafrite/friterie/internal/server/http/dto"
)

// CheckoutHandler manages order creation endpoints.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Create handles POST /api/checkout: opens a hosted payment session.
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	order, session, err := h.facade.CreateCheckout(
		c.Request.Context(),
		itemsFromRequest(req.Items),
		customerFromRequest(req.Customer),
		model.DeliveryMode(req.DeliveryMode),
	)
	if err != nil {
		if ve, ok := domainErrors.AsValidation(err); ok {
			writeValidationError(c, http.StatusBadRequest, ve)
			return
		}
		// Customers get a generic failure, never provider diagnostics.
		writeError(c, http.StatusBadGateway, "checkout is temporarily unavailable")
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{
		URL:       session.URL,
		SessionID: session.ID,
		OrderID:   order.ID,
	})
}

// CreateCash handles POST /api/orders: records a cash-on-delivery order.
func (h *CheckoutHandler) CreateCash(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.facade.CreateCashOrder(
		c.Request.Context(),
		itemsFromRequest(req.Items),
		customerFromRequest(req.Customer),
		model.DeliveryMode(req.DeliveryMode),
	)
	if err != nil {
		if ve, ok := domainErrors.AsValidation(err); ok {
			writeValidationError(c, http.StatusBadRequest, ve)
			return
		}
		writeError(c, http.StatusInternalServerError, "could not place order")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}
