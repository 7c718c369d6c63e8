package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/server/http/dto"
)

// OrderHandler serves order status reads.
type OrderHandler struct {
	facade OrderReadFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderReadFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// GetByID handles GET /api/orders/{id}.
func (h *OrderHandler) GetByID(c *gin.Context) {
	order, err := h.facade.OrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			writeError(c, http.StatusNotFound, "order not found")
			return
		}
		writeError(c, http.StatusInternalServerError, "could not load order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// GetBySession handles GET /api/orders?sessionId=... for the post-redirect
// status page, which only knows the payment session.
func (h *OrderHandler) GetBySession(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		writeError(c, http.StatusBadRequest, "sessionId is required")
		return
	}

	order, err := h.facade.OrderBySessionID(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			writeError(c, http.StatusNotFound, "order not found")
			return
		}
		writeError(c, http.StatusInternalServerError, "could not load order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
