package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
	"github.com/lafrite/friterie/internal/server/http/dto"
	"github.com/lafrite/friterie/internal/server/ws"
)

// AdminHandler serves the dashboard: login, order list, fulfillment
// transitions and the live feed.
type AdminHandler struct {
	facade AdminFacade
	hub    *ws.Hub
	logger *slog.Logger
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade, hub *ws.Hub, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{facade: facade, hub: hub, logger: logger}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.facade.AdminLogin(req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			writeError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(c, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, dto.AdminLoginResponse{Token: token})
}

// List handles GET /api/admin/orders.
func (h *AdminHandler) List(c *gin.Context) {
	status := model.OrderStatus(c.Query("status"))

	orders, err := h.facade.Orders(c.Request.Context(), status, 0)
	if err != nil {
		if ve, ok := domainErrors.AsValidation(err); ok {
			writeValidationError(c, http.StatusBadRequest, ve)
			return
		}
		writeError(c, http.StatusInternalServerError, "could not list orders")
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, dto.ToOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles POST /api/admin/orders/{id}/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.facade.AdvanceOrder(c.Request.Context(), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "order not found")
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			// Operators get the precise reason; this is a usage error.
			writeError(c, http.StatusConflict, err.Error())
		default:
			if ve, ok := domainErrors.AsValidation(err); ok {
				writeValidationError(c, http.StatusBadRequest, ve)
				return
			}
			writeError(c, http.StatusInternalServerError, "could not update order")
		}
		return
	}

	c.JSON(http.StatusOK, dto.StatusUpdateResponse{
		OrderID:   order.ID,
		Status:    string(order.Status),
		UpdatedAt: order.UpdatedAt,
	})
}

// Feed handles GET /api/admin/orders/feed. WebSocket clients cannot set
// headers, so the bearer token travels in the query string.
func (h *AdminHandler) Feed(c *gin.Context) {
	if err := h.facade.ParseAdminToken(c.Query("token")); err != nil {
		writeError(c, http.StatusUnauthorized, "invalid token")
		return
	}

	if err := ws.ServeWS(h.hub, h.logger, c.Writer, c.Request); err != nil {
		h.logger.Warn("feed upgrade failed", slog.String("error", err.Error()))
	}
}
