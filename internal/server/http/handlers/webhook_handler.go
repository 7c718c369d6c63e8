package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lafrite/friterie/internal/adapter/payment"
	"github.com/lafrite/friterie/internal/server/http/dto"
)

// SignatureHeader carries the provider's signature over the raw body.
const SignatureHeader = "Friterie-Signature"

// WebhookHandler receives payment provider events.
type WebhookHandler struct {
	facade   WebhookFacade
	verifier *payment.SignatureVerifier
	logger   *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade, verifier *payment.SignatureVerifier, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, verifier: verifier, logger: logger}
}

// Receive handles POST /api/payments/webhook. The signature is verified
// over the raw body before any parsing; verification failure acknowledges
// nothing and mutates nothing.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable body")
		return
	}

	if err := h.verifier.Verify(c.GetHeader(SignatureHeader), body); err != nil {
		h.logger.Warn("webhook signature rejected", slog.String("remote", c.ClientIP()))
		writeError(c, http.StatusBadRequest, "invalid signature")
		return
	}

	event, err := payment.ParseEvent(body)
	if err != nil {
		writeError(c, http.StatusBadRequest, "malformed event")
		return
	}

	if err := h.facade.HandlePaymentEvent(c.Request.Context(), event); err != nil {
		// Surface a retryable failure so the provider redelivers.
		h.logger.Error("webhook processing failed",
			slog.String("event", event.ID),
			slog.String("error", err.Error()),
		)
		writeError(c, http.StatusInternalServerError, "event processing failed")
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{Received: true})
}
