package api

import (
	"errors"
	"io"
	"net/http"

	"ticket-checkout/internal/domain/payment"
	resdto "ticket-checkout/internal/handler/dto/response"
	"ticket-checkout/internal/handler/httperr"
	"ticket-checkout/internal/infra/metrics"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	maxWebhookBodyBytes = 64 << 10
	signatureHeader     = "Stripe-Signature"
)

type WebhookHandler struct {
	cmds    commands.WebhookCommands
	metrics *metrics.Metrics
}

func NewWebhookHandler(cmds commands.WebhookCommands, m *metrics.Metrics) *WebhookHandler {
	return &WebhookHandler{cmds: cmds, metrics: m}
}

// @Summary Payment gateway webhook
// @Description Verifies the gateway signature and queues completed checkouts for conversion
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Gateway signature"
// @Success 200 {object} resdto.WebhookAck
// @Failure 400 {string} string "Webhook Error: <reason>"
// @Failure 500 {object} httperr.Response
// @Router /webhook-checkout [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.rejectWebhook(c, http.StatusRequestEntityTooLarge, err)
			return
		}
		h.rejectWebhook(c, http.StatusBadRequest, err)
		return
	}

	result, err := h.cmds.HandleWebhook(c.Request.Context(), body, c.GetHeader(signatureHeader))
	if err != nil {
		if errs.Is(err, commands.ErrSignatureInvalid) {
			h.rejectWebhook(c, http.StatusBadRequest, err)
			return
		}
		h.metrics.WebhookEvents.WithLabelValues(payment.EventTypeCheckoutCompleted, "failed").Inc()
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to accept webhook", nil)
		return
	}

	outcome := "ignored"
	switch {
	case result.Forwarded:
		outcome = "queued"
	case result.Rejected:
		outcome = "recorded_failed"
	}
	h.metrics.WebhookEvents.WithLabelValues(result.EventType, outcome).Inc()
	c.JSON(http.StatusOK, resdto.WebhookAck{Received: true})
}

func (h *WebhookHandler) rejectWebhook(c *gin.Context, status int, err error) {
	h.metrics.WebhookEvents.WithLabelValues("unknown", "rejected").Inc()
	_ = c.Error(err)
	c.String(status, "Webhook Error: %s", err.Error())
	c.Abort()
}
