package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/logger"
	"github.com/storecraft/admin-api/models"
	"github.com/storecraft/admin-api/services"
)

// WebhookController reconciles payment provider events with local orders.
type WebhookController struct {
	db      *gorm.DB
	gateway services.PaymentGateway
}

// NewWebhookController creates the controller with its database handle and
// payment gateway.
func NewWebhookController(db *gorm.DB, gateway services.PaymentGateway) *WebhookController {
	return &WebhookController{db: db, gateway: gateway}
}

// Handle processes POST /api/webhook. The endpoint is unauthenticated; the
// HMAC signature on the payload is the only trust anchor. Processing is
// idempotent, so provider retries and replays are safe.
func (wc *WebhookController) Handle(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to read request body")
		return
	}

	event, err := wc.gateway.ConstructWebhookEvent(payload, c.GetHeader(services.SignatureHeader))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Webhook signature verification failed")
		return
	}

	if event.Type != services.EventCheckoutCompleted {
		c.Status(http.StatusOK)
		return
	}

	session := event.Data.Object
	orderID := session.Metadata["order_id"]
	if orderID == "" {
		respondError(c, http.StatusBadRequest, "MISSING_ORDER_ID", "Event metadata carries no order id")
		return
	}

	address := ""
	phone := ""
	if session.CustomerDetails != nil {
		phone = session.CustomerDetails.Phone
		if session.CustomerDetails.Address != nil {
			address = session.CustomerDetails.Address.Format()
		}
	}

	result := wc.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"is_paid": true,
			"address": address,
			"phone":   phone,
		})
	if result.Error != nil {
		respondInternal(c, "webhook", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		// The order may have been swept as stale before the event arrived.
		// Acknowledge anyway so the provider stops retrying.
		logger.L().Warn("webhook event references unknown order",
			zap.String("event_id", event.ID),
			zap.String("order_id", orderID))
		c.Status(http.StatusOK)
		return
	}

	var productIDs []string
	if err := wc.db.Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Pluck("product_id", &productIDs).Error; err != nil {
		respondInternal(c, "webhook", err)
		return
	}

	if len(productIDs) > 0 {
		if err := wc.db.Model(&models.Product{}).
			Where("id IN ?", productIDs).
			Update("is_archived", true).Error; err != nil {
			respondInternal(c, "webhook", err)
			return
		}
	}

	c.Status(http.StatusOK)
}
