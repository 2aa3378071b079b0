package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/logger"
	"github.com/storecraft/admin-api/models"
	"github.com/storecraft/admin-api/services"
)

// CheckoutController turns a cart of product ids into a pending order and a
// hosted payment session.
type CheckoutController struct {
	db      *gorm.DB
	gateway services.PaymentGateway
}

// NewCheckoutController creates the controller with its database handle and
// payment gateway.
func NewCheckoutController(db *gorm.DB, gateway services.PaymentGateway) *CheckoutController {
	return &CheckoutController{db: db, gateway: gateway}
}

// CheckoutRequest represents the request body for starting a checkout
type CheckoutRequest struct {
	ProductIDs  []string `json:"productIds" binding:"required,min=1,dive,required"`
	RedirectURL string   `json:"redirectUrl" binding:"required"`
	CancelURL   string   `json:"cancelUrl" binding:"required"`
}

// Create handles POST /api/:storeId/checkout - public storefront write.
// Each product id in the request becomes one order item at quantity one;
// sending the same id twice does not double it.
func (cc *CheckoutController) Create(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Product ids and redirect URLs are required")
		return
	}

	storeID := c.Param("storeId")

	seen := make(map[string]bool, len(req.ProductIDs))
	ids := make([]string, 0, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	var products []models.Product
	if err := cc.db.
		Where("store_id = ? AND id IN ?", storeID, ids).
		Find(&products).Error; err != nil {
		respondInternal(c, "checkout", err)
		return
	}

	if len(products) != len(ids) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "One or more product ids are unknown for this store")
		return
	}
	for _, p := range products {
		if p.IsArchived {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "One or more products are no longer available")
			return
		}
	}

	lineItems := make([]services.CheckoutLineItem, 0, len(products))
	for _, p := range products {
		lineItems = append(lineItems, services.CheckoutLineItem{
			Name:       p.Name,
			UnitAmount: int64(math.Round(p.Price * 100)),
			Quantity:   1,
			Currency:   "USD",
		})
	}

	order := models.Order{StoreID: storeID}
	err := cc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, p := range products {
			if err := tx.Create(&models.OrderItem{OrderID: order.ID, ProductID: p.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondInternal(c, "checkout", err)
		return
	}

	session, err := cc.gateway.CreateCheckoutSession(c.Request.Context(), services.CheckoutSessionParams{
		LineItems:  lineItems,
		SuccessURL: req.RedirectURL,
		CancelURL:  req.CancelURL,
		OrderID:    order.ID,
	})
	if err != nil {
		// The order only exists to back this session. Roll it back so an
		// abandoned gateway call does not leave an unpayable order behind.
		cleanupErr := cc.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Order{}, "id = ?", order.ID).Error
		})
		if cleanupErr != nil {
			logger.L().Error("failed to roll back order after gateway error",
				zap.String("order_id", order.ID),
				zap.Error(cleanupErr))
		}
		respondInternal(c, "checkout", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}
