package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/models"
)

// AnalyticsController serves dashboard aggregates for a store.
type AnalyticsController struct {
	db *gorm.DB
}

// NewAnalyticsController creates the controller with its database handle.
func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{db: db}
}

// MonthlyRevenue is one bar of the dashboard revenue graph
type MonthlyRevenue struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// TotalRevenue handles GET /api/:storeId/analytics/revenue. Revenue is the
// sum of item prices across paid orders; unpaid orders contribute nothing.
func (ac *AnalyticsController) TotalRevenue(c *gin.Context) {
	storeID, ok := requireStoreOwner(c, ac.db)
	if !ok {
		return
	}

	var total float64
	err := ac.db.Model(&models.Order{}).
		Select("COALESCE(SUM(products.price), 0)").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.store_id = ? AND orders.is_paid = ?", storeID, true).
		Scan(&total).Error
	if err != nil {
		respondInternal(c, "analytics_revenue", err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"totalRevenue": total})
}

type revenueRow struct {
	CreatedAt int64
	Price     float64
}

// GraphRevenue handles GET /api/:storeId/analytics/revenue/graph. Returns
// twelve buckets, January through December, keyed off each paid order's
// creation time. Bucketing happens in Go so the query stays portable across
// drivers.
func (ac *AnalyticsController) GraphRevenue(c *gin.Context) {
	storeID, ok := requireStoreOwner(c, ac.db)
	if !ok {
		return
	}

	var rows []revenueRow
	err := ac.db.Model(&models.Order{}).
		Select("orders.created_at AS created_at, products.price AS price").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.store_id = ? AND orders.is_paid = ?", storeID, true).
		Scan(&rows).Error
	if err != nil {
		respondInternal(c, "analytics_graph", err)
		return
	}

	graph := []MonthlyRevenue{
		{Name: "Jan"}, {Name: "Feb"}, {Name: "Mar"}, {Name: "Apr"},
		{Name: "May"}, {Name: "Jun"}, {Name: "Jul"}, {Name: "Aug"},
		{Name: "Sep"}, {Name: "Oct"}, {Name: "Nov"}, {Name: "Dec"},
	}
	for _, row := range rows {
		month := time.Unix(row.CreatedAt, 0).UTC().Month()
		graph[int(month)-1].Total += row.Price
	}

	respondData(c, http.StatusOK, graph)
}

// SalesCount handles GET /api/:storeId/analytics/sales-count
func (ac *AnalyticsController) SalesCount(c *gin.Context) {
	storeID, ok := requireStoreOwner(c, ac.db)
	if !ok {
		return
	}

	var count int64
	err := ac.db.Model(&models.Order{}).
		Where("store_id = ? AND is_paid = ?", storeID, true).
		Count(&count).Error
	if err != nil {
		respondInternal(c, "analytics_sales", err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"salesCount": count})
}

// StockCount handles GET /api/:storeId/analytics/stock-count
func (ac *AnalyticsController) StockCount(c *gin.Context) {
	storeID, ok := requireStoreOwner(c, ac.db)
	if !ok {
		return
	}

	var count int64
	err := ac.db.Model(&models.Product{}).
		Where("store_id = ? AND is_archived = ?", storeID, false).
		Count(&count).Error
	if err != nil {
		respondInternal(c, "analytics_stock", err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"stockCount": count})
}
