package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/models"
)

// BillboardController handles billboard CRUD for a store.
type BillboardController struct {
	db *gorm.DB
}

// NewBillboardController creates the controller with its database handle.
func NewBillboardController(db *gorm.DB) *BillboardController {
	return &BillboardController{db: db}
}

// BillboardRequest represents the request body for creating or updating a billboard
type BillboardRequest struct {
	Label    string `json:"label" binding:"required"`
	ImageURL string `json:"imageUrl" binding:"required"`
}

// Create handles POST /api/:storeId/billboards
func (bc *BillboardController) Create(c *gin.Context) {
	var req BillboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Label and image URL are required")
		return
	}

	storeID, ok := requireStoreOwner(c, bc.db)
	if !ok {
		return
	}

	billboard := models.Billboard{
		StoreID:  storeID,
		Label:    req.Label,
		ImageURL: req.ImageURL,
	}
	if err := bc.db.Create(&billboard).Error; err != nil {
		respondInternal(c, "billboards_create", err)
		return
	}

	respondData(c, http.StatusCreated, billboard)
}

// List handles GET /api/:storeId/billboards - public storefront read
func (bc *BillboardController) List(c *gin.Context) {
	var billboards []models.Billboard
	if err := bc.db.
		Where("store_id = ?", c.Param("storeId")).
		Order("created_at desc").
		Find(&billboards).Error; err != nil {
		respondInternal(c, "billboards_list", err)
		return
	}

	respondData(c, http.StatusOK, billboards)
}

// Get handles GET /api/:storeId/billboards/:billboardId - public storefront read
func (bc *BillboardController) Get(c *gin.Context) {
	var billboard models.Billboard
	err := bc.db.
		Where("id = ? AND store_id = ?", c.Param("billboardId"), c.Param("storeId")).
		First(&billboard).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Billboard not found")
			return
		}
		respondInternal(c, "billboards_get", err)
		return
	}

	respondData(c, http.StatusOK, billboard)
}

// Update handles PATCH /api/:storeId/billboards/:billboardId
func (bc *BillboardController) Update(c *gin.Context) {
	var req BillboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Label and image URL are required")
		return
	}

	storeID, ok := requireStoreOwner(c, bc.db)
	if !ok {
		return
	}

	var billboard models.Billboard
	err := bc.db.Where("id = ? AND store_id = ?", c.Param("billboardId"), storeID).First(&billboard).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Billboard not found")
			return
		}
		respondInternal(c, "billboards_update", err)
		return
	}

	billboard.Label = req.Label
	billboard.ImageURL = req.ImageURL
	if err := bc.db.Save(&billboard).Error; err != nil {
		respondInternal(c, "billboards_update", err)
		return
	}

	respondData(c, http.StatusOK, billboard)
}

// Delete handles DELETE /api/:storeId/billboards/:billboardId
func (bc *BillboardController) Delete(c *gin.Context) {
	storeID, ok := requireStoreOwner(c, bc.db)
	if !ok {
		return
	}

	var billboard models.Billboard
	err := bc.db.Where("id = ? AND store_id = ?", c.Param("billboardId"), storeID).First(&billboard).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Billboard not found")
			return
		}
		respondInternal(c, "billboards_delete", err)
		return
	}

	if err := bc.db.Delete(&billboard).Error; err != nil {
		respondInternal(c, "billboards_delete", err)
		return
	}

	respondData(c, http.StatusOK, billboard)
}
