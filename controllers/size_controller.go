package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/models"
)

// SizeController handles size CRUD for a store.
type SizeController struct {
	db *gorm.DB
}

// NewSizeController creates the controller with its database handle.
func NewSizeController(db *gorm.DB) *SizeController {
	return &SizeController{db: db}
}

// SizeRequest represents the request body for creating or updating a size
type SizeRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// Create handles POST /api/:storeId/sizes
func (sc *SizeController) Create(c *gin.Context) {
	var req SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name and value are required")
		return
	}

	storeID, ok := requireStoreOwner(c, sc.db)
	if !ok {
		return
	}

	size := models.Size{
		StoreID: storeID,
		Name:    req.Name,
		Value:   req.Value,
	}
	if err := sc.db.Create(&size).Error; err != nil {
		respondInternal(c, "sizes_create", err)
		return
	}

	respondData(c, http.StatusCreated, size)
}

// List handles GET /api/:storeId/sizes - public storefront read
func (sc *SizeController) List(c *gin.Context) {
	var sizes []models.Size
	if err := sc.db.
		Where("store_id = ?", c.Param("storeId")).
		Order("created_at desc").
		Find(&sizes).Error; err != nil {
		respondInternal(c, "sizes_list", err)
		return
	}

	respondData(c, http.StatusOK, sizes)
}

// Get handles GET /api/:storeId/sizes/:sizeId - public storefront read
func (sc *SizeController) Get(c *gin.Context) {
	var size models.Size
	err := sc.db.
		Where("id = ? AND store_id = ?", c.Param("sizeId"), c.Param("storeId")).
		First(&size).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Size not found")
			return
		}
		respondInternal(c, "sizes_get", err)
		return
	}

	respondData(c, http.StatusOK, size)
}

// Update handles PATCH /api/:storeId/sizes/:sizeId
func (sc *SizeController) Update(c *gin.Context) {
	var req SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name and value are required")
		return
	}

	storeID, ok := requireStoreOwner(c, sc.db)
	if !ok {
		return
	}

	var size models.Size
	err := sc.db.Where("id = ? AND store_id = ?", c.Param("sizeId"), storeID).First(&size).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Size not found")
			return
		}
		respondInternal(c, "sizes_update", err)
		return
	}

	size.Name = req.Name
	size.Value = req.Value
	if err := sc.db.Save(&size).Error; err != nil {
		respondInternal(c, "sizes_update", err)
		return
	}

	respondData(c, http.StatusOK, size)
}

// Delete handles DELETE /api/:storeId/sizes/:sizeId
func (sc *SizeController) Delete(c *gin.Context) {
	storeID, ok := requireStoreOwner(c, sc.db)
	if !ok {
		return
	}

	var size models.Size
	err := sc.db.Where("id = ? AND store_id = ?", c.Param("sizeId"), storeID).First(&size).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Size not found")
			return
		}
		respondInternal(c, "sizes_delete", err)
		return
	}

	if err := sc.db.Delete(&size).Error; err != nil {
		respondInternal(c, "sizes_delete", err)
		return
	}

	respondData(c, http.StatusOK, size)
}
