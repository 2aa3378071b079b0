package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/models"
)

// ColorController handles color CRUD for a store.
type ColorController struct {
	db *gorm.DB
}

// NewColorController creates the controller with its database handle.
func NewColorController(db *gorm.DB) *ColorController {
	return &ColorController{db: db}
}

// ColorRequest represents the request body for creating or updating a color
type ColorRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// Create handles POST /api/:storeId/colors
func (cc *ColorController) Create(c *gin.Context) {
	var req ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name and value are required")
		return
	}

	storeID, ok := requireStoreOwner(c, cc.db)
	if !ok {
		return
	}

	color := models.Color{
		StoreID: storeID,
		Name:    req.Name,
		Value:   req.Value,
	}
	if err := cc.db.Create(&color).Error; err != nil {
		respondInternal(c, "colors_create", err)
		return
	}

	respondData(c, http.StatusCreated, color)
}

// List handles GET /api/:storeId/colors - public storefront read
func (cc *ColorController) List(c *gin.Context) {
	var colors []models.Color
	if err := cc.db.
		Where("store_id = ?", c.Param("storeId")).
		Order("created_at desc").
		Find(&colors).Error; err != nil {
		respondInternal(c, "colors_list", err)
		return
	}

	respondData(c, http.StatusOK, colors)
}

// Get handles GET /api/:storeId/colors/:colorId - public storefront read
func (cc *ColorController) Get(c *gin.Context) {
	var color models.Color
	err := cc.db.
		Where("id = ? AND store_id = ?", c.Param("colorId"), c.Param("storeId")).
		First(&color).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Color not found")
			return
		}
		respondInternal(c, "colors_get", err)
		return
	}

	respondData(c, http.StatusOK, color)
}

// Update handles PATCH /api/:storeId/colors/:colorId
func (cc *ColorController) Update(c *gin.Context) {
	var req ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name and value are required")
		return
	}

	storeID, ok := requireStoreOwner(c, cc.db)
	if !ok {
		return
	}

	var color models.Color
	err := cc.db.Where("id = ? AND store_id = ?", c.Param("colorId"), storeID).First(&color).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Color not found")
			return
		}
		respondInternal(c, "colors_update", err)
		return
	}

	color.Name = req.Name
	color.Value = req.Value
	if err := cc.db.Save(&color).Error; err != nil {
		respondInternal(c, "colors_update", err)
		return
	}

	respondData(c, http.StatusOK, color)
}

// Delete handles DELETE /api/:storeId/colors/:colorId
func (cc *ColorController) Delete(c *gin.Context) {
	storeID, ok := requireStoreOwner(c, cc.db)
	if !ok {
		return
	}

	var color models.Color
	err := cc.db.Where("id = ? AND store_id = ?", c.Param("colorId"), storeID).First(&color).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Color not found")
			return
		}
		respondInternal(c, "colors_delete", err)
		return
	}

	if err := cc.db.Delete(&color).Error; err != nil {
		respondInternal(c, "colors_delete", err)
		return
	}

	respondData(c, http.StatusOK, color)
}
