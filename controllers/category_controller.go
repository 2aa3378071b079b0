package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/models"
)

// CategoryController handles category CRUD for a store.
type CategoryController struct {
	db *gorm.DB
}

// NewCategoryController creates the controller with its database handle.
func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{db: db}
}

// CategoryRequest represents the request body for creating or updating a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	BillboardID string `json:"billboardId" binding:"required"`
}

// Create handles POST /api/:storeId/categories
func (cc *CategoryController) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name and billboard id are required")
		return
	}

	storeID, ok := requireStoreOwner(c, cc.db)
	if !ok {
		return
	}

	// The referenced billboard must live in the same store.
	var count int64
	if err := cc.db.Model(&models.Billboard{}).
		Where("id = ? AND store_id = ?", req.BillboardID, storeID).
		Count(&count).Error; err != nil {
		respondInternal(c, "categories_create", err)
		return
	}
	if count == 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Billboard id is invalid for this store")
		return
	}

	category := models.Category{
		StoreID:     storeID,
		BillboardID: req.BillboardID,
		Name:        req.Name,
	}
	if err := cc.db.Create(&category).Error; err != nil {
		respondInternal(c, "categories_create", err)
		return
	}

	respondData(c, http.StatusCreated, category)
}

// List handles GET /api/:storeId/categories - public storefront read
func (cc *CategoryController) List(c *gin.Context) {
	var categories []models.Category
	if err := cc.db.
		Where("store_id = ?", c.Param("storeId")).
		Preload("Billboard").
		Order("created_at desc").
		Find(&categories).Error; err != nil {
		respondInternal(c, "categories_list", err)
		return
	}

	respondData(c, http.StatusOK, categories)
}

// Get handles GET /api/:storeId/categories/:categoryId - public storefront read
func (cc *CategoryController) Get(c *gin.Context) {
	var category models.Category
	err := cc.db.
		Where("id = ? AND store_id = ?", c.Param("categoryId"), c.Param("storeId")).
		Preload("Billboard").
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
			return
		}
		respondInternal(c, "categories_get", err)
		return
	}

	respondData(c, http.StatusOK, category)
}

// Update handles PATCH /api/:storeId/categories/:categoryId
func (cc *CategoryController) Update(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name and billboard id are required")
		return
	}

	storeID, ok := requireStoreOwner(c, cc.db)
	if !ok {
		return
	}

	var category models.Category
	err := cc.db.Where("id = ? AND store_id = ?", c.Param("categoryId"), storeID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
			return
		}
		respondInternal(c, "categories_update", err)
		return
	}

	var count int64
	if err := cc.db.Model(&models.Billboard{}).
		Where("id = ? AND store_id = ?", req.BillboardID, storeID).
		Count(&count).Error; err != nil {
		respondInternal(c, "categories_update", err)
		return
	}
	if count == 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Billboard id is invalid for this store")
		return
	}

	category.Name = req.Name
	category.BillboardID = req.BillboardID
	if err := cc.db.Save(&category).Error; err != nil {
		respondInternal(c, "categories_update", err)
		return
	}

	respondData(c, http.StatusOK, category)
}

// Delete handles DELETE /api/:storeId/categories/:categoryId
func (cc *CategoryController) Delete(c *gin.Context) {
	storeID, ok := requireStoreOwner(c, cc.db)
	if !ok {
		return
	}

	var category models.Category
	err := cc.db.Where("id = ? AND store_id = ?", c.Param("categoryId"), storeID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
			return
		}
		respondInternal(c, "categories_delete", err)
		return
	}

	if err := cc.db.Delete(&category).Error; err != nil {
		respondInternal(c, "categories_delete", err)
		return
	}

	respondData(c, http.StatusOK, category)
}
