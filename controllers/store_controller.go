package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/middleware"
	"github.com/storecraft/admin-api/models"
)

// StoreController manages the stores a user owns.
type StoreController struct {
	db *gorm.DB
}

// NewStoreController creates the controller with its database handle.
func NewStoreController(db *gorm.DB) *StoreController {
	return &StoreController{db: db}
}

// StoreRequest represents the request body for creating or renaming a store
type StoreRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create handles POST /api/stores
func (sc *StoreController) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusForbidden, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name is required")
		return
	}

	store := models.Store{
		UserID: userID,
		Name:   req.Name,
	}
	if err := sc.db.Create(&store).Error; err != nil {
		respondInternal(c, "stores_create", err)
		return
	}

	respondData(c, http.StatusCreated, store)
}

// List handles GET /api/stores - every store owned by the caller
func (sc *StoreController) List(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusForbidden, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var stores []models.Store
	if err := sc.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&stores).Error; err != nil {
		respondInternal(c, "stores_list", err)
		return
	}

	respondData(c, http.StatusOK, stores)
}

// Update handles PATCH /api/stores/:storeId
func (sc *StoreController) Update(c *gin.Context) {
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name is required")
		return
	}

	storeID, ok := requireStoreOwner(c, sc.db)
	if !ok {
		return
	}

	var store models.Store
	if err := sc.db.First(&store, "id = ?", storeID).Error; err != nil {
		respondInternal(c, "stores_update", err)
		return
	}

	store.Name = req.Name
	if err := sc.db.Save(&store).Error; err != nil {
		respondInternal(c, "stores_update", err)
		return
	}

	respondData(c, http.StatusOK, store)
}

// Delete handles DELETE /api/stores/:storeId. Only the store row itself is
// removed; dependent catalog rows are left for a maintenance task.
func (sc *StoreController) Delete(c *gin.Context) {
	storeID, ok := requireStoreOwner(c, sc.db)
	if !ok {
		return
	}

	var store models.Store
	if err := sc.db.First(&store, "id = ?", storeID).Error; err != nil {
		respondInternal(c, "stores_delete", err)
		return
	}

	if err := sc.db.Delete(&store).Error; err != nil {
		respondInternal(c, "stores_delete", err)
		return
	}

	respondData(c, http.StatusOK, store)
}
