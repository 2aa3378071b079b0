package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/models"
	"github.com/storecraft/admin-api/services"
)

// ProductController handles product CRUD for a store, including the nested
// image set and the cached public listing.
type ProductController struct {
	db    *gorm.DB
	cache *services.CatalogCache
}

// NewProductController creates the controller. The cache may be nil.
func NewProductController(db *gorm.DB, cache *services.CatalogCache) *ProductController {
	return &ProductController{db: db, cache: cache}
}

// ImageRequest is one image URL in a product payload
type ImageRequest struct {
	URL string `json:"url" binding:"required"`
}

// ProductRequest represents the request body for creating or updating a product
type ProductRequest struct {
	Name       string         `json:"name" binding:"required"`
	Price      float64        `json:"price" binding:"required,gt=0"`
	CategoryID string         `json:"categoryId" binding:"required"`
	SizeID     string         `json:"sizeId" binding:"required"`
	ColorID    string         `json:"colorId" binding:"required"`
	Images     []ImageRequest `json:"images" binding:"required,min=1,dive"`
	IsFeatured bool           `json:"isFeatured"`
	IsArchived bool           `json:"isArchived"`
}

// validateReferences checks that the category, size and color referenced by
// the payload all belong to the product's store. The schema does not enforce
// this, so it is re-verified on every write.
func (pc *ProductController) validateReferences(storeID string, req *ProductRequest) (string, error) {
	checks := []struct {
		model interface{}
		id    string
		field string
	}{
		{&models.Category{}, req.CategoryID, "Category"},
		{&models.Size{}, req.SizeID, "Size"},
		{&models.Color{}, req.ColorID, "Color"},
	}

	for _, check := range checks {
		var count int64
		if err := pc.db.Model(check.model).
			Where("id = ? AND store_id = ?", check.id, storeID).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return check.field + " id is invalid for this store", nil
		}
	}
	return "", nil
}

func (pc *ProductController) loadProduct(id, storeID string) (*models.Product, error) {
	var product models.Product
	err := pc.db.
		Where("id = ? AND store_id = ?", id, storeID).
		Preload("Images").
		Preload("Category").
		Preload("Size").
		Preload("Color").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create handles POST /api/:storeId/products
func (pc *ProductController) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name, positive price, category, size, color and at least one image are required")
		return
	}

	storeID, ok := requireStoreOwner(c, pc.db)
	if !ok {
		return
	}

	if msg, err := pc.validateReferences(storeID, &req); err != nil {
		respondInternal(c, "products_create", err)
		return
	} else if msg != "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	product := models.Product{
		StoreID:    storeID,
		CategoryID: req.CategoryID,
		SizeID:     req.SizeID,
		ColorID:    req.ColorID,
		Name:       req.Name,
		Price:      req.Price,
		IsFeatured: req.IsFeatured,
		IsArchived: req.IsArchived,
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		for _, img := range req.Images {
			if err := tx.Create(&models.Image{ProductID: product.ID, URL: img.URL}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondInternal(c, "products_create", err)
		return
	}

	pc.cache.InvalidateStore(c.Request.Context(), storeID)

	created, err := pc.loadProduct(product.ID, storeID)
	if err != nil {
		respondInternal(c, "products_create", err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

// List handles GET /api/:storeId/products - public storefront read.
// Supports categoryId, sizeId, colorId and isFeatured filters; archived
// products are never listed. isFeatured must parse as a bool and filters
// in either direction; unparsable values are ignored.
func (pc *ProductController) List(c *gin.Context) {
	storeID := c.Param("storeId")
	filters := map[string]string{
		"categoryId": c.Query("categoryId"),
		"sizeId":     c.Query("sizeId"),
		"colorId":    c.Query("colorId"),
		"isFeatured": c.Query("isFeatured"),
	}

	cacheKey := pc.cache.ProductListKey(storeID, filters)
	if cached, ok := pc.cache.Get(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
		return
	}

	query := pc.db.
		Where("store_id = ? AND is_archived = ?", storeID, false).
		Preload("Images").
		Preload("Category").
		Preload("Size").
		Preload("Color").
		Order("created_at desc")

	if filters["categoryId"] != "" {
		query = query.Where("category_id = ?", filters["categoryId"])
	}
	if filters["sizeId"] != "" {
		query = query.Where("size_id = ?", filters["sizeId"])
	}
	if filters["colorId"] != "" {
		query = query.Where("color_id = ?", filters["colorId"])
	}
	if filters["isFeatured"] != "" {
		if featured, err := strconv.ParseBool(filters["isFeatured"]); err == nil {
			query = query.Where("is_featured = ?", featured)
		}
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		respondInternal(c, "products_list", err)
		return
	}

	envelope, err := json.Marshal(gin.H{"success": true, "data": products})
	if err != nil {
		respondInternal(c, "products_list", err)
		return
	}

	pc.cache.Set(c.Request.Context(), cacheKey, envelope)
	c.Data(http.StatusOK, "application/json; charset=utf-8", envelope)
}

// Get handles GET /api/:storeId/products/:productId - public storefront read
func (pc *ProductController) Get(c *gin.Context) {
	product, err := pc.loadProduct(c.Param("productId"), c.Param("storeId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		respondInternal(c, "products_get", err)
		return
	}

	respondData(c, http.StatusOK, product)
}

// Update handles PATCH /api/:storeId/products/:productId. The image set is
// replaced wholesale inside the same transaction as the row update: existing
// images are deleted and the new set inserted, never diffed.
func (pc *ProductController) Update(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name, positive price, category, size, color and at least one image are required")
		return
	}

	storeID, ok := requireStoreOwner(c, pc.db)
	if !ok {
		return
	}

	var product models.Product
	err := pc.db.Where("id = ? AND store_id = ?", c.Param("productId"), storeID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		respondInternal(c, "products_update", err)
		return
	}

	if msg, err := pc.validateReferences(storeID, &req); err != nil {
		respondInternal(c, "products_update", err)
		return
	} else if msg != "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	product.Name = req.Name
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	product.SizeID = req.SizeID
	product.ColorID = req.ColorID
	product.IsFeatured = req.IsFeatured
	product.IsArchived = req.IsArchived
	product.Images = nil

	err = pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images").Save(&product).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		for _, img := range req.Images {
			if err := tx.Create(&models.Image{ProductID: product.ID, URL: img.URL}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondInternal(c, "products_update", err)
		return
	}

	pc.cache.InvalidateStore(c.Request.Context(), storeID)

	updated, err := pc.loadProduct(product.ID, storeID)
	if err != nil {
		respondInternal(c, "products_update", err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

// Delete handles DELETE /api/:storeId/products/:productId. Images cascade
// with their product inside one transaction.
func (pc *ProductController) Delete(c *gin.Context) {
	storeID, ok := requireStoreOwner(c, pc.db)
	if !ok {
		return
	}

	var product models.Product
	err := pc.db.Where("id = ? AND store_id = ?", c.Param("productId"), storeID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		respondInternal(c, "products_delete", err)
		return
	}

	err = pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		respondInternal(c, "products_delete", err)
		return
	}

	pc.cache.InvalidateStore(c.Request.Context(), storeID)
	respondData(c, http.StatusOK, product)
}
