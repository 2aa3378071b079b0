package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/services"
	"github.com/storecraft/admin-api/utils"
)

// UploadController accepts catalog image uploads for store owners.
type UploadController struct {
	db     *gorm.DB
	images services.ImageService
}

// NewUploadController creates the controller with its database handle and
// image backend.
func NewUploadController(db *gorm.DB, images services.ImageService) *UploadController {
	return &UploadController{db: db, images: images}
}

// Upload handles POST /api/:storeId/uploads. Accepts a multipart "file"
// field, stores it and returns the key plus a presigned URL.
func (uc *UploadController) Upload(c *gin.Context) {
	if _, ok := requireStoreOwner(c, uc.db); !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "A file field is required")
		return
	}

	key, err := uc.images.UploadImage(file)
	if err != nil {
		if uploadErr, ok := err.(*utils.FileUploadError); ok {
			respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		respondInternal(c, "uploads", err)
		return
	}

	url, err := uc.images.GetImageURL(key)
	if err != nil {
		respondInternal(c, "uploads", err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"key": key, "url": url})
}
