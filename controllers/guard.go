package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/middleware"
	"github.com/storecraft/admin-api/models"
)

// requireStoreOwner verifies that the acting identity owns the store named in
// the route. Every mutating catalog endpoint calls this before touching
// storage. On failure it writes the response and returns ok=false:
// 403 when there is no identity, 405 when the store does not exist or belongs
// to someone else. The two 405 cases are indistinguishable to the caller.
func requireStoreOwner(c *gin.Context, db *gorm.DB) (storeID string, ok bool) {
	storeID = c.Param("storeId")
	if storeID == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Store id is required")
		return "", false
	}

	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusForbidden, "UNAUTHENTICATED", "No valid identity")
		return "", false
	}

	var store models.Store
	if err := db.Where("id = ? AND user_id = ?", storeID, userID).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusMethodNotAllowed, "UNAUTHORIZED", "Unauthorized")
			return "", false
		}
		respondInternal(c, "store_guard", err)
		return "", false
	}

	return storeID, true
}
