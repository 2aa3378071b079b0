package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/models"
)

func sizeRouter(db *gorm.DB, userID string) *gin.Engine {
	router := newTestRouter()
	sc := NewSizeController(db)
	router.GET("/api/:storeId/sizes", sc.List)
	router.GET("/api/:storeId/sizes/:sizeId", sc.Get)
	auth := mockAuthMiddleware(userID)
	router.POST("/api/:storeId/sizes", auth, sc.Create)
	router.PATCH("/api/:storeId/sizes/:sizeId", auth, sc.Update)
	router.DELETE("/api/:storeId/sizes/:sizeId", auth, sc.Delete)
	return router
}

func TestSizeCreate(t *testing.T) {
	db := setupTestDB(t)
	store := createTestStore(t, db, testOwnerID)
	router := sizeRouter(db, testOwnerID)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "valid",
			body:       SizeRequest{Name: "Small", Value: "S"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			body:       gin.H{"value": "S"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing value",
			body:       gin.H{"name": "Small"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/"+store.ID+"/sizes", tt.body)
			requireStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusCreated {
				env := decodeEnvelope(t, w)
				require.True(t, env.Success)

				var size models.Size
				require.NoError(t, json.Unmarshal(env.Data, &size))
				assert.NotEmpty(t, size.ID)
				assert.Equal(t, store.ID, size.StoreID)
				assert.Equal(t, "Small", size.Name)
			} else {
				assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
			}
		})
	}

	// Only the valid case may have persisted a row.
	var count int64
	require.NoError(t, db.Model(&models.Size{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSizeMutationsRequireOwnership(t *testing.T) {
	db := setupTestDB(t)
	store := createTestStore(t, db, testOwnerID)
	size := createTestSize(t, db, store.ID)
	router := sizeRouter(db, testIntruderID)

	body := SizeRequest{Name: "Hijacked", Value: "XXL"}

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"create", http.MethodPost, "/api/" + store.ID + "/sizes", body},
		{"update", http.MethodPatch, "/api/" + store.ID + "/sizes/" + size.ID, body},
		{"delete", http.MethodDelete, "/api/" + store.ID + "/sizes/" + size.ID, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, tt.method, tt.path, tt.body)
			requireStatus(t, w, http.StatusMethodNotAllowed)
			assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
		})
	}

	var saved models.Size
	require.NoError(t, db.First(&saved, "id = ?", size.ID).Error)
	assert.Equal(t, "Medium", saved.Name, "rejected mutations must not touch the row")
}

func TestSizePublicReads(t *testing.T) {
	db := setupTestDB(t)
	store := createTestStore(t, db, testOwnerID)
	size := createTestSize(t, db, store.ID)
	otherStore := createTestStore(t, db, testIntruderID)
	createTestSize(t, db, otherStore.ID)

	router := sizeRouter(db, "")

	t.Run("list is scoped to the store", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/"+store.ID+"/sizes", nil)
		requireStatus(t, w, http.StatusOK)

		var sizes []models.Size
		env := decodeEnvelope(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &sizes))
		require.Len(t, sizes, 1)
		assert.Equal(t, size.ID, sizes[0].ID)
	})

	t.Run("get", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/"+store.ID+"/sizes/"+size.ID, nil)
		requireStatus(t, w, http.StatusOK)
	})

	t.Run("get unknown id", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/"+store.ID+"/sizes/nope", nil)
		requireStatus(t, w, http.StatusNotFound)
		assert.Equal(t, "NOT_FOUND", errorCode(t, w))
	})
}

func TestSizeUpdate(t *testing.T) {
	db := setupTestDB(t)
	store := createTestStore(t, db, testOwnerID)
	size := createTestSize(t, db, store.ID)
	router := sizeRouter(db, testOwnerID)

	t.Run("valid", func(t *testing.T) {
		w := performRequest(router, http.MethodPatch, "/api/"+store.ID+"/sizes/"+size.ID,
			SizeRequest{Name: "Extra Large", Value: "XL"})
		requireStatus(t, w, http.StatusOK)

		var saved models.Size
		require.NoError(t, db.First(&saved, "id = ?", size.ID).Error)
		assert.Equal(t, "Extra Large", saved.Name)
		assert.Equal(t, "XL", saved.Value)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := performRequest(router, http.MethodPatch, "/api/"+store.ID+"/sizes/nope",
			SizeRequest{Name: "Ghost", Value: "G"})
		requireStatus(t, w, http.StatusNotFound)
		assert.Equal(t, "NOT_FOUND", errorCode(t, w))
	})
}

func TestSizeDelete(t *testing.T) {
	db := setupTestDB(t)
	store := createTestStore(t, db, testOwnerID)
	size := createTestSize(t, db, store.ID)
	router := sizeRouter(db, testOwnerID)

	w := performRequest(router, http.MethodDelete, "/api/"+store.ID+"/sizes/"+size.ID, nil)
	requireStatus(t, w, http.StatusOK)

	var count int64
	require.NoError(t, db.Model(&models.Size{}).Where("id = ?", size.ID).Count(&count).Error)
	assert.Zero(t, count)

	t.Run("unknown id", func(t *testing.T) {
		w := performRequest(router, http.MethodDelete, "/api/"+store.ID+"/sizes/"+size.ID, nil)
		requireStatus(t, w, http.StatusNotFound)
	})
}
