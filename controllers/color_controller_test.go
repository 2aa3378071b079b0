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

func colorRouter(db *gorm.DB, userID string) *gin.Engine {
	router := newTestRouter()
	cc := NewColorController(db)
	router.GET("/api/:storeId/colors", cc.List)
	router.GET("/api/:storeId/colors/:colorId", cc.Get)
	auth := mockAuthMiddleware(userID)
	router.POST("/api/:storeId/colors", auth, cc.Create)
	router.PATCH("/api/:storeId/colors/:colorId", auth, cc.Update)
	router.DELETE("/api/:storeId/colors/:colorId", auth, cc.Delete)
	return router
}

func TestColorCreate(t *testing.T) {
	db := setupTestDB(t)
	store := createTestStore(t, db, testOwnerID)
	router := colorRouter(db, testOwnerID)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "valid",
			body:       ColorRequest{Name: "Crimson", Value: "#dc143c"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			body:       gin.H{"value": "#dc143c"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing value",
			body:       gin.H{"name": "Crimson"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/"+store.ID+"/colors", tt.body)
			requireStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusCreated {
				env := decodeEnvelope(t, w)
				require.True(t, env.Success)

				var color models.Color
				require.NoError(t, json.Unmarshal(env.Data, &color))
				assert.NotEmpty(t, color.ID)
				assert.Equal(t, store.ID, color.StoreID)
				assert.Equal(t, "#dc143c", color.Value)
			} else {
				assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
			}
		})
	}

	// Only the valid case may have persisted a row.
	var count int64
	require.NoError(t, db.Model(&models.Color{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestColorMutationsRequireOwnership(t *testing.T) {
	db := setupTestDB(t)
	store := createTestStore(t, db, testOwnerID)
	color := createTestColor(t, db, store.ID)
	router := colorRouter(db, testIntruderID)

	body := ColorRequest{Name: "Hijacked", Value: "#bad"}

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"create", http.MethodPost, "/api/" + store.ID + "/colors", body},
		{"update", http.MethodPatch, "/api/" + store.ID + "/colors/" + color.ID, body},
		{"delete", http.MethodDelete, "/api/" + store.ID + "/colors/" + color.ID, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, tt.method, tt.path, tt.body)
			requireStatus(t, w, http.StatusMethodNotAllowed)
			assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
		})
	}

	var saved models.Color
	require.NoError(t, db.First(&saved, "id = ?", color.ID).Error)
	assert.Equal(t, "Black", saved.Name, "rejected mutations must not touch the row")
}

func TestColorPublicReads(t *testing.T) {
	db := setupTestDB(t)
	store := createTestStore(t, db, testOwnerID)
	color := createTestColor(t, db, store.ID)
	otherStore := createTestStore(t, db, testIntruderID)
	createTestColor(t, db, otherStore.ID)

	router := colorRouter(db, "")

	t.Run("list is scoped to the store", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/"+store.ID+"/colors", nil)
		requireStatus(t, w, http.StatusOK)

		var colors []models.Color
		env := decodeEnvelope(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &colors))
		require.Len(t, colors, 1)
		assert.Equal(t, color.ID, colors[0].ID)
	})

	t.Run("get", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/"+store.ID+"/colors/"+color.ID, nil)
		requireStatus(t, w, http.StatusOK)
	})

	t.Run("get unknown id", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/"+store.ID+"/colors/nope", nil)
		requireStatus(t, w, http.StatusNotFound)
		assert.Equal(t, "NOT_FOUND", errorCode(t, w))
	})
}

func TestColorUpdate(t *testing.T) {
	db := setupTestDB(t)
	store := createTestStore(t, db, testOwnerID)
	color := createTestColor(t, db, store.ID)
	router := colorRouter(db, testOwnerID)

	t.Run("valid", func(t *testing.T) {
		w := performRequest(router, http.MethodPatch, "/api/"+store.ID+"/colors/"+color.ID,
			ColorRequest{Name: "Ivory", Value: "#fffff0"})
		requireStatus(t, w, http.StatusOK)

		var saved models.Color
		require.NoError(t, db.First(&saved, "id = ?", color.ID).Error)
		assert.Equal(t, "Ivory", saved.Name)
		assert.Equal(t, "#fffff0", saved.Value)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := performRequest(router, http.MethodPatch, "/api/"+store.ID+"/colors/nope",
			ColorRequest{Name: "Ghost", Value: "#000"})
		requireStatus(t, w, http.StatusNotFound)
		assert.Equal(t, "NOT_FOUND", errorCode(t, w))
	})
}

func TestColorDelete(t *testing.T) {
	db := setupTestDB(t)
	store := createTestStore(t, db, testOwnerID)
	color := createTestColor(t, db, store.ID)
	router := colorRouter(db, testOwnerID)

	w := performRequest(router, http.MethodDelete, "/api/"+store.ID+"/colors/"+color.ID, nil)
	requireStatus(t, w, http.StatusOK)

	var count int64
	require.NoError(t, db.Model(&models.Color{}).Where("id = ?", color.ID).Count(&count).Error)
	assert.Zero(t, count)

	t.Run("unknown id", func(t *testing.T) {
		w := performRequest(router, http.MethodDelete, "/api/"+store.ID+"/colors/"+color.ID, nil)
		requireStatus(t, w, http.StatusNotFound)
	})
}
