package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/config"
	"github.com/storecraft/admin-api/models"
)

const (
	testOwnerID    = "user_owner"
	testIntruderID = "user_intruder"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.OpenDatabase(sqlite.Open(":memory:"))
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

// mockAuthMiddleware injects an identity the way the real auth middleware
// does. An empty userID simulates an unauthenticated request.
func mockAuthMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	env := decodeEnvelope(t, w)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return env.Error.Code
}

func createTestStore(t *testing.T, db *gorm.DB, userID string) models.Store {
	t.Helper()

	store := models.Store{UserID: userID, Name: "Test Store"}
	require.NoError(t, db.Create(&store).Error)
	return store
}

func createTestBillboard(t *testing.T, db *gorm.DB, storeID string) models.Billboard {
	t.Helper()

	billboard := models.Billboard{StoreID: storeID, Label: "Summer", ImageURL: "https://cdn.example.com/summer.png"}
	require.NoError(t, db.Create(&billboard).Error)
	return billboard
}

func createTestCategory(t *testing.T, db *gorm.DB, storeID, billboardID string) models.Category {
	t.Helper()

	category := models.Category{StoreID: storeID, BillboardID: billboardID, Name: "Shirts"}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createTestSize(t *testing.T, db *gorm.DB, storeID string) models.Size {
	t.Helper()

	size := models.Size{StoreID: storeID, Name: "Medium", Value: "M"}
	require.NoError(t, db.Create(&size).Error)
	return size
}

func createTestColor(t *testing.T, db *gorm.DB, storeID string) models.Color {
	t.Helper()

	color := models.Color{StoreID: storeID, Name: "Black", Value: "#000"}
	require.NoError(t, db.Create(&color).Error)
	return color
}

type catalogFixture struct {
	Store     models.Store
	Billboard models.Billboard
	Category  models.Category
	Size      models.Size
	Color     models.Color
}

func createCatalogFixture(t *testing.T, db *gorm.DB, userID string) catalogFixture {
	t.Helper()

	store := createTestStore(t, db, userID)
	billboard := createTestBillboard(t, db, store.ID)
	return catalogFixture{
		Store:     store,
		Billboard: billboard,
		Category:  createTestCategory(t, db, store.ID, billboard.ID),
		Size:      createTestSize(t, db, store.ID),
		Color:     createTestColor(t, db, store.ID),
	}
}

func createTestProduct(t *testing.T, db *gorm.DB, fx catalogFixture, name string, price float64, archived bool) models.Product {
	t.Helper()

	product := models.Product{
		StoreID:    fx.Store.ID,
		CategoryID: fx.Category.ID,
		SizeID:     fx.Size.ID,
		ColorID:    fx.Color.ID,
		Name:       name,
		Price:      price,
		IsArchived: archived,
	}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&models.Image{ProductID: product.ID, URL: "https://cdn.example.com/" + name + ".png"}).Error)
	return product
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
