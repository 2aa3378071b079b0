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

func productRouter(db *gorm.DB, userID string) *gin.Engine {
	router := newTestRouter()
	pc := NewProductController(db, nil)
	router.GET("/api/:storeId/products", pc.List)
	router.GET("/api/:storeId/products/:productId", pc.Get)
	auth := mockAuthMiddleware(userID)
	router.POST("/api/:storeId/products", auth, pc.Create)
	router.PATCH("/api/:storeId/products/:productId", auth, pc.Update)
	router.DELETE("/api/:storeId/products/:productId", auth, pc.Delete)
	return router
}

func validProductBody(fx catalogFixture) ProductRequest {
	return ProductRequest{
		Name:       "Linen Shirt",
		Price:      39.99,
		CategoryID: fx.Category.ID,
		SizeID:     fx.Size.ID,
		ColorID:    fx.Color.ID,
		Images: []ImageRequest{
			{URL: "https://cdn.example.com/shirt-front.png"},
			{URL: "https://cdn.example.com/shirt-back.png"},
		},
	}
}

func TestProductCreate(t *testing.T) {
	db := setupTestDB(t)
	fx := createCatalogFixture(t, db, testOwnerID)
	foreign := createCatalogFixture(t, db, testOwnerID)
	router := productRouter(db, testOwnerID)

	t.Run("valid", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/"+fx.Store.ID+"/products", validProductBody(fx))
		requireStatus(t, w, http.StatusCreated)

		var product models.Product
		env := decodeEnvelope(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &product))
		assert.NotEmpty(t, product.ID)
		assert.Len(t, product.Images, 2)
		assert.Equal(t, fx.Category.ID, product.Category.ID)
		assert.False(t, product.IsArchived)
	})

	t.Run("rejects zero price", func(t *testing.T) {
		body := validProductBody(fx)
		body.Price = 0
		w := performRequest(router, http.MethodPost, "/api/"+fx.Store.ID+"/products", body)
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("rejects empty image list", func(t *testing.T) {
		body := validProductBody(fx)
		body.Images = nil
		w := performRequest(router, http.MethodPost, "/api/"+fx.Store.ID+"/products", body)
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("rejects category from another store", func(t *testing.T) {
		body := validProductBody(fx)
		body.CategoryID = foreign.Category.ID
		w := performRequest(router, http.MethodPost, "/api/"+fx.Store.ID+"/products", body)
		requireStatus(t, w, http.StatusBadRequest)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})

	t.Run("rejects size from another store", func(t *testing.T) {
		body := validProductBody(fx)
		body.SizeID = foreign.Size.ID
		w := performRequest(router, http.MethodPost, "/api/"+fx.Store.ID+"/products", body)
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("failed create leaves no orphan images", func(t *testing.T) {
		body := validProductBody(fx)
		body.ColorID = foreign.Color.ID
		w := performRequest(router, http.MethodPost, "/api/"+fx.Store.ID+"/products", body)
		requireStatus(t, w, http.StatusBadRequest)

		var count int64
		require.NoError(t, db.Model(&models.Product{}).
			Where("color_id = ?", foreign.Color.ID).
			Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestProductListFilters(t *testing.T) {
	db := setupTestDB(t)
	fx := createCatalogFixture(t, db, testOwnerID)

	otherCategory := createTestCategory(t, db, fx.Store.ID, fx.Billboard.ID)
	plain := createTestProduct(t, db, fx, "plain", 10, false)
	createTestProduct(t, db, fx, "archived", 20, true)

	featured := models.Product{
		StoreID:    fx.Store.ID,
		CategoryID: otherCategory.ID,
		SizeID:     fx.Size.ID,
		ColorID:    fx.Color.ID,
		Name:       "featured",
		Price:      30,
		IsFeatured: true,
	}
	require.NoError(t, db.Create(&featured).Error)

	router := productRouter(db, "")

	listIDs := func(t *testing.T, path string) []string {
		w := performRequest(router, http.MethodGet, path, nil)
		requireStatus(t, w, http.StatusOK)

		var products []models.Product
		env := decodeEnvelope(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &products))

		ids := make([]string, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		return ids
	}

	base := "/api/" + fx.Store.ID + "/products"

	t.Run("archived products never listed", func(t *testing.T) {
		ids := listIDs(t, base)
		assert.ElementsMatch(t, []string{plain.ID, featured.ID}, ids)
	})

	t.Run("category filter", func(t *testing.T) {
		ids := listIDs(t, base+"?categoryId="+otherCategory.ID)
		assert.Equal(t, []string{featured.ID}, ids)
	})

	t.Run("featured filter", func(t *testing.T) {
		ids := listIDs(t, base+"?isFeatured=true")
		assert.Equal(t, []string{featured.ID}, ids)
	})

	t.Run("isFeatured=false selects non-featured only", func(t *testing.T) {
		ids := listIDs(t, base+"?isFeatured=false")
		assert.Equal(t, []string{plain.ID}, ids)
	})

	t.Run("unparsable isFeatured is ignored", func(t *testing.T) {
		ids := listIDs(t, base+"?isFeatured=banana")
		assert.ElementsMatch(t, []string{plain.ID, featured.ID}, ids)
	})

	t.Run("color and size filters", func(t *testing.T) {
		ids := listIDs(t, base+"?colorId="+fx.Color.ID+"&sizeId="+fx.Size.ID)
		assert.ElementsMatch(t, []string{plain.ID, featured.ID}, ids)
	})

	t.Run("archived product still fetchable by id", func(t *testing.T) {
		var archived models.Product
		require.NoError(t, db.First(&archived, "name = ?", "archived").Error)

		w := performRequest(router, http.MethodGet, base+"/"+archived.ID, nil)
		requireStatus(t, w, http.StatusOK)
	})
}

func TestProductUpdateReplacesImages(t *testing.T) {
	db := setupTestDB(t)
	fx := createCatalogFixture(t, db, testOwnerID)
	product := createTestProduct(t, db, fx, "shirt", 25, false)

	var oldImages []models.Image
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&oldImages).Error)
	require.NotEmpty(t, oldImages)

	router := productRouter(db, testOwnerID)

	body := validProductBody(fx)
	body.Name = "Updated Shirt"
	body.Images = []ImageRequest{
		{URL: "https://cdn.example.com/new-1.png"},
		{URL: "https://cdn.example.com/new-2.png"},
		{URL: "https://cdn.example.com/new-3.png"},
	}

	w := performRequest(router, http.MethodPatch, "/api/"+fx.Store.ID+"/products/"+product.ID, body)
	requireStatus(t, w, http.StatusOK)

	var images []models.Image
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&images).Error)
	require.Len(t, images, 3)

	urls := make([]string, 0, len(images))
	for _, img := range images {
		for _, old := range oldImages {
			assert.NotEqual(t, old.ID, img.ID, "old image rows must be gone")
		}
		urls = append(urls, img.URL)
	}
	assert.ElementsMatch(t, []string{
		"https://cdn.example.com/new-1.png",
		"https://cdn.example.com/new-2.png",
		"https://cdn.example.com/new-3.png",
	}, urls)

	var saved models.Product
	require.NoError(t, db.First(&saved, "id = ?", product.ID).Error)
	assert.Equal(t, "Updated Shirt", saved.Name)
}

func TestProductUpdateUnknownID(t *testing.T) {
	db := setupTestDB(t)
	fx := createCatalogFixture(t, db, testOwnerID)
	router := productRouter(db, testOwnerID)

	w := performRequest(router, http.MethodPatch, "/api/"+fx.Store.ID+"/products/nope", validProductBody(fx))
	requireStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestProductDeleteRemovesImages(t *testing.T) {
	db := setupTestDB(t)
	fx := createCatalogFixture(t, db, testOwnerID)
	product := createTestProduct(t, db, fx, "doomed", 15, false)
	router := productRouter(db, testOwnerID)

	w := performRequest(router, http.MethodDelete, "/api/"+fx.Store.ID+"/products/"+product.ID, nil)
	requireStatus(t, w, http.StatusOK)

	var products, images int64
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&products).Error)
	require.NoError(t, db.Model(&models.Image{}).Where("product_id = ?", product.ID).Count(&images).Error)
	assert.Zero(t, products)
	assert.Zero(t, images)
}
