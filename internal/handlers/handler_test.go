// internal/handlers/handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/return0ok/e-market/internal/config"
	"github.com/return0ok/e-market/internal/i18n"
	"github.com/return0ok/e-market/internal/middleware"
	"github.com/return0ok/e-market/internal/models"
	"github.com/return0ok/e-market/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = i18n.Initialize()
}

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Seller{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
		&models.ShippingAddress{},
		&models.Order{},
		&models.OrderItem{},
	))

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}

	authHandler := NewAuthHandler(services.NewAuthService(db, cfg))
	shopHandler := NewShopHandler(services.NewCatalogService(db), services.NewReviewService(db))
	cartHandler := NewCartHandler(services.NewCartService(db), services.NewCheckoutService(db))
	profileHandler := NewProfileHandler(services.NewProfileService(db), services.NewOrderService(db))

	r := gin.New()
	r.Use(middleware.Language())

	v1 := r.Group("/api/v1")
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	v1.GET("/shop/products", shopHandler.ListProducts)
	v1.GET("/shop/products/:slug", shopHandler.GetProduct)

	authed := v1.Group("")
	authed.Use(middleware.AuthRequired())
	authed.GET("/shop/cart", cartHandler.ListCart)
	authed.POST("/shop/cart", cartHandler.ToggleCartItem)
	authed.POST("/shop/checkout", cartHandler.Checkout)
	authed.GET("/profiles/me", profileHandler.GetProfile)
	authed.POST("/profiles/me/shipping", profileHandler.CreateShippingAddress)

	return &testEnv{db: db, router: r}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"password":   "s3cretpass",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func (e *testEnv) seedProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()

	user := &models.User{
		FirstName:   "Shop",
		LastName:    "Owner",
		Email:       name + "-owner@example.com",
		AccountType: models.AccountTypeSeller,
		IsActive:    true,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, e.db.Create(user).Error)

	seller := &models.Seller{
		UserID:       user.ID,
		BusinessName: name + " shop",
		Slug:         name + "-shop",
		IsApproved:   true,
	}
	require.NoError(t, e.db.Create(seller).Error)

	category := &models.Category{Name: name + " cat", Slug: name + "-cat"}
	require.NoError(t, e.db.Create(category).Error)

	d, err := decimal.NewFromString(price)
	require.NoError(t, err)
	product := &models.Product{
		SellerID:     &seller.ID,
		Name:         name,
		Slug:         name,
		Desc:         "test product",
		PriceCurrent: d,
		CategoryID:   category.ID,
		InStock:      5,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"first_name": "Test",
		"email":      "not-an-email",
		"password":   "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	env := setupTestEnv(t)

	body := gin.H{
		"first_name": "Test",
		"last_name":  "User",
		"email":      "dup@example.com",
		"password":   "s3cretpass",
	}
	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/profiles/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/profiles/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartToggleStatusCodes(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerAndLogin(t, "buyer@example.com")
	product := env.seedProduct(t, "kettle", "25.00")

	// First toggle creates: 201.
	w := env.request(t, http.MethodPost, "/api/v1/shop/cart", token, gin.H{
		"slug":     product.Slug,
		"quantity": 2,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Second toggle updates: 200.
	w = env.request(t, http.MethodPost, "/api/v1/shop/cart", token, gin.H{
		"slug":     product.Slug,
		"quantity": 5,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Zero removes: 200 with a null item.
	w = env.request(t, http.MethodPost, "/api/v1/shop/cart", token, gin.H{
		"slug":     product.Slug,
		"quantity": 0,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Status string          `json:"status"`
			Item   json.RawMessage `json:"item"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "removed", resp.Data.Status)
	assert.Equal(t, "null", string(resp.Data.Item))

	// Unknown slug: 404.
	w = env.request(t, http.MethodPost, "/api/v1/shop/cart", token, gin.H{
		"slug":     "no-such-product",
		"quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutEndToEnd(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerAndLogin(t, "buyer@example.com")
	product := env.seedProduct(t, "kettle", "25.00")

	// Empty cart checks out to a 404 before any shipping lookup.
	w := env.request(t, http.MethodPost, "/api/v1/shop/checkout", token, gin.H{
		"shipping_id": "00000000-0000-0000-0000-000000000001",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/shop/cart", token, gin.H{
		"slug":     product.Slug,
		"quantity": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/profiles/me/shipping", token, gin.H{
		"full_name": "Test User",
		"email":     "ship@example.com",
		"phone":     "+100000000",
		"address":   "1 Test Street",
		"city":      "Testville",
		"country":   "Testland",
		"zipcode":   "12345",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var shipResp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shipResp))

	// Checkout answers 200: it converts existing cart rows rather than
	// creating a new addressable resource.
	w = env.request(t, http.MethodPost, "/api/v1/shop/checkout", token, gin.H{
		"shipping_id": shipResp.Data.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var checkoutResp struct {
		Data struct {
			Order struct {
				TxRef    string `json:"tx_ref"`
				Subtotal string `json:"subtotal"`
			} `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkoutResp))
	assert.Len(t, checkoutResp.Data.Order.TxRef, 12)
	assert.Equal(t, "50", checkoutResp.Data.Order.Subtotal)

	// Cart is empty afterwards.
	w = env.request(t, http.MethodGet, "/api/v1/shop/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cartResp struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	assert.Empty(t, cartResp.Data)
}

func TestPublicProductListing(t *testing.T) {
	env := setupTestEnv(t)
	env.seedProduct(t, "kettle", "25.00")
	env.seedProduct(t, "toaster", "40.00")

	w := env.request(t, http.MethodGet, "/api/v1/shop/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// An inverted price window is a client error, not an empty result.
	w = env.request(t, http.MethodGet, "/api/v1/shop/products?min_price=30&max_price=10", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// An exact window is a valid price-point query.
	w = env.request(t, http.MethodGet, "/api/v1/shop/products?min_price=25&max_price=25", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var exact struct {
		Data []struct {
			Slug string `json:"slug"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exact))
	require.Len(t, exact.Data, 1)
	assert.Equal(t, "kettle", exact.Data[0].Slug)

	w = env.request(t, http.MethodGet, "/api/v1/shop/products/kettle", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/shop/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
