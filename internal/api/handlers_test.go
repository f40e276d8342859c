package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estateledger/server/internal/database"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	router := gin.New()
	SetupRoutes(router, db)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterOfficeEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/offices", OfficeRequest{Name: "Downtown", Location: "12 Main St"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same location again collides on the natural key.
	w = postJSON(t, router, "/api/offices", OfficeRequest{Name: "Uptown", Location: "12 Main St"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Missing location is a validation failure.
	w = postJSON(t, router, "/api/offices", OfficeRequest{Name: "Nowhere"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterSaleEndpointFlow(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/offices", OfficeRequest{Name: "Downtown", Location: "12 Main St"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(t, router, "/api/customers", PersonRequest{FirstName: "Sam", LastName: "Seller", Email: "sam@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(t, router, "/api/customers", PersonRequest{FirstName: "Bea", LastName: "Buyer", Email: "bea@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(t, router, "/api/agents", PersonRequest{FirstName: "Ada", LastName: "Smith", Email: "ada@agency.example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(t, router, "/api/houses", HouseRequest{Bedrooms: 3, Bathrooms: 2, Address: "123 Main St", ZipCode: "94111", OfficeID: 1})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(t, router, "/api/listings", ListingRequest{HouseID: 1, SellerID: 1, AgentID: 1, OfficeID: 1, PriceCents: 500_000})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/api/sales", SaleRequest{BuyerID: 2, ListingID: 1, PriceCents: 450_000})
	require.Equal(t, http.StatusCreated, w.Code)

	var sale map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
	assert.EqualValues(t, 450_000, sale["price_cents"])

	// The listing is SOLD now, so a second sale is a 404.
	w = postJSON(t, router, "/api/sales", SaleRequest{BuyerID: 2, ListingID: 1, PriceCents: 450_000})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportEndpointsValidatePeriod(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/top-offices?month=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/reports/top-offices?year=2023&month=13", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/reports/average-price?year=2023&month=1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
