package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adminmemory "github.com/inkwell-labs/bookstore-api/internal/domains/admin/adapters/memory"
	adminapp "github.com/inkwell-labs/bookstore-api/internal/domains/admin/application"
	catalogmemory "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/application"
	ordersmemory "github.com/inkwell-labs/bookstore-api/internal/domains/orders/adapters/memory"
	ordersapp "github.com/inkwell-labs/bookstore-api/internal/domains/orders/application"
	reportingapp "github.com/inkwell-labs/bookstore-api/internal/domains/reporting/application"
	"github.com/inkwell-labs/bookstore-api/internal/platform/uploads"
)

type testApp struct {
	router *gin.Engine
	token  string
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWithCovers(t, nil, RouterConfig{})
}

func newTestAppWithCovers(t *testing.T, covers *uploads.Storage, cfg RouterConfig) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogRepo := catalogmemory.NewRepository()
	ordersRepo := ordersmemory.NewRepository()

	catalogService := catalogapp.NewService(catalogRepo)
	ordersService := ordersapp.NewService(ordersRepo, catalogRepo)
	reportingService := reportingapp.NewService(catalogService, ordersService)
	authService := adminapp.NewService(adminmemory.NewRepository(), "router-test-secret")

	_, err := authService.Register(context.Background(), "admin", "router-test-password")
	require.NoError(t, err)
	session, err := authService.Authenticate(context.Background(), "admin", "router-test-password")
	require.NoError(t, err)

	handlers := Handlers{
		Books:  NewBookAPI(catalogService, covers),
		Orders: NewOrderAPI(ordersService),
		Admin:  NewAdminAPI(reportingService),
		Auth:   NewAuthAPI(authService),
	}
	router := NewRouter(handlers, authService, cfg)
	return &testApp{router: router, token: session.Token}
}

func (a *testApp) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	recorder := httptest.NewRecorder()
	a.router.ServeHTTP(recorder, req)
	return recorder
}

func TestBookLifecycle(t *testing.T) {
	app := newTestApp(t)

	created := app.do(t, http.MethodPost, "/api/books/create-book", gin.H{
		"title":    "Clean Architecture",
		"newPrice": 29.99,
		"trending": true,
	}, true)
	require.Equal(t, http.StatusCreated, created.Code)

	var book struct {
		ID       string  `json:"_id"`
		Title    string  `json:"title"`
		NewPrice float64 `json:"newPrice"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &book))
	require.Equal(t, "Clean Architecture", book.Title)
	require.Equal(t, 29.99, book.NewPrice)
	require.NotEmpty(t, book.ID)

	fetched := app.do(t, http.MethodGet, "/api/books/"+book.ID, nil, false)
	require.Equal(t, http.StatusOK, fetched.Code)

	deleted := app.do(t, http.MethodDelete, "/api/books/"+book.ID, nil, true)
	require.Equal(t, http.StatusOK, deleted.Code)

	missing := app.do(t, http.MethodGet, "/api/books/"+book.ID, nil, false)
	require.Equal(t, http.StatusNotFound, missing.Code)
	require.Contains(t, missing.Header().Get("Content-Type"), "application/problem+json")
}

func TestCreateBook_MissingNewPrice(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, http.MethodPost, "/api/books/create-book", gin.H{
		"title": "No Price Given",
	}, true)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "new price is required")
}

func TestCreateBook_MissingNewPriceMultipart(t *testing.T) {
	app := newTestApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", "No Price Given"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/books/create-book", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+app.token)
	recorder := httptest.NewRecorder()
	app.router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateBook_ExplicitZeroPriceAllowed(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, http.MethodPost, "/api/books/create-book", gin.H{
		"title":    "Free Sampler",
		"newPrice": 0,
	}, true)
	require.Equal(t, http.StatusCreated, resp.Code)
	var book struct {
		NewPrice float64 `json:"newPrice"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &book))
	require.Equal(t, 0.0, book.NewPrice)
}

func TestCreateBook_CoverStorageFailureStaysGeneric(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "covers")
	covers, err := uploads.NewStorage(dir)
	require.NoError(t, err)
	app := newTestAppWithCovers(t, covers, RouterConfig{})
	// Remove the directory so the write fails after validation passes.
	require.NoError(t, os.RemoveAll(dir))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", "Covered"))
	require.NoError(t, writer.WriteField("newPrice", "12.5"))
	part, err := writer.CreateFormFile("coverImage", "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/books/create-book", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+app.token)
	recorder := httptest.NewRecorder()
	app.router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.NotContains(t, recorder.Body.String(), dir)
}

func TestRouterConfigMiddlewareRunsOnRoutes(t *testing.T) {
	marker := func(c *gin.Context) {
		c.Header("X-Marker", "seen")
		c.Next()
	}
	app := newTestAppWithCovers(t, nil, RouterConfig{Middleware: []gin.HandlerFunc{marker}})

	resp := app.do(t, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "seen", resp.Header().Get("X-Marker"))

	resp = app.do(t, http.MethodGet, "/api/books", nil, false)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "seen", resp.Header().Get("X-Marker"))
}

func TestCreateBook_RequiresBearer(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, http.MethodPost, "/api/books/create-book", gin.H{
		"title":    "Nope",
		"newPrice": 1.0,
	}, false)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestUpdateBook_PartialPatchOverHTTP(t *testing.T) {
	app := newTestApp(t)

	created := app.do(t, http.MethodPost, "/api/books/create-book", gin.H{
		"title":    "Patchable",
		"newPrice": 10.0,
	}, true)
	require.Equal(t, http.StatusCreated, created.Code)
	var book struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &book))

	updated := app.do(t, http.MethodPut, "/api/books/edit/"+book.ID, gin.H{
		"newPrice": 8.5,
	}, true)
	require.Equal(t, http.StatusOK, updated.Code)
	var patched struct {
		Title    string  `json:"title"`
		NewPrice float64 `json:"newPrice"`
	}
	require.NoError(t, json.Unmarshal(updated.Body.Bytes(), &patched))
	require.Equal(t, "Patchable", patched.Title)
	require.Equal(t, 8.5, patched.NewPrice)
}

func TestOrders_CreateAndLookup(t *testing.T) {
	app := newTestApp(t)

	created := app.do(t, http.MethodPost, "/api/books/create-book", gin.H{
		"title":    "Ordered",
		"newPrice": 15.0,
	}, true)
	require.Equal(t, http.StatusCreated, created.Code)
	var book struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &book))

	placed := app.do(t, http.MethodPost, "/api/orders", gin.H{
		"name":  "Jane Reader",
		"email": "Jane@Example.com",
		"address": gin.H{
			"city":    "Springfield",
			"country": "US",
			"state":   "IL",
			"zipcode": "62704",
		},
		"phone":      "5551234567",
		"productIds": []string{book.ID},
		"totalPrice": 15.0,
	}, false)
	require.Equal(t, http.StatusCreated, placed.Code)

	found := app.do(t, http.MethodGet, "/api/orders?email=jane@example.com", nil, false)
	require.Equal(t, http.StatusOK, found.Code)
	var orders []struct {
		Email string `json:"email"`
		Books []struct {
			Title string `json:"title"`
		} `json:"books"`
	}
	require.NoError(t, json.Unmarshal(found.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	require.Equal(t, "jane@example.com", orders[0].Email)
	require.Len(t, orders[0].Books, 1)
	require.Equal(t, "Ordered", orders[0].Books[0].Title)
}

func TestOrders_LookupWithoutMatches(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, http.MethodGet, "/api/orders?email=nobody@example.com", nil, false)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestOrders_RejectsEmptyBookRefs(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, http.MethodPost, "/api/orders", gin.H{
		"name":  "Jane Reader",
		"email": "jane@example.com",
		"address": gin.H{
			"city":    "Springfield",
			"country": "US",
			"state":   "IL",
			"zipcode": "62704",
		},
		"phone":      "5551234567",
		"productIds": []string{},
		"totalPrice": 15.0,
	}, false)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAdminStats(t *testing.T) {
	app := newTestApp(t)

	unauthorized := app.do(t, http.MethodGet, "/api/admin", nil, false)
	require.Equal(t, http.StatusUnauthorized, unauthorized.Code)

	resp := app.do(t, http.MethodGet, "/api/admin", nil, true)
	require.Equal(t, http.StatusOK, resp.Code)
	var stats struct {
		TotalOrders  int64   `json:"totalOrders"`
		TotalSales   float64 `json:"totalSales"`
		TotalBooks   int64   `json:"totalBooks"`
		MonthlySales []any   `json:"monthlySales"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &stats))
	require.Equal(t, int64(0), stats.TotalOrders)
	require.Equal(t, 0.0, stats.TotalSales)
	require.Empty(t, stats.MonthlySales)
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	ok := app.do(t, http.MethodPost, "/api/auth/admin", gin.H{
		"username": "admin",
		"password": "router-test-password",
	}, false)
	require.Equal(t, http.StatusOK, ok.Code)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(ok.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	bad := app.do(t, http.MethodPost, "/api/auth/admin", gin.H{
		"username": "admin",
		"password": "wrong",
	}, false)
	require.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestGetBook_InvalidID(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, http.MethodGet, fmt.Sprintf("/api/books/%s", "not-a-uuid"), nil, false)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}
