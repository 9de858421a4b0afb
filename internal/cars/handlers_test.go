package cars

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carmarket-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type carsTestEnv struct {
	app *fiber.App
	svc *Service
	rdb *redis.Client
}

func setupCarsApp(t *testing.T) *carsTestEnv {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:   "test-secret",
		RedisURL: "redis://" + mr.Addr(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	svc := setupCarService(t)
	h := &Handlers{Service: svc}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(sessionHandler)
	g := app.Group("/api/cars")
	g.Get("/", h.List)
	g.Get("/compare", h.Compare)
	g.Get("/:id", h.Get)
	g.Post("/", middleware.RequireAuth(), h.Create)
	g.Put("/:id", middleware.RequireAuth(), h.Update)
	g.Delete("/:id", middleware.RequireAuth(), h.Delete)
	g.Post("/:id/approve", middleware.RequireAuth(), h.Approve)
	g.Post("/:id/reject", middleware.RequireAuth(), h.Reject)
	return &carsTestEnv{app: app, svc: svc, rdb: rdb}
}

// seedSession plants a session straight into Redis the way the login
// handler would, and returns the cookie to send with it.
func (e *carsTestEnv) seedSession(t *testing.T, userID uint, isSeller, isStaff bool) *http.Cookie {
	t.Helper()
	sid := uuid.New().String()
	data := map[string]interface{}{
		"user": map[string]interface{}{
			"user_id":   userID,
			"username":  fmt.Sprintf("user%d", userID),
			"email":     fmt.Sprintf("user%d@example.com", userID),
			"is_seller": isSeller,
			"is_staff":  isStaff,
		},
	}
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, e.rdb.Set(context.Background(), middleware.SessionRedisPrefix+sid, b, 0).Err())
	return &http.Cookie{Name: middleware.SessionCookieName, Value: "s:" + sid}
}

func jsonReq(method, target, body string, cookie *http.Cookie) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		r.AddCookie(cookie)
	}
	return r
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

const createBody = `{
	"title": "Corolla 2021",
	"brand_id": 1,
	"model_id": 1,
	"price": 15000,
	"fuel_type": "petrol",
	"year": 2021,
	"transmission": "manual",
	"condition": "used",
	"mileage": 42000,
	"seller_id": 555,
	"is_approved": true
}`

func TestCreateCar_AuthAndRoleGates(t *testing.T) {
	e := setupCarsApp(t)

	resp, err := e.app.Test(jsonReq("POST", "/api/cars/", createBody, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	buyer := e.seedSession(t, 2, false, false)
	resp, err = e.app.Test(jsonReq("POST", "/api/cars/", createBody, buyer))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	seller := e.seedSession(t, 10, true, false)
	resp, err = e.app.Test(jsonReq("POST", "/api/cars/", createBody, seller))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// The seller_id and is_approved the client smuggled into the body
	// never make it past the JSON boundary.
	out := decodeBody(t, resp)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, float64(10), data["seller_id"])
	assert.Equal(t, false, data["is_approved"])
}

func TestGetCar_VisibilityMapping(t *testing.T) {
	e := setupCarsApp(t)
	seller := e.seedSession(t, 10, true, false)

	resp, err := e.app.Test(jsonReq("POST", "/api/cars/", createBody, seller))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Pending car: guests and other users read 404, never 403.
	resp, err = e.app.Test(jsonReq("GET", "/api/cars/1", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	buyer := e.seedSession(t, 2, false, false)
	resp, err = e.app.Test(jsonReq("GET", "/api/cars/1", "", buyer))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = e.app.Test(jsonReq("GET", "/api/cars/1", "", seller))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = e.app.Test(jsonReq("GET", "/api/cars/notanid", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestModeration_EndToEnd(t *testing.T) {
	e := setupCarsApp(t)
	seller := e.seedSession(t, 10, true, false)
	admin := e.seedSession(t, 99, false, true)

	resp, err := e.app.Test(jsonReq("POST", "/api/cars/", createBody, seller))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Owner cannot approve their own listing.
	resp, err = e.app.Test(jsonReq("POST", "/api/cars/1/approve", "", seller))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = e.app.Test(jsonReq("POST", "/api/cars/1/approve", "", admin))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Now the listing is public.
	resp, err = e.app.Test(jsonReq("GET", "/api/cars/1", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = e.app.Test(jsonReq("POST", "/api/cars/1/reject", "", admin))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, err = e.app.Test(jsonReq("GET", "/api/cars/1", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListAndCompare_Routes(t *testing.T) {
	e := setupCarsApp(t)
	seller := e.seedSession(t, 10, true, false)
	admin := e.seedSession(t, 99, false, true)

	for i := 0; i < 2; i++ {
		resp, err := e.app.Test(jsonReq("POST", "/api/cars/", createBody, seller))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	resp, err := e.app.Test(jsonReq("POST", "/api/cars/1/approve", "", admin))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = e.app.Test(jsonReq("GET", "/api/cars/", "", nil))
	require.NoError(t, err)
	out := decodeBody(t, resp)
	assert.Equal(t, float64(1), out["metadata"].(map[string]interface{})["count"])

	resp, err = e.app.Test(jsonReq("GET", "/api/cars/", "", seller))
	require.NoError(t, err)
	out = decodeBody(t, resp)
	assert.Equal(t, float64(2), out["metadata"].(map[string]interface{})["count"])

	// compare registers before the :id wildcard.
	resp, err = e.app.Test(jsonReq("GET", "/api/cars/compare?ids=1,2", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	out = decodeBody(t, resp)
	assert.Len(t, out["data"].([]interface{}), 1)

	resp, err = e.app.Test(jsonReq("GET", "/api/cars/compare", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
