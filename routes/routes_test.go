package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
	"hugox-backend/auth"
	"hugox-backend/config"
	"hugox-backend/controllers"
	"hugox-backend/middleware"
	"hugox-backend/models"
	"hugox-backend/query"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTokens map[string]string

func (f fakeTokens) Verify(token string) (*auth.Claims, error) {
	id, ok := f[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: id}, nil
}

type fakeUsers map[primitive.ObjectID]*models.User

func (f fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("User not found")
}

type fakeProducts struct {
	controllers.ProductStore
	created []*models.Product
	lists   int
}

func (f *fakeProducts) List(context.Context, *query.Query) ([]models.Product, int64, error) {
	f.lists++
	return []models.Product{}, 0, nil
}

func (f *fakeProducts) Create(_ context.Context, p *models.Product) error {
	f.created = append(f.created, p)
	return nil
}

func (f *fakeProducts) FetchWithRefs(context.Context, []models.Product, ...models.RefField) error {
	return nil
}

type fixture struct {
	engine   *gin.Engine
	products *fakeProducts
	admin    *models.User
	user     *models.User
}

func newFixture(t *testing.T, cfg *config.AppConfig) *fixture {
	t.Helper()
	f := &fixture{
		products: &fakeProducts{},
		admin:    &models.User{ID: primitive.NewObjectID(), Email: "admin@hugox.vn", Role: models.RoleAdmin, IsActive: true},
		user:     &models.User{ID: primitive.NewObjectID(), Email: "user@hugox.vn", Role: models.RoleUser, IsActive: true},
	}
	gate := middleware.NewGate(
		fakeTokens{"admin-token": f.admin.ID.Hex(), "user-token": f.user.ID.Hex()},
		fakeUsers{f.admin.ID: f.admin, f.user.ID: f.user},
	)
	ctrl := &controllers.Controller{Products: f.products, Config: cfg}
	f.engine = Setup(ctrl, gate, cfg)
	return f
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment:        "test",
		FrontendURL:        "http://localhost:3000",
		RateLimitWindow:    time.Minute,
		RateLimitMax:       1000,
		PublicRateLimitMax: 1000,
		ForbiddenStatus:    http.StatusForbidden,
	}
}

func (f *fixture) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var env models.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	f := newFixture(t, testConfig())
	body := gin.H{"name": "Robot hut bui", "description": "Mo ta", "price": 1000000}

	w := f.do(http.MethodPost, "/api/admin/products", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodPost, "/api/admin/products", body, "user-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "authorization", env.Error)
	assert.Empty(t, f.products.created)

	w = f.do(http.MethodGet, "/api/admin/products", nil, "admin-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.products.lists)
}

func TestForbiddenStatusIsConfigurable(t *testing.T) {
	cfg := testConfig()
	cfg.ForbiddenStatus = http.StatusUnauthorized
	f := newFixture(t, cfg)

	w := f.do(http.MethodGet, "/api/admin/products", nil, "user-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, f.products.lists)
}

func TestAdminLoginIsPublic(t *testing.T) {
	f := newFixture(t, testConfig())

	w := f.do(http.MethodPost, "/api/admin/auth/login", gin.H{"email": "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicProductsRoute(t *testing.T) {
	f := newFixture(t, testConfig())

	w := f.do(http.MethodGet, "/api/products?limit=5", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 5, env.Pagination.Limit)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t, testConfig())

	w := f.do(http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Route /api/nope not found", env.Message)
	assert.Equal(t, "not_found", env.Error)
}

func TestUploadRequiresLogin(t *testing.T) {
	f := newFixture(t, testConfig())

	w := f.do(http.MethodPost, "/api/upload/products/single", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodPost, "/api/upload/settings/logo", nil, "user-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitMax = 2
	f := newFixture(t, cfg)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/products", nil, "").Code)
	}
	w := f.do(http.MethodGet, "/api/products", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests from this IP, please try again later.", decode(t, w).Message)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", nil, "").Code)
}
