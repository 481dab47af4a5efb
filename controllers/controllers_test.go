package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/middleware"
	"hugox-backend/models"
	"hugox-backend/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func newEngine() *gin.Engine {
	r := gin.New()
	r.UseRawPath = true
	r.Use(middleware.Errors(http.StatusForbidden))
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var env models.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func do(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
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
	r.ServeHTTP(w, req)
	return w
}

type formFile struct {
	field, name string
	content     []byte
}

func multipartRequest(t *testing.T, path string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func activeUser(role models.Role) *models.User {
	return &models.User{ID: primitive.NewObjectID(), Name: "Tester", Email: string(role) + "@hugox.vn", Role: role, IsActive: true}
}

func TestGetProductsFiltersByPriceAndPaginates(t *testing.T) {
	products := &fakeProducts{}
	for _, price := range []float64{50000, 150000, 300000, 450000, 900000} {
		products.items = append(products.items, models.Product{
			ID:     primitive.NewObjectID(),
			Name:   fmt.Sprintf("Product %.0f", price),
			Price:  price,
			Status: models.ProductActive,
		})
	}
	products.items = append(products.items, models.Product{ID: primitive.NewObjectID(), Price: 200000, Status: models.ProductInactive})

	ctrl := &Controller{Products: products}
	r := newEngine()
	r.GET("/api/products", ctrl.GetProducts)

	w := do(r, http.MethodGet, "/api/products?status=active&minPrice=100000&maxPrice=500000&page=1&limit=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	assert.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(3), env.Pagination.Total)
	assert.Equal(t, int64(2), env.Pagination.Pages)
	assert.Equal(t, 1, env.Pagination.Page)
	assert.Equal(t, 2, env.Pagination.Limit)

	data := env.Data.(map[string]interface{})
	items := data["products"].([]interface{})
	assert.Len(t, items, 2)
	for _, item := range items {
		price := item.(map[string]interface{})["price"].(float64)
		assert.True(t, price >= 100000 && price <= 500000)
	}
}

func TestGetProductsRejectsInvertedPriceRange(t *testing.T) {
	ctrl := &Controller{Products: &fakeProducts{}}
	r := newEngine()
	r.GET("/api/products", ctrl.GetProducts)

	w := do(r, http.MethodGet, "/api/products?minPrice=500&maxPrice=100", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", decode(t, w).Error)
}

func TestCreateReviewRating(t *testing.T) {
	user := activeUser(models.RoleUser)
	product := models.Product{ID: primitive.NewObjectID(), Status: models.ProductActive}
	reviews := &fakeReviews{}
	ctrl := &Controller{Products: &fakeProducts{items: []models.Product{product}}, Reviews: reviews}
	gate := middleware.NewGate(fakeTokens{"tok": user.ID.Hex()}, newFakeUsers(user))

	r := newEngine()
	r.POST("/api/reviews", gate.Authenticate(), ctrl.CreateReview)

	for _, rating := range []int{0, 6} {
		w := do(r, http.MethodPost, "/api/reviews", gin.H{"product": product.ID.Hex(), "rating": rating, "comment": "Bagus"}, "tok")
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d", rating)
		assert.Equal(t, "Rating must be between 1 and 5", decode(t, w).Message)
	}
	assert.Empty(t, reviews.created)

	w := do(r, http.MethodPost, "/api/reviews", gin.H{"product": product.ID.Hex(), "rating": 5, "comment": "Bagus", "status": "approved"}, "tok")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, reviews.created, 1)
	assert.Equal(t, models.ReviewPending, reviews.created[0].Status)
	assert.Equal(t, user.ID, reviews.created[0].UserID)

	w = do(r, http.MethodPost, "/api/reviews", gin.H{"product": product.ID.Hex(), "rating": 4, "comment": "Lagi"}, "tok")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "conflict", decode(t, w).Error)
}

func TestCreateReviewConcurrentDuplicate(t *testing.T) {
	user := activeUser(models.RoleUser)
	product := models.Product{ID: primitive.NewObjectID(), Status: models.ProductActive}
	reviews := &fakeReviews{}
	ctrl := &Controller{Products: &fakeProducts{items: []models.Product{product}}, Reviews: reviews}
	gate := middleware.NewGate(fakeTokens{"tok": user.ID.Hex()}, newFakeUsers(user))

	r := newEngine()
	r.POST("/api/reviews", gate.Authenticate(), ctrl.CreateReview)

	codes := make([]int, 2)
	var wg sync.WaitGroup
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = do(r, http.MethodPost, "/api/reviews", gin.H{"product": product.ID.Hex(), "rating": 5, "comment": "Tot"}, "tok").Code
		}(i)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusBadRequest}, codes)
	assert.Len(t, reviews.created, 1)
}

func TestCreateReviewRequiresLogin(t *testing.T) {
	reviews := &fakeReviews{}
	ctrl := &Controller{Reviews: reviews}
	gate := middleware.NewGate(fakeTokens{}, newFakeUsers())

	r := newEngine()
	r.POST("/api/reviews", gate.Authenticate(), ctrl.CreateReview)

	w := do(r, http.MethodPost, "/api/reviews", gin.H{"rating": 5}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, reviews.created)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUsers()
	ctrl := &Controller{Users: users, Tokens: fakeTokens{}, Hasher: plainHasher{}}
	r := newEngine()
	r.POST("/api/auth/register", ctrl.Register)

	body := gin.H{"name": "Nguyen Van A", "email": "A@Example.com", "password": "secret1"}
	w := do(r, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code)

	env := decode(t, w)
	data := env.Data.(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.NotEmpty(t, data["refreshToken"])
	assert.NotContains(t, data["user"], "password")

	w = do(r, http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env = decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "User with this email already exists", env.Message)
	assert.Len(t, users.byID, 1)
}

func TestLoginRejectsInactiveAndWrongPassword(t *testing.T) {
	active := activeUser(models.RoleUser)
	active.Password = "hashed:secret1"
	inactive := activeUser(models.RoleAdmin)
	inactive.Password = "hashed:secret1"
	inactive.IsActive = false

	ctrl := &Controller{Users: newFakeUsers(active, inactive), Tokens: fakeTokens{}, Hasher: plainHasher{}}
	r := newEngine()
	r.POST("/api/auth/login", ctrl.Login)

	w := do(r, http.MethodPost, "/api/auth/login", gin.H{"email": active.Email, "password": "wrong1"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/auth/login", gin.H{"email": inactive.Email, "password": "secret1"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/auth/login", gin.H{"email": active.Email, "password": "secret1"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateContactSettings(t *testing.T) {
	settings := newFakeSettings()
	ctrl := &Controller{Settings: settings}
	r := newEngine()
	r.PUT("/api/admin/settings/contact", ctrl.UpdateContactSettings)

	w := do(r, http.MethodPut, "/api/admin/settings/contact", gin.H{"siteName": "Other"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, settings.saved)

	w = do(r, http.MethodPut, "/api/admin/settings/contact", gin.H{"phone": "0901234567", "zalo": "0901234567"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{models.SectionGeneral}, settings.saved)
	assert.Equal(t, "0901234567", settings.current.General.Phone)
	assert.Equal(t, models.DefaultSettings().General.SiteName, settings.current.General.SiteName)
}

func TestUpdateSettingsUnknownSection(t *testing.T) {
	settings := newFakeSettings()
	ctrl := &Controller{Settings: settings}
	r := newEngine()
	r.PUT("/api/admin/settings", ctrl.UpdateSettings)

	w := do(r, http.MethodPut, "/api/admin/settings", gin.H{"section": "billing", "data": gin.H{"x": 1}}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/admin/settings", gin.H{"section": "general"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Section and data are required", decode(t, w).Message)
	assert.Empty(t, settings.saved)
}

func TestUploadSingle(t *testing.T) {
	images := &fakeImages{}
	ctrl := &Controller{Images: images}
	r := newEngine()
	r.POST("/api/upload/products/single", ctrl.UploadSingle(storage.ProductImages))

	tests := []struct {
		name    string
		files   []formFile
		status  int
		message string
	}{
		{name: "no file", status: http.StatusBadRequest, message: "No file uploaded"},
		{name: "wrong field", files: []formFile{{"photo", "a.png", pngHeader}}, status: http.StatusBadRequest, message: "No file uploaded"},
		{name: "text disguised as png", files: []formFile{{"image", "a.png", []byte("just some text")}}, status: http.StatusBadRequest, message: "Only image files are allowed!"},
		{name: "png", files: []formFile{{"image", "a.png", pngHeader}}, status: http.StatusOK, message: "Image uploaded successfully"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, multipartRequest(t, "/api/upload/products/single", tt.files...))
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decode(t, w).Message)
		})
	}
	require.Len(t, images.uploads, 1)
	assert.Equal(t, pngHeader, images.payloads[0])
}

func TestUploadSingleTooLarge(t *testing.T) {
	images := &fakeImages{}
	ctrl := &Controller{Images: images}
	r := newEngine()
	preset := storage.Avatars
	preset.MaxBytes = 64
	r.POST("/api/upload/avatars", ctrl.UploadSingle(preset))

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 128)...)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/api/upload/avatars", formFile{"avatar", "me.png", big}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, images.uploads)
}

func TestUploadMultiple(t *testing.T) {
	images := &fakeImages{}
	ctrl := &Controller{Images: images}
	r := newEngine()
	r.POST("/api/upload/news/multiple", ctrl.UploadMultiple(storage.NewsImages))

	var files []formFile
	for i := 0; i < storage.NewsImages.MaxFiles+1; i++ {
		files = append(files, formFile{"images", fmt.Sprintf("%d.png", i), pngHeader})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/api/upload/news/multiple", files...))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, fmt.Sprintf("Too many files. Maximum is %d files.", storage.NewsImages.MaxFiles), decode(t, w).Message)
	assert.Empty(t, images.uploads)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/api/upload/news/multiple", files[:3]...))
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w).Data.(map[string]interface{})
	uploaded := data["images"].([]interface{})
	require.Len(t, uploaded, 3)
	for i, img := range uploaded {
		assert.Equal(t, storage.NewsImages.Folder+fmt.Sprintf("/%d.png", i), img.(map[string]interface{})["public_id"])
	}
}

func TestTransformImageDecodesPublicID(t *testing.T) {
	ctrl := &Controller{Images: &fakeImages{}}
	r := newEngine()
	r.GET("/api/upload/:public_id/transform", ctrl.TransformImage)

	w := do(r, http.MethodGet, "/api/upload/hugox%2Fproducts%2Fabc/transform?width=200&crop=fill", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "https://img.test/w_200,c_fill/hugox/products/abc", data["transformed_url"])

	w = do(r, http.MethodGet, "/api/upload/abc/transform?width=0", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteImageNotFound(t *testing.T) {
	ctrl := &Controller{Images: &fakeImages{}}
	r := newEngine()
	r.DELETE("/api/upload/:public_id", ctrl.DeleteImage)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/upload/missing", nil, "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/api/upload/hugox%2Fnews%2Fx", nil, "").Code)
}

func TestAdminCannotRemoveOwnAccount(t *testing.T) {
	admin := activeUser(models.RoleAdmin)
	other := activeUser(models.RoleUser)
	users := newFakeUsers(admin, other)
	ctrl := &Controller{Users: users, Hasher: plainHasher{}}
	gate := middleware.NewGate(fakeTokens{"admin": admin.ID.Hex()}, users)

	r := newEngine()
	g := r.Group("/api/admin/users", gate.Authenticate(), middleware.Authorize(models.RoleAdmin))
	g.PUT("/:id", ctrl.UpdateUser)
	g.DELETE("/:id", ctrl.DeleteUser)

	w := do(r, http.MethodDelete, "/api/admin/users/"+admin.ID.Hex(), nil, "admin")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot delete your own account", decode(t, w).Message)

	w = do(r, http.MethodPut, "/api/admin/users/"+admin.ID.Hex(), gin.H{"isActive": false}, "admin")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, admin.IsActive)

	w = do(r, http.MethodPut, "/api/admin/users/"+other.ID.Hex(), gin.H{"isActive": false}, "admin")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, other.IsActive)

	w = do(r, http.MethodDelete, "/api/admin/users/"+other.ID.Hex(), nil, "admin")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []primitive.ObjectID{other.ID}, users.deleted)
}

func TestUpdateContactStatus(t *testing.T) {
	contact := &models.Contact{ID: primitive.NewObjectID(), Name: "Khach", Status: models.ContactNew}
	contacts := &fakeContacts{byID: map[primitive.ObjectID]*models.Contact{contact.ID: contact}}
	ctrl := &Controller{Contacts: contacts}
	r := newEngine()
	r.PUT("/api/admin/contacts/:id/status", ctrl.UpdateContactStatus)

	path := "/api/admin/contacts/" + contact.ID.Hex() + "/status"
	w := do(r, http.MethodPut, path, gin.H{"status": "archived"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, path, gin.H{"status": "contacted", "assignedTo": "nope"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid assignedTo ID", decode(t, w).Message)

	w = do(r, http.MethodPut, path, gin.H{"status": "contacted", "assignedTo": "", "notes": "  called back  "}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ContactContacted, contact.Status)
	require.Len(t, contacts.sets, 1)
	assert.Equal(t, "called back", contacts.sets[0]["notes"])
	assert.Contains(t, contacts.sets[0], "assignedTo")
	assert.Nil(t, contacts.sets[0]["assignedTo"])
}

func TestAddContactNotes(t *testing.T) {
	admin := activeUser(models.RoleAdmin)
	contact := &models.Contact{ID: primitive.NewObjectID(), Status: models.ContactNew}
	contacts := &fakeContacts{byID: map[primitive.ObjectID]*models.Contact{contact.ID: contact}}
	users := newFakeUsers(admin)
	ctrl := &Controller{Contacts: contacts}
	gate := middleware.NewGate(fakeTokens{"admin": admin.ID.Hex()}, users)

	r := newEngine()
	r.POST("/api/admin/contacts/:id/notes", gate.Authenticate(), ctrl.AddContactNotes)

	path := "/api/admin/contacts/" + contact.ID.Hex() + "/notes"
	w := do(r, http.MethodPost, path, gin.H{"content": "   "}, "admin")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, path, gin.H{"content": "Khach hen goi lai"}, "admin")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, contact.InternalNotes, 1)
	assert.Equal(t, admin.ID, contact.InternalNotes[0].AuthorID)
	assert.Equal(t, "Khach hen goi lai", contact.InternalNotes[0].Content)
}

func TestDashboardSeriesPeriod(t *testing.T) {
	dash := &fakeDashboard{}
	ctrl := &Controller{Dashboard: dash}
	r := newEngine()
	r.GET("/api/admin/dashboard/revenue", ctrl.GetRevenueData)

	w := do(r, http.MethodGet, "/api/admin/dashboard/revenue?period=2w", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, dash.periods)

	w = do(r, http.MethodGet, "/api/admin/dashboard/revenue", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "30d", data["period"])
	assert.Len(t, data["revenueChart"], 30)

	w = do(r, http.MethodGet, "/api/admin/dashboard/revenue?period=7d", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []models.Period{models.Period30d, models.Period7d}, dash.periods)
}

func TestHealthCheck(t *testing.T) {
	var pingErr error
	ctrl := &Controller{Ping: func(context.Context) error { return pingErr }}
	r := newEngine()
	r.GET("/health", ctrl.HealthCheck)

	w := do(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"connected"`)

	pingErr = errors.New("server selection timeout")
	w = do(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"disconnected"`)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestGetProductHidesUnpublished(t *testing.T) {
	category := primitive.NewObjectID()
	active := models.Product{ID: primitive.NewObjectID(), Name: "Loa", Slug: "loa", CategoryID: category, Status: models.ProductActive}
	sibling := models.Product{ID: primitive.NewObjectID(), Name: "Tai nghe", CategoryID: category, Status: models.ProductActive}
	draft := models.Product{ID: primitive.NewObjectID(), Name: "Nhap", Slug: "nhap", CategoryID: category, Status: models.ProductDraft}
	ctrl := &Controller{Products: &fakeProducts{items: []models.Product{active, sibling, draft}}}
	r := newEngine()
	r.GET("/api/products/:id", ctrl.GetProduct)

	w := do(r, http.MethodGet, "/api/products/"+draft.ID.Hex(), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decode(t, w).Message)

	w = do(r, http.MethodGet, "/api/products/nhap", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/products/loa", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, active.ID.Hex(), data["product"].(map[string]interface{})["_id"])
	related := data["related"].([]interface{})
	require.Len(t, related, 1)
	assert.Equal(t, sibling.ID.Hex(), related[0].(map[string]interface{})["_id"])
}

func TestGetRelatedProductsOfDraft(t *testing.T) {
	category := primitive.NewObjectID()
	active := models.Product{ID: primitive.NewObjectID(), CategoryID: category, Status: models.ProductActive}
	draft := models.Product{ID: primitive.NewObjectID(), CategoryID: category, Status: models.ProductDraft}
	ctrl := &Controller{Products: &fakeProducts{items: []models.Product{active, draft}}}
	r := newEngine()
	r.GET("/api/products/:id/related", ctrl.GetRelatedProducts)

	w := do(r, http.MethodGet, "/api/products/"+draft.ID.Hex()+"/related", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/products/"+active.ID.Hex()+"/related", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	products := decode(t, w).Data.(map[string]interface{})["products"].([]interface{})
	assert.Empty(t, products)
}

func TestGetNewsArticleCountsViews(t *testing.T) {
	published := &models.News{ID: primitive.NewObjectID(), Title: "Ra mat", Status: models.NewsPublished, Views: 4}
	draft := &models.News{ID: primitive.NewObjectID(), Title: "Nhap", Status: models.NewsDraft}
	archived := &models.News{ID: primitive.NewObjectID(), Title: "Cu", Status: models.NewsArchived}
	news := &fakeNews{byID: map[primitive.ObjectID]*models.News{
		published.ID: published,
		draft.ID:     draft,
		archived.ID:  archived,
	}}
	ctrl := &Controller{News: news}
	r := newEngine()
	r.GET("/api/news/:id", ctrl.GetNewsArticle)

	for _, want := range []float64{5, 6} {
		w := do(r, http.MethodGet, "/api/news/"+published.ID.Hex(), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		article := decode(t, w).Data.(map[string]interface{})["article"].(map[string]interface{})
		assert.Equal(t, want, article["views"])
	}

	for _, n := range []*models.News{draft, archived} {
		w := do(r, http.MethodGet, "/api/news/"+n.ID.Hex(), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code, n.Status)
		assert.Equal(t, "News not found", decode(t, w).Message)
		assert.Zero(t, n.Views)
	}

	w := do(r, http.MethodGet, "/api/news/not-an-id", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangeCategoryStatus(t *testing.T) {
	category := &models.Category{ID: primitive.NewObjectID(), Name: "Loa", Status: models.CategoryActive}
	ctrl := &Controller{Categories: &fakeCategories{byID: map[primitive.ObjectID]*models.Category{category.ID: category}}}
	r := newEngine()
	r.PATCH("/api/admin/categories/:id/status", ctrl.ChangeCategoryStatus)
	path := "/api/admin/categories/" + category.ID.Hex() + "/status"

	w := do(r, http.MethodPatch, path, gin.H{"status": "archived"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status must be one of: active, inactive", decode(t, w).Message)
	assert.Equal(t, models.CategoryActive, category.Status)

	w = do(r, http.MethodPatch, path, gin.H{"status": "inactive"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Category status changed to inactive", decode(t, w).Message)
	assert.Equal(t, models.CategoryInactive, category.Status)
}

func TestUpdateReviewStatus(t *testing.T) {
	review := &models.Review{ID: primitive.NewObjectID(), Rating: 5, Likes: 3, Dislikes: 1, Status: models.ReviewPending}
	ctrl := &Controller{Reviews: &fakeReviews{created: []*models.Review{review}}}
	r := newEngine()
	r.PATCH("/api/admin/reviews/:id/status", ctrl.UpdateReviewStatus)
	path := "/api/admin/reviews/" + review.ID.Hex() + "/status"

	w := do(r, http.MethodPatch, path, gin.H{"status": "published"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status must be one of: pending, approved, rejected", decode(t, w).Message)
	assert.Equal(t, models.ReviewPending, review.Status)

	w = do(r, http.MethodPatch, path, gin.H{"status": "approved"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ReviewApproved, review.Status)
	body := decode(t, w).Data.(map[string]interface{})["review"].(map[string]interface{})
	assert.Equal(t, "approved", body["status"])
	assert.Equal(t, 75.0, body["helpfulScore"])

	w = do(r, http.MethodPatch, "/api/admin/reviews/"+primitive.NewObjectID().Hex()+"/status", gin.H{"status": "rejected"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMobileBottomBarUsesSiteContact(t *testing.T) {
	settings := newFakeSettings()
	settings.current.General.Phone = "0900000000"
	ctrl := &Controller{Settings: settings}
	r := newEngine()
	r.GET("/api/mobile/bottom-bar", ctrl.GetBottomBarConfig)

	w := do(r, http.MethodGet, "/api/mobile/bottom-bar", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	config := decode(t, w).Data.(map[string]interface{})["config"].(map[string]interface{})
	assert.Len(t, config["items"], len(bottomBarItems))
	contact := config["contact"].(map[string]interface{})
	assert.Equal(t, "0900000000", contact["hotline"])
	assert.Equal(t, settings.current.General.Zalo, contact["zalo"])
}

func TestMobileFeaturedSections(t *testing.T) {
	products := &fakeProducts{items: []models.Product{
		{ID: primitive.NewObjectID(), Featured: true, Status: models.ProductActive},
		{ID: primitive.NewObjectID(), Featured: true, Status: models.ProductDraft},
		{ID: primitive.NewObjectID(), Featured: true, Status: models.ProductActive},
	}}
	news := &fakeNews{featured: []models.News{{ID: primitive.NewObjectID(), Status: models.NewsPublished}}}
	filters := &fakeFilters{facets: []models.CategoryFacet{{ID: primitive.NewObjectID(), Name: "Loa", ProductCount: 2}}}
	ctrl := &Controller{Products: products, News: news, Filters: filters}
	r := newEngine()
	r.GET("/api/mobile/featured-sections", ctrl.GetFeaturedSections)

	w := do(r, http.MethodGet, "/api/mobile/featured-sections?limit=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/mobile/featured-sections?limit=1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	sections := decode(t, w).Data.(map[string]interface{})["sections"].(map[string]interface{})
	assert.Len(t, sections["featuredProducts"], 1)
	assert.Len(t, sections["featuredNews"], 1)
	assert.Len(t, sections["categories"], 1)
}
