package controllers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
	"hugox-backend/auth"
	"hugox-backend/models"
	"hugox-backend/query"
	"hugox-backend/storage"
)

// Each fake embeds its interface so that calling a method a test did not
// expect panics.

type fakeTokens map[string]string

func (f fakeTokens) Verify(token string) (*auth.Claims, error) {
	id, ok := f[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: id}, nil
}

func (f fakeTokens) Issue(user *models.User) (string, error) {
	return "access-" + user.ID.Hex(), nil
}

func (f fakeTokens) IssueRefresh(user *models.User) (string, error) {
	return "refresh-" + user.ID.Hex(), nil
}

// plainHasher stores passwords with a fixed prefix.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Verify(hash, password string) bool    { return hash == "hashed:"+password }

type fakeUsers struct {
	UserStore
	mu      sync.Mutex
	byID    map[primitive.ObjectID]*models.User
	deleted []primitive.ObjectID
	updates []bson.M
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("User not found")
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return apperror.Conflict("email", "User with this email already exists")
		}
	}
	u.ID = primitive.NewObjectID()
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	f.updates = append(f.updates, set)
	if v, ok := set["isActive"].(bool); ok {
		u.IsActive = v
	}
	if v, ok := set["name"].(string); ok {
		u.Name = v
	}
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return apperror.NotFound("User not found")
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeProducts evaluates the subset of filters the list specs produce:
// equality on status and a $gte/$lte window on price.
type fakeProducts struct {
	ProductStore
	items   []models.Product
	created []*models.Product
}

func (f *fakeProducts) List(_ context.Context, q *query.Query) ([]models.Product, int64, error) {
	var matched []models.Product
	for _, p := range f.items {
		if productMatches(p, q.Filter) {
			matched = append(matched, p)
		}
	}
	total := int64(len(matched))
	start := int(q.Skip())
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func productMatches(p models.Product, filter bson.M) bool {
	for key, want := range filter {
		switch key {
		case "status":
			if string(p.Status) != fmt.Sprint(want) {
				return false
			}
		case "price":
			bounds := want.(bson.M)
			if lo, ok := bounds["$gte"].(float64); ok && p.Price < lo {
				return false
			}
			if hi, ok := bounds["$lte"].(float64); ok && p.Price > hi {
				return false
			}
		default:
			panic("unexpected product filter " + key)
		}
	}
	return true
}

func (f *fakeProducts) Create(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	f.created = append(f.created, p)
	return nil
}

func (f *fakeProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, apperror.NotFound("Product not found")
}

// Get matches on _id, slug and status.
func (f *fakeProducts) Get(_ context.Context, filter bson.M) (*models.Product, error) {
	for i := range f.items {
		p := &f.items[i]
		if id, ok := filter["_id"].(primitive.ObjectID); ok && p.ID != id {
			continue
		}
		if slug, ok := filter["slug"].(string); ok && p.Slug != slug {
			continue
		}
		if status, ok := filter["status"]; ok && string(p.Status) != fmt.Sprint(status) {
			continue
		}
		return p, nil
	}
	return nil, apperror.NotFound("Product not found")
}

func (f *fakeProducts) Related(_ context.Context, p *models.Product, limit int) ([]models.Product, error) {
	out := []models.Product{}
	for _, other := range f.items {
		if len(out) == limit {
			break
		}
		if other.ID != p.ID && other.CategoryID == p.CategoryID && other.Status == models.ProductActive {
			out = append(out, other)
		}
	}
	return out, nil
}

func (f *fakeProducts) Featured(_ context.Context, limit int) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.items {
		if p.Featured && p.Status == models.ProductActive && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) FetchWithRefs(context.Context, []models.Product, ...models.RefField) error {
	return nil
}

type fakeCategories struct {
	CategoryStore
	byID map[primitive.ObjectID]*models.Category
}

func (f *fakeCategories) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, apperror.NotFound("Category not found")
}

func (f *fakeCategories) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*models.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFound("Category not found")
	}
	if status, ok := set["status"].(models.CategoryStatus); ok {
		c.Status = status
	}
	return c, nil
}

func (f *fakeCategories) FetchWithRefs(context.Context, []models.Category, ...models.RefField) error {
	return nil
}

// fakeNews serves View the way the storage query does: published only, one
// view per read.
type fakeNews struct {
	NewsStore
	mu       sync.Mutex
	byID     map[primitive.ObjectID]*models.News
	featured []models.News
}

func (f *fakeNews) View(_ context.Context, id primitive.ObjectID) (*models.News, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.byID[id]
	if !ok || n.Status != models.NewsPublished {
		return nil, apperror.NotFound("News not found")
	}
	n.Views++
	out := *n
	return &out, nil
}

func (f *fakeNews) Featured(_ context.Context, limit int) ([]models.News, error) {
	if len(f.featured) > limit {
		return f.featured[:limit], nil
	}
	return f.featured, nil
}

func (f *fakeNews) FetchWithRefs(context.Context, []models.News, ...models.RefField) error {
	return nil
}

// fakeReviews enforces the (product, user) unique key like the storage index.
type fakeReviews struct {
	ReviewStore
	mu      sync.Mutex
	created []*models.Review
}

func (f *fakeReviews) Create(_ context.Context, rv *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.created {
		if existing.ProductID == rv.ProductID && existing.UserID == rv.UserID {
			return apperror.Conflict("product", "You have already reviewed this product")
		}
	}
	rv.ID = primitive.NewObjectID()
	f.created = append(f.created, rv)
	return nil
}

func (f *fakeReviews) Update(_ context.Context, filter bson.M, set bson.M) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rv := range f.created {
		if rv.ID != filter["_id"] {
			continue
		}
		if status, ok := set["status"].(models.ReviewStatus); ok {
			rv.Status = status
		}
		return rv, nil
	}
	return nil, apperror.NotFound("Review not found")
}

func (f *fakeReviews) FetchWithRefs(context.Context, []models.Review, ...models.RefField) error {
	return nil
}

type fakeContacts struct {
	ContactStore
	byID map[primitive.ObjectID]*models.Contact
	sets []bson.M
}

func (f *fakeContacts) Create(_ context.Context, c *models.Contact) error {
	c.ID = primitive.NewObjectID()
	f.byID[c.ID] = c
	return nil
}

func (f *fakeContacts) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*models.Contact, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFound("Contact not found")
	}
	f.sets = append(f.sets, set)
	if s, ok := set["status"].(models.ContactStatus); ok {
		c.Status = s
	}
	return c, nil
}

func (f *fakeContacts) AddNote(_ context.Context, id primitive.ObjectID, note models.InternalNote) (*models.Contact, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFound("Contact not found")
	}
	c.InternalNotes = append(c.InternalNotes, note)
	return c, nil
}

func (f *fakeContacts) FetchWithRefs(context.Context, []models.Contact, ...models.RefField) error {
	return nil
}

// fakeSettings keeps one document and records which sections were saved.
type fakeSettings struct {
	current models.Settings
	saved   []string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{current: models.DefaultSettings()}
}

func (f *fakeSettings) Get(context.Context) (*models.Settings, error) {
	s := f.current
	return &s, nil
}

func (f *fakeSettings) Save(_ context.Context, s *models.Settings, section string) (*models.Settings, error) {
	if _, err := s.Section(section); err != nil {
		return nil, err
	}
	f.current = *s
	f.saved = append(f.saved, section)
	out := f.current
	return &out, nil
}

type fakeFilters struct {
	FilterStore
	facets []models.CategoryFacet
}

func (f *fakeFilters) CategoryFacets(_ context.Context, limit int) ([]models.CategoryFacet, error) {
	if len(f.facets) > limit {
		return f.facets[:limit], nil
	}
	return f.facets, nil
}

type fakeDashboard struct {
	DashboardService
	periods []models.Period
}

func (f *fakeDashboard) Revenue(_ context.Context, p models.Period) ([]models.DayPoint, error) {
	f.periods = append(f.periods, p)
	return make([]models.DayPoint, p.Days()), nil
}

// fakeImages records uploads and derives URLs from the public id.
type fakeImages struct {
	mu       sync.Mutex
	uploads  []string
	payloads [][]byte
}

func (f *fakeImages) Upload(_ context.Context, p storage.Preset, filename string, r io.Reader) (*storage.Image, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, filename)
	f.payloads = append(f.payloads, body)
	id := p.Folder + "/" + filename
	return &storage.Image{PublicID: id, SecureURL: "https://img.test/" + id, Bytes: len(body)}, nil
}

func (f *fakeImages) Destroy(_ context.Context, id string) error {
	if id == "missing" {
		return apperror.NotFound("Image not found")
	}
	return nil
}

func (f *fakeImages) Info(_ context.Context, id string) (*storage.Info, error) {
	return &storage.Info{Image: storage.Image{PublicID: id}}, nil
}

func (f *fakeImages) URL(id string, t storage.Transform) (string, error) {
	return "https://img.test/" + t.String() + "/" + id, nil
}
