package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/dashboard"
	"hugox-backend/models"
	"hugox-backend/query"
	"hugox-backend/repository"
)

type UserStore interface {
	List(ctx context.Context, q *query.Query) ([]models.User, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductStore interface {
	List(ctx context.Context, q *query.Query) ([]models.Product, int64, error)
	Get(ctx context.Context, filter bson.M) (*models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Featured(ctx context.Context, limit int) ([]models.Product, error)
	Related(ctx context.Context, p *models.Product, limit int) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FetchWithRefs(ctx context.Context, items []models.Product, refs ...models.RefField) error
}

type CategoryStore interface {
	List(ctx context.Context, q *query.Query) ([]models.Category, int64, error)
	Active(ctx context.Context) ([]models.Category, error)
	Names(ctx context.Context) ([]models.Ref, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FetchWithRefs(ctx context.Context, items []models.Category, refs ...models.RefField) error
}

type NewsStore interface {
	List(ctx context.Context, q *query.Query) ([]models.News, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.News, error)
	View(ctx context.Context, id primitive.ObjectID) (*models.News, error)
	Featured(ctx context.Context, limit int) ([]models.News, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, n *models.News) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.News, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FetchWithRefs(ctx context.Context, items []models.News, refs ...models.RefField) error
}

type ReviewStore interface {
	List(ctx context.Context, q *query.Query) ([]models.Review, int64, error)
	Get(ctx context.Context, filter bson.M) (*models.Review, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Create(ctx context.Context, rv *models.Review) error
	Update(ctx context.Context, filter bson.M, set bson.M) (*models.Review, error)
	DeleteWhere(ctx context.Context, filter bson.M) error
	Vote(ctx context.Context, id primitive.ObjectID, v repository.Vote) (int64, error)
	RatingStats(ctx context.Context, product primitive.ObjectID) (models.RatingStats, error)
	Distribution(ctx context.Context, product primitive.ObjectID) ([]models.RatingBucket, error)
	FetchWithRefs(ctx context.Context, items []models.Review, refs ...models.RefField) error
}

type ContactStore interface {
	List(ctx context.Context, q *query.Query) ([]models.Contact, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Contact, error)
	Create(ctx context.Context, c *models.Contact) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Contact, error)
	AddNote(ctx context.Context, id primitive.ObjectID, note models.InternalNote) (*models.Contact, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FetchWithRefs(ctx context.Context, items []models.Contact, refs ...models.RefField) error
}

type SettingsStore interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, s *models.Settings, section string) (*models.Settings, error)
}

// FilterStore serves the facet endpoints.
type FilterStore interface {
	PriceStats(ctx context.Context) (models.PriceStats, error)
	PriceRanges(ctx context.Context) ([]models.PriceRange, error)
	Brands(ctx context.Context) ([]models.Facet, error)
	Tags(ctx context.Context) ([]models.Facet, error)
	CategoryFacets(ctx context.Context, limit int) ([]models.CategoryFacet, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
	Revenue(ctx context.Context, p models.Period) ([]models.DayPoint, error)
	Orders(ctx context.Context, p models.Period) ([]models.DayPoint, error)
	Trends(ctx context.Context, p models.Period) ([]models.DayPoint, error)
	Categories(ctx context.Context) ([]models.CategoryStat, error)
}

var (
	_ UserStore        = (*repository.UserRepository)(nil)
	_ ProductStore     = (*repository.ProductRepository)(nil)
	_ CategoryStore    = (*repository.CategoryRepository)(nil)
	_ NewsStore        = (*repository.NewsRepository)(nil)
	_ ReviewStore      = (*repository.ReviewRepository)(nil)
	_ ContactStore     = (*repository.ContactRepository)(nil)
	_ SettingsStore    = (*repository.SettingsRepository)(nil)
	_ FilterStore      = (*repository.StatsRepository)(nil)
	_ DashboardService = (*dashboard.Service)(nil)
)
