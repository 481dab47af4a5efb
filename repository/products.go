package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hugox-backend/config"
	"hugox-backend/models"
	"hugox-backend/query"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

type ProductRepository struct {
	coll       *mongo.Collection
	categories *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		coll:       db.Collection(config.ProductsCollection),
		categories: db.Collection(config.CategoriesCollection),
	}
}

// List handles both substring and ranked text queries.
func (r *ProductRepository) List(ctx context.Context, q *query.Query) ([]models.Product, int64, error) {
	return list[models.Product](ctx, r.coll, q)
}

// Get returns the first product matching filter.
func (r *ProductRepository) Get(ctx context.Context, filter bson.M) (*models.Product, error) {
	return findOne[models.Product](ctx, r.coll, filter, "Product not found")
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return r.Get(ctx, bson.M{"_id": id})
}

// Featured returns the newest featured active products.
func (r *ProductRepository) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	opts := options.Find().SetSort(newestFirst).SetLimit(int64(limit))
	return findAll[models.Product](ctx, r.coll, bson.M{"featured": true, "status": models.ProductActive}, opts)
}

// Related returns other active products of p's category.
func (r *ProductRepository) Related(ctx context.Context, p *models.Product, limit int) ([]models.Product, error) {
	filter := bson.M{
		"_id":      bson.M{"$ne": p.ID},
		"category": p.CategoryID,
		"status":   models.ProductActive,
	}
	return findAll[models.Product](ctx, r.coll, filter, options.Find().SetLimit(int64(limit)))
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now()
	}
	p.UpdatedAt = p.CreatedAt
	id, err := insert(ctx, r.coll, p, "Product")
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	set["updatedAt"] = now()
	return updateByID[models.Product](ctx, r.coll, id, set, "Product")
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "Product")
}

// FetchWithRefs resolves RefCategory on items.
func (r *ProductRepository) FetchWithRefs(ctx context.Context, items []models.Product, refs ...models.RefField) error {
	if len(items) == 0 || !hasRef(refs, models.RefCategory) {
		return nil
	}
	ids := make([]primitive.ObjectID, len(items))
	for i, p := range items {
		ids[i] = p.CategoryID
	}
	cats, err := resolve(ctx, r.categories, ids, nameSlug)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Category = cats[items[i].CategoryID]
	}
	return nil
}
