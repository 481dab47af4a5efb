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

var categoryOrder = bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}}

type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(config.CategoriesCollection)}
}

func (r *CategoryRepository) List(ctx context.Context, q *query.Query) ([]models.Category, int64, error) {
	return list[models.Category](ctx, r.coll, q)
}

// Active returns every active category ordered by (sortOrder, name).
func (r *CategoryRepository) Active(ctx context.Context) ([]models.Category, error) {
	return findAll[models.Category](ctx, r.coll, bson.M{"status": models.CategoryActive}, options.Find().SetSort(categoryOrder))
}

// Names returns the name and slug of every active category, by name.
func (r *CategoryRepository) Names(ctx context.Context) ([]models.Ref, error) {
	opts := options.Find().SetProjection(nameSlug).SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[models.Ref](ctx, r.coll, bson.M{"status": models.CategoryActive}, opts)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return findOne[models.Category](ctx, r.coll, bson.M{"_id": id}, "Category not found")
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return findOne[models.Category](ctx, r.coll, bson.M{"slug": slug}, "Category not found")
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	id, err := insert(ctx, r.coll, c, "Category")
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Category, error) {
	set["updatedAt"] = now()
	return updateByID[models.Category](ctx, r.coll, id, set, "Category")
}

func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "Category")
}

// FetchWithRefs resolves RefParent and RefSubcategories on items.
// Subcategories are limited to active children.
func (r *CategoryRepository) FetchWithRefs(ctx context.Context, items []models.Category, refs ...models.RefField) error {
	if len(items) == 0 {
		return nil
	}
	if hasRef(refs, models.RefParent) {
		ids := make([]primitive.ObjectID, 0, len(items))
		for _, c := range items {
			if c.ParentID != nil {
				ids = append(ids, *c.ParentID)
			}
		}
		parents, err := resolve(ctx, r.coll, ids, nameSlug)
		if err != nil {
			return err
		}
		for i := range items {
			if items[i].ParentID != nil {
				items[i].Parent = parents[*items[i].ParentID]
			}
		}
	}
	if hasRef(refs, models.RefSubcategories) {
		ids := make([]primitive.ObjectID, len(items))
		for i, c := range items {
			ids[i] = c.ID
		}
		children, err := findAll[models.Category](ctx, r.coll,
			bson.M{"parent": bson.M{"$in": ids}, "status": models.CategoryActive},
			options.Find().SetSort(categoryOrder))
		if err != nil {
			return err
		}
		byParent := make(map[primitive.ObjectID][]models.Category)
		for _, child := range children {
			byParent[*child.ParentID] = append(byParent[*child.ParentID], child)
		}
		for i := range items {
			items[i].Subcategories = byParent[items[i].ID]
			if items[i].Subcategories == nil {
				items[i].Subcategories = []models.Category{}
			}
		}
	}
	return nil
}
