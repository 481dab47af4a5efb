package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hugox-backend/apperror"
	"hugox-backend/config"
	"hugox-backend/models"
	"hugox-backend/query"
)

var latestPublished = bson.D{{Key: "publishedAt", Value: -1}}

type NewsRepository struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewNewsRepository(db *mongo.Database) *NewsRepository {
	return &NewsRepository{
		coll:  db.Collection(config.NewsCollection),
		users: db.Collection(config.UsersCollection),
	}
}

func (r *NewsRepository) List(ctx context.Context, q *query.Query) ([]models.News, int64, error) {
	return list[models.News](ctx, r.coll, q)
}

func (r *NewsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.News, error) {
	return findOne[models.News](ctx, r.coll, bson.M{"_id": id}, "News not found")
}

// View increments the view counter of a published article and returns it.
func (r *NewsRepository) View(ctx context.Context, id primitive.ObjectID) (*models.News, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n models.News
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.NewsPublished},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("News not found")
		}
		return nil, upstream(err)
	}
	return &n, nil
}

// Featured returns the latest featured published articles.
func (r *NewsRepository) Featured(ctx context.Context, limit int) ([]models.News, error) {
	opts := options.Find().SetSort(latestPublished).SetLimit(int64(limit))
	return findAll[models.News](ctx, r.coll, bson.M{"featured": true, "status": models.NewsPublished}, opts)
}

// Categories returns the distinct categories of published articles.
func (r *NewsRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "category", bson.M{"status": models.NewsPublished})
	if err != nil {
		return nil, upstream(err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// Create inserts n and stamps publishedAt if it is created published.
func (r *NewsRepository) Create(ctx context.Context, n *models.News) error {
	n.CreatedAt = now()
	n.UpdatedAt = n.CreatedAt
	if n.Status == models.NewsPublished && n.PublishedAt == nil {
		t := n.CreatedAt
		n.PublishedAt = &t
	}
	id, err := insert(ctx, r.coll, n, "News")
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

// Update applies set and, when the article ends up published, stamps
// publishedAt unless an earlier publish already did.
func (r *NewsRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.News, error) {
	set["updatedAt"] = now()
	n, err := updateByID[models.News](ctx, r.coll, id, set, "News")
	if err != nil {
		return nil, err
	}
	if n.Status == models.NewsPublished && n.PublishedAt == nil {
		return r.stampPublished(ctx, n)
	}
	return n, nil
}

// stampPublished sets publishedAt only where it is still missing, so the
// first publish wins even when two requests race.
func (r *NewsRepository) stampPublished(ctx context.Context, n *models.News) (*models.News, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.News
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": n.ID, "publishedAt": nil},
		bson.M{"$set": bson.M{"publishedAt": now()}},
		opts,
	).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return r.FindByID(ctx, n.ID)
	}
	if err != nil {
		return nil, upstream(err)
	}
	return &out, nil
}

func (r *NewsRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "News")
}

// FetchWithRefs resolves RefAuthor on items.
func (r *NewsRepository) FetchWithRefs(ctx context.Context, items []models.News, refs ...models.RefField) error {
	if len(items) == 0 || !hasRef(refs, models.RefAuthor) {
		return nil
	}
	ids := make([]primitive.ObjectID, len(items))
	for i, n := range items {
		ids[i] = n.AuthorID
	}
	authors, err := resolve(ctx, r.users, ids, nameAvatar)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Author = authors[items[i].AuthorID]
	}
	return nil
}
