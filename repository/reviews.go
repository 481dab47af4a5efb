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

// Vote selects the counter touched by Vote.
type Vote string

const (
	Like    Vote = "likes"
	Dislike Vote = "dislikes"
)

const duplicateReview = "You have already reviewed this product"

type ReviewRepository struct {
	coll     *mongo.Collection
	users    *mongo.Collection
	products *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		coll:     db.Collection(config.ReviewsCollection),
		users:    db.Collection(config.UsersCollection),
		products: db.Collection(config.ProductsCollection),
	}
}

func (r *ReviewRepository) List(ctx context.Context, q *query.Query) ([]models.Review, int64, error) {
	return list[models.Review](ctx, r.coll, q)
}

func (r *ReviewRepository) Get(ctx context.Context, filter bson.M) (*models.Review, error) {
	return findOne[models.Review](ctx, r.coll, filter, "Review not found")
}

func (r *ReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	return r.Get(ctx, bson.M{"_id": id})
}

// Create enforces one review per (product, user). The pre-check gives a
// clean message; the unique index catches concurrent submissions.
func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	err := r.coll.FindOne(ctx, bson.M{"product": rv.ProductID, "user": rv.UserID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	switch {
	case err == nil:
		return apperror.Conflict("product", duplicateReview)
	case !errors.Is(err, mongo.ErrNoDocuments):
		return upstream(err)
	}

	rv.CreatedAt = now()
	rv.UpdatedAt = rv.CreatedAt
	id, err := insert(ctx, r.coll, rv, "Review")
	if err != nil {
		if apperror.Is(err, apperror.KindConflict) {
			return apperror.Conflict("product", duplicateReview)
		}
		return err
	}
	rv.ID = id
	return nil
}

// Update applies set to the review matching filter, which must include _id.
func (r *ReviewRepository) Update(ctx context.Context, filter bson.M, set bson.M) (*models.Review, error) {
	set["updatedAt"] = now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Review
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Review not found")
		}
		return nil, upstream(err)
	}
	return &out, nil
}

// DeleteWhere removes the review matching filter.
func (r *ReviewRepository) DeleteWhere(ctx context.Context, filter bson.M) error {
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return upstream(err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("Review not found")
	}
	return nil
}

// Vote atomically increments one counter and returns its new value.
func (r *ReviewRepository) Vote(ctx context.Context, id primitive.ObjectID, v Vote) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{string(v): 1})
	var out models.Review
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{string(v): 1}}, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, apperror.NotFound("Review not found")
		}
		return 0, upstream(err)
	}
	if v == Dislike {
		return out.Dislikes, nil
	}
	return out.Likes, nil
}

// RatingStats averages the approved reviews of product. No reviews yields
// the zero value.
func (r *ReviewRepository) RatingStats(ctx context.Context, product primitive.ObjectID) (models.RatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product": product, "status": models.ReviewApproved}}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"averageRating": bson.M{"$avg": "$rating"},
			"totalReviews":  bson.M{"$sum": 1},
		}}},
	}
	rows, err := aggregate[models.RatingStats](ctx, r.coll, pipeline)
	if err != nil || len(rows) == 0 {
		return models.RatingStats{}, err
	}
	return rows[0], nil
}

// Distribution counts approved reviews per rating, 5 down to 1.
func (r *ReviewRepository) Distribution(ctx context.Context, product primitive.ObjectID) ([]models.RatingBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product": product, "status": models.ReviewApproved}}},
		{{Key: "$group", Value: bson.M{"_id": "$rating", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
	}
	rows, err := aggregate[models.RatingBucket](ctx, r.coll, pipeline)
	if err != nil {
		return nil, err
	}
	return models.Distribution(rows), nil
}

// FetchWithRefs resolves RefUser (or RefUserContact, which adds the email)
// and RefProduct on items.
func (r *ReviewRepository) FetchWithRefs(ctx context.Context, items []models.Review, refs ...models.RefField) error {
	if len(items) == 0 {
		return nil
	}
	if hasRef(refs, models.RefUser) || hasRef(refs, models.RefUserContact) {
		projection := nameAvatar
		if hasRef(refs, models.RefUserContact) {
			projection = bson.M{"name": 1, "email": 1, "avatar": 1}
		}
		ids := make([]primitive.ObjectID, len(items))
		for i, rv := range items {
			ids[i] = rv.UserID
		}
		users, err := resolve(ctx, r.users, ids, projection)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].User = users[items[i].UserID]
		}
	}
	if hasRef(refs, models.RefProduct) {
		ids := make([]primitive.ObjectID, len(items))
		for i, rv := range items {
			ids[i] = rv.ProductID
		}
		products, err := resolve(ctx, r.products, ids, nameImages)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].Product = products[items[i].ProductID]
		}
	}
	return nil
}

func aggregate[T any](ctx context.Context, coll *mongo.Collection, pipeline interface{}) ([]T, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, upstream(err)
	}
	defer cursor.Close(ctx)
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, upstream(err)
	}
	return out, nil
}
