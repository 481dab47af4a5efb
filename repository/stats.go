package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"hugox-backend/config"
	"hugox-backend/models"
)

// priceBounds are the lower edges of the storefront price buckets.
var priceBounds = []float64{0, 100000, 500000, 1000000, 2000000}

var priceLabels = []string{
	"Dưới 100.000đ",
	"100.000đ - 500.000đ",
	"500.000đ - 1.000.000đ",
	"1.000.000đ - 2.000.000đ",
	"Trên 2.000.000đ",
}

// StatsRepository computes facets and dashboard figures. Nothing is cached.
type StatsRepository struct {
	db *mongo.Database
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) coll(name string) *mongo.Collection {
	return r.db.Collection(name)
}

// Counts returns the size of every content collection.
func (r *StatsRepository) Counts(ctx context.Context) (models.Counts, error) {
	var c models.Counts
	g, gctx := errgroup.WithContext(ctx)
	for name, dst := range map[string]*int64{
		config.ProductsCollection: &c.Products,
		config.UsersCollection:    &c.Users,
		config.ContactsCollection: &c.Contacts,
		config.NewsCollection:     &c.News,
		config.ReviewsCollection:  &c.Reviews,
	} {
		name, dst := name, dst
		g.Go(func() error {
			n, err := r.coll(name).CountDocuments(gctx, bson.M{})
			if err != nil {
				return upstream(err)
			}
			*dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Counts{}, err
	}
	return c, nil
}

// RecentContacts returns the newest contacts created after since.
func (r *StatsRepository) RecentContacts(ctx context.Context, since time.Time, limit int) ([]models.RecentContact, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"name": 1, "email": 1, "subject": 1, "status": 1, "createdAt": 1})
	return findAll[models.RecentContact](ctx, r.coll(config.ContactsCollection), bson.M{"createdAt": bson.M{"$gte": since}}, opts)
}

// TopProducts ranks products by number of reviews.
func (r *StatsRepository) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         config.ReviewsCollection,
			"localField":   "_id",
			"foreignField": "product",
			"as":           "reviews",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"reviewCount":   bson.M{"$size": "$reviews"},
			"averageRating": bson.M{"$ifNull": bson.A{bson.M{"$avg": "$reviews.rating"}, 0}},
		}}},
		{{Key: "$match", Value: bson.M{"reviewCount": bson.M{"$gt": 0}}}},
		{{Key: "$sort", Value: bson.M{"reviewCount": -1}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{"name": 1, "images": 1, "price": 1, "reviewCount": 1, "averageRating": 1}}},
	}
	return aggregate[models.TopProduct](ctx, r.coll(config.ProductsCollection), pipeline)
}

// CategoryStats groups products by category name. Revenue is a placeholder
// of ten sales per product until orders exist. limit <= 0 returns all.
func (r *StatsRepository) CategoryStats(ctx context.Context, limit int) ([]models.CategoryStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         config.CategoriesCollection,
			"localField":   "category",
			"foreignField": "_id",
			"as":           "categoryInfo",
		}}},
		{{Key: "$unwind", Value: "$categoryInfo"}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$categoryInfo.name",
			"count":        bson.M{"$sum": 1},
			"revenue":      bson.M{"$sum": bson.M{"$multiply": bson.A{"$price", 10}}},
			"averagePrice": bson.M{"$avg": "$price"},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{
		"_id": 0, "category": "$_id", "count": 1, "revenue": 1, "averagePrice": 1,
	}}})
	return aggregate[models.CategoryStat](ctx, r.coll(config.ProductsCollection), pipeline)
}

// PriceStats summarises active product prices; zero when there are none.
func (r *StatsRepository) PriceStats(ctx context.Context) (models.PriceStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.ProductActive}}},
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"minPrice": bson.M{"$min": "$price"},
			"maxPrice": bson.M{"$max": "$price"},
			"avgPrice": bson.M{"$avg": "$price"},
		}}},
	}
	rows, err := aggregate[models.PriceStats](ctx, r.coll(config.ProductsCollection), pipeline)
	if err != nil || len(rows) == 0 {
		return models.PriceStats{}, err
	}
	s := rows[0]
	s.AvgPrice = math.Round(s.AvgPrice)
	return s, nil
}

type bucketRow struct {
	ID    interface{} `bson:"_id"`
	Count int64       `bson:"count"`
}

// PriceRanges returns the fixed storefront buckets with active product counts.
func (r *StatsRepository) PriceRanges(ctx context.Context) ([]models.PriceRange, error) {
	boundaries := bson.A{}
	for _, b := range priceBounds {
		boundaries = append(boundaries, b)
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.ProductActive, "price": bson.M{"$gte": 0}}}},
		{{Key: "$bucket", Value: bson.M{
			"groupBy":    "$price",
			"boundaries": boundaries,
			"default":    "over",
			"output":     bson.M{"count": bson.M{"$sum": 1}},
		}}},
	}
	rows, err := aggregate[bucketRow](ctx, r.coll(config.ProductsCollection), pipeline)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[fmt.Sprint(row.ID)] = row.Count
	}

	out := make([]models.PriceRange, len(priceBounds))
	for i, lo := range priceBounds {
		pr := models.PriceRange{Label: priceLabels[i], Min: lo}
		if i+1 < len(priceBounds) {
			hi := priceBounds[i+1]
			pr.Max = &hi
			pr.Count = counts[fmt.Sprint(lo)]
		} else {
			pr.Count = counts[fmt.Sprint(lo)] + counts["over"]
		}
		out[i] = pr
	}
	return out, nil
}

// Brands counts active products per non-empty brand.
func (r *StatsRepository) Brands(ctx context.Context) ([]models.Facet, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.ProductActive, "brand": bson.M{"$exists": true, "$ne": ""}}}},
		{{Key: "$group", Value: bson.M{"_id": "$brand", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	return aggregate[models.Facet](ctx, r.coll(config.ProductsCollection), pipeline)
}

// Tags counts active products per tag.
func (r *StatsRepository) Tags(ctx context.Context) ([]models.Facet, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.ProductActive, "tags.0": bson.M{"$exists": true}}}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	return aggregate[models.Facet](ctx, r.coll(config.ProductsCollection), pipeline)
}

// CategoryFacets returns active categories holding at least one product,
// largest first.
func (r *StatsRepository) CategoryFacets(ctx context.Context, limit int) ([]models.CategoryFacet, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.CategoryActive}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         config.ProductsCollection,
			"localField":   "_id",
			"foreignField": "category",
			"as":           "products",
		}}},
		{{Key: "$addFields", Value: bson.M{"productCount": bson.M{"$size": "$products"}}}},
		{{Key: "$match", Value: bson.M{"productCount": bson.M{"$gt": 0}}}},
		{{Key: "$project", Value: bson.M{"name": 1, "slug": 1, "image": 1, "productCount": 1}}},
		{{Key: "$sort", Value: bson.M{"productCount": -1}}},
		{{Key: "$limit", Value: limit}},
	}
	return aggregate[models.CategoryFacet](ctx, r.coll(config.CategoriesCollection), pipeline)
}
