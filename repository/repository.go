// Package repository implements the Mongo-backed stores used by the
// controllers. Each repository owns one collection.
package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"hugox-backend/apperror"
	"hugox-backend/query"
)

// Repositories groups every store over one database.
type Repositories struct {
	Users      *UserRepository
	Products   *ProductRepository
	Categories *CategoryRepository
	News       *NewsRepository
	Reviews    *ReviewRepository
	Contacts   *ContactRepository
	Settings   *SettingsRepository
	Stats      *StatsRepository
}

// New wires all repositories to db.
func New(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Products:   NewProductRepository(db),
		Categories: NewCategoryRepository(db),
		News:       NewNewsRepository(db),
		Reviews:    NewReviewRepository(db),
		Contacts:   NewContactRepository(db),
		Settings:   NewSettingsRepository(db),
		Stats:      NewStatsRepository(db),
	}
}

// Ping checks the connection behind db.
func Ping(ctx context.Context, db *mongo.Database) error {
	return db.Client().Ping(ctx, nil)
}

// page runs find and count concurrently. Both see the same filter; a write
// landing between them can make total differ from the page by one.
func page[T any](ctx context.Context, find func(context.Context) ([]T, error), count func(context.Context) (int64, error)) ([]T, int64, error) {
	var (
		items []T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = find(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []T{}
	}
	return items, total, nil
}

// list pages through coll with the validated query q.
func list[T any](ctx context.Context, coll *mongo.Collection, q *query.Query) ([]T, int64, error) {
	return page(ctx,
		func(ctx context.Context) ([]T, error) {
			return findAll[T](ctx, coll, q.Filter, q.FindOptions())
		},
		func(ctx context.Context) (int64, error) {
			n, err := coll.CountDocuments(ctx, q.Filter)
			if err != nil {
				return 0, upstream(err)
			}
			return n, nil
		},
	)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
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

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, notFound string, opts ...*options.FindOneOptions) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter, opts...).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound(notFound)
		}
		return nil, upstream(err)
	}
	return &out, nil
}

// updateByID applies $set to the document and returns the new version.
func updateByID[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, set bson.M, entity string) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out T
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound(entity + " not found")
		}
		return nil, writeError(err, entity)
	}
	return &out, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, entity string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return upstream(err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound(entity + " not found")
	}
	return nil
}

func insert(ctx context.Context, coll *mongo.Collection, doc interface{}, entity string) (primitive.ObjectID, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, writeError(err, entity)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

var dupIndex = regexp.MustCompile(`index: ([A-Za-z]+)_`)

// writeError maps duplicate-key failures onto ConflictError naming the
// first key of the violated index.
func writeError(err error, entity string) error {
	if !mongo.IsDuplicateKeyError(err) {
		return upstream(err)
	}
	field := "field"
	if m := dupIndex.FindStringSubmatch(err.Error()); m != nil {
		field = m[1]
	}
	return apperror.Conflict(field, fmt.Sprintf("%s with this %s already exists", entity, field))
}

func upstream(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.Upstream("Database timeout", err)
	}
	return apperror.Upstream("Database error", err)
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
