package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Nama koleksi.
const (
	UsersCollection      = "users"
	ProductsCollection   = "products"
	CategoriesCollection = "categories"
	NewsCollection       = "news"
	ReviewsCollection    = "reviews"
	ContactsCollection   = "contacts"
	SettingsCollection   = "settings"
)

// ConnectDB menginisialisasi koneksi ke MongoDB.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}

	logrus.Info("Successfully connected to MongoDB")
	return client, nil
}

// Indexes mendaftar indeks yang dibutuhkan setiap koleksi.
func Indexes() map[string][]mongo.IndexModel {
	unique := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	}
	plain := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys}
	}
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			unique(bson.D{{Key: "email", Value: 1}}),
			plain(bson.D{{Key: "role", Value: 1}}),
		},
		ProductsCollection: {
			unique(bson.D{{Key: "slug", Value: 1}}),
			{
				Keys: bson.D{{Key: "sku", Value: 1}},
				Options: options.Index().SetUnique(true).
					SetPartialFilterExpression(bson.M{"sku": bson.M{"$type": "string"}}),
			},
			{
				Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}, {Key: "tags", Value: "text"}},
				Options: options.Index().SetName("products_text"),
			},
			plain(bson.D{{Key: "category", Value: 1}}),
			plain(bson.D{{Key: "status", Value: 1}}),
			plain(bson.D{{Key: "featured", Value: 1}}),
			plain(bson.D{{Key: "price", Value: 1}}),
			plain(bson.D{{Key: "createdAt", Value: -1}}),
		},
		CategoriesCollection: {
			unique(bson.D{{Key: "slug", Value: 1}}),
			plain(bson.D{{Key: "parent", Value: 1}}),
			plain(bson.D{{Key: "status", Value: 1}}),
			plain(bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}}),
		},
		NewsCollection: {
			unique(bson.D{{Key: "slug", Value: 1}}),
			{
				Keys:    bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}, {Key: "tags", Value: "text"}},
				Options: options.Index().SetName("news_text"),
			},
			plain(bson.D{{Key: "category", Value: 1}}),
			plain(bson.D{{Key: "status", Value: 1}}),
			plain(bson.D{{Key: "featured", Value: 1}}),
			plain(bson.D{{Key: "publishedAt", Value: -1}}),
			plain(bson.D{{Key: "createdAt", Value: -1}}),
		},
		ReviewsCollection: {
			unique(bson.D{{Key: "product", Value: 1}, {Key: "user", Value: 1}}),
			plain(bson.D{{Key: "user", Value: 1}}),
			plain(bson.D{{Key: "status", Value: 1}}),
			plain(bson.D{{Key: "rating", Value: 1}}),
			plain(bson.D{{Key: "createdAt", Value: -1}}),
		},
		ContactsCollection: {
			plain(bson.D{{Key: "email", Value: 1}}),
			plain(bson.D{{Key: "phone", Value: 1}}),
			plain(bson.D{{Key: "status", Value: 1}}),
			plain(bson.D{{Key: "priority", Value: 1}}),
			plain(bson.D{{Key: "createdAt", Value: -1}}),
		},
		SettingsCollection: {
			unique(bson.D{{Key: "key", Value: 1}}),
		},
	}
}

// EnsureIndexes membuat indeks yang belum ada.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range Indexes() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", coll, err)
		}
	}
	logrus.Info("MongoDB indexes ensured")
	return nil
}
