package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hugox-backend/apperror"
	"hugox-backend/config"
	"hugox-backend/models"
)

// SettingsRepository owns the single settings document. The unique index
// on key keeps concurrent first reads from creating two.
type SettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{coll: db.Collection(config.SettingsCollection)}
}

// Get returns the settings, inserting the defaults on first use.
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	s, err := r.getOrCreate(ctx)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// a concurrent first read inserted it; the retry finds it
		s, err = r.getOrCreate(ctx)
	}
	if err != nil {
		return nil, upstream(err)
	}
	return s, nil
}

func (r *SettingsRepository) getOrCreate(ctx context.Context) (*models.Settings, error) {
	defaults := models.DefaultSettings()
	ts := now()
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var out models.Settings
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"key": models.SettingsKey},
		bson.M{"$setOnInsert": bson.M{
			"general":   defaults.General,
			"payment":   defaults.Payment,
			"shipping":  defaults.Shipping,
			"seo":       defaults.SEO,
			"createdAt": ts,
			"updatedAt": ts,
		}},
		opts,
	).Decode(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Save replaces one section of the settings and returns the result.
func (r *SettingsRepository) Save(ctx context.Context, s *models.Settings, section string) (*models.Settings, error) {
	value, err := s.Section(section)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Settings
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"key": models.SettingsKey},
		bson.M{"$set": bson.M{section: value, "updatedAt": now()}},
		opts,
	).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Settings not found")
		}
		return nil, upstream(err)
	}
	return &out, nil
}
