package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hugox-backend/models"
)

// Projections used when resolving references.
var (
	nameSlug   = bson.M{"name": 1, "slug": 1}
	nameAvatar = bson.M{"name": 1, "avatar": 1}
	nameEmail  = bson.M{"name": 1, "email": 1}
	nameImages = bson.M{"name": 1, "images": 1}
)

// resolve loads the display projection of every id in one query.
func resolve(ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID, projection bson.M) (map[primitive.ObjectID]*models.Ref, error) {
	out := make(map[primitive.ObjectID]*models.Ref, len(ids))
	unique := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return out, nil
	}
	refs, err := findAll[models.Ref](ctx, coll, bson.M{"_id": bson.M{"$in": unique}}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, err
	}
	for i := range refs {
		out[refs[i].ID] = &refs[i]
	}
	return out, nil
}

func hasRef(refs []models.RefField, want models.RefField) bool {
	for _, r := range refs {
		if r == want {
			return true
		}
	}
	return false
}
