package repository

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hugox-backend/config"
	"hugox-backend/models"
	"hugox-backend/query"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(config.UsersCollection)}
}

func (r *UserRepository) List(ctx context.Context, q *query.Query) ([]models.User, int64, error) {
	return list[models.User](ctx, r.coll, q)
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"_id": id}, "User not found")
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"email": strings.ToLower(email)}, "User not found")
}

// Create inserts u and fills its id. A taken email is a ConflictError.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(u.Email)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now()
	}
	u.UpdatedAt = u.CreatedAt
	id, err := insert(ctx, r.coll, u, "User")
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	set["updatedAt"] = now()
	return updateByID[models.User](ctx, r.coll, id, set, "User")
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "User")
}
