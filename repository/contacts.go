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

type ContactRepository struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{
		coll:  db.Collection(config.ContactsCollection),
		users: db.Collection(config.UsersCollection),
	}
}

func (r *ContactRepository) List(ctx context.Context, q *query.Query) ([]models.Contact, int64, error) {
	return list[models.Contact](ctx, r.coll, q)
}

func (r *ContactRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Contact, error) {
	return findOne[models.Contact](ctx, r.coll, bson.M{"_id": id}, "Contact not found")
}

func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) error {
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	id, err := insert(ctx, r.coll, c, "Contact")
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *ContactRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Contact, error) {
	set["updatedAt"] = now()
	return updateByID[models.Contact](ctx, r.coll, id, set, "Contact")
}

// AddNote appends an internal note and returns the updated contact.
func (r *ContactRepository) AddNote(ctx context.Context, id primitive.ObjectID, note models.InternalNote) (*models.Contact, error) {
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now()
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Contact
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"internalNotes": note},
			"$set":  bson.M{"updatedAt": now()},
		},
		opts,
	).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Contact not found")
		}
		return nil, upstream(err)
	}
	return &out, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "Contact")
}

// FetchWithRefs resolves RefAssignedTo on items.
func (r *ContactRepository) FetchWithRefs(ctx context.Context, items []models.Contact, refs ...models.RefField) error {
	if len(items) == 0 || !hasRef(refs, models.RefAssignedTo) {
		return nil
	}
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, c := range items {
		if c.AssignedToID != nil {
			ids = append(ids, *c.AssignedToID)
		}
	}
	users, err := resolve(ctx, r.users, ids, nameEmail)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].AssignedToID != nil {
			items[i].AssignedTo = users[*items[i].AssignedToID]
		}
	}
	return nil
}
