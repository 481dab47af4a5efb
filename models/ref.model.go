package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RefField names a reference that a repository can resolve on read.
type RefField string

const (
	RefCategory      RefField = "category"
	RefParent        RefField = "parent"
	RefAuthor        RefField = "author"
	RefUser          RefField = "user"
	RefUserContact   RefField = "user_contact"
	RefProduct       RefField = "product"
	RefAssignedTo    RefField = "assigned_to"
	RefSubcategories RefField = "subcategories"
)

// Ref is the display projection of a referenced document.
type Ref struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	Name   string             `json:"name,omitempty" bson:"name,omitempty"`
	Slug   string             `json:"slug,omitempty" bson:"slug,omitempty"`
	Email  string             `json:"email,omitempty" bson:"email,omitempty"`
	Avatar string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Images []string           `json:"images,omitempty" bson:"images,omitempty"`
	Image  string             `json:"image,omitempty" bson:"image,omitempty"`
}
