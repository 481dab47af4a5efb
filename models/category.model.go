package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID             primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	Name           string              `json:"name" bson:"name"`
	Slug           string              `json:"slug" bson:"slug"`
	Description    string              `json:"description,omitempty" bson:"description,omitempty"`
	ParentID       *primitive.ObjectID `json:"parentId,omitempty" bson:"parent,omitempty"`
	Image          string              `json:"image,omitempty" bson:"image,omitempty"`
	Status         CategoryStatus      `json:"status" bson:"status"`
	SortOrder      int                 `json:"sortOrder" bson:"sortOrder"`
	SeoTitle       string              `json:"seoTitle,omitempty" bson:"seoTitle,omitempty"`
	SeoDescription string              `json:"seoDescription,omitempty" bson:"seoDescription,omitempty"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`

	Parent        *Ref       `json:"parent,omitempty" bson:"-"`
	Subcategories []Category `json:"subcategories,omitempty" bson:"-"`
}

// CategoryInput is the admin create/update body.
type CategoryInput struct {
	Name           *string         `json:"name"`
	Slug           *string         `json:"slug"`
	Description    *string         `json:"description"`
	Parent         *string         `json:"parent"`
	Image          *string         `json:"image"`
	Status         *CategoryStatus `json:"status"`
	SortOrder      *int            `json:"sortOrder"`
	SeoTitle       *string         `json:"seoTitle"`
	SeoDescription *string         `json:"seoDescription"`
}

// CategoryFacet is a category with the number of products filed under it.
type CategoryFacet struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Slug         string             `json:"slug" bson:"slug"`
	Image        string             `json:"image,omitempty" bson:"image,omitempty"`
	ProductCount int64              `json:"productCount" bson:"productCount"`
}

// Validate normalises the input and resolves the parent id.
func (in *CategoryInput) Validate(create bool) (*primitive.ObjectID, error) {
	if err := text("name", in.Name, create, 100); err != nil {
		return nil, err
	}
	if err := text("description", in.Description, false, 500); err != nil {
		return nil, err
	}
	if err := text("seoTitle", in.SeoTitle, false, 60); err != nil {
		return nil, err
	}
	if err := text("seoDescription", in.SeoDescription, false, 160); err != nil {
		return nil, err
	}
	if in.Status != nil {
		if _, err := ParseEnum("status", string(*in.Status), CategoryStatuses...); err != nil {
			return nil, err
		}
	}
	slug, err := resolveSlug("Category", in.Slug, in.Name, create)
	if err != nil {
		return nil, err
	}
	in.Slug = slug
	return objectID("parent", in.Parent)
}

// NewCategory builds an active category from a validated create input.
func NewCategory(in *CategoryInput, parent *primitive.ObjectID, now time.Time) *Category {
	c := &Category{
		ParentID:  parent,
		Status:    CategoryActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	setString(&c.Name, in.Name)
	setString(&c.Slug, in.Slug)
	setString(&c.Description, in.Description)
	setString(&c.Image, in.Image)
	setString(&c.SeoTitle, in.SeoTitle)
	setString(&c.SeoDescription, in.SeoDescription)
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}
	return c
}

// Updates returns the $set document for a validated update. An empty parent
// string detaches the category from its parent.
func (in *CategoryInput) Updates(parent *primitive.ObjectID, now time.Time) map[string]interface{} {
	set := map[string]interface{}{"updatedAt": now}
	for key, v := range map[string]*string{
		"name": in.Name, "description": in.Description, "image": in.Image,
		"seoTitle": in.SeoTitle, "seoDescription": in.SeoDescription,
	} {
		if v != nil {
			set[key] = *v
		}
	}
	if in.Slug != nil && *in.Slug != "" {
		set["slug"] = *in.Slug
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.SortOrder != nil {
		set["sortOrder"] = *in.SortOrder
	}
	switch {
	case parent != nil:
		set["parent"] = *parent
	case in.Parent != nil:
		set["parent"] = nil
	}
	return set
}
