package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
)

// News is an article. PublishedAt is written once, on the first publish.
type News struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title          string             `json:"title" bson:"title"`
	Slug           string             `json:"slug" bson:"slug"`
	Content        string             `json:"content" bson:"content"`
	Excerpt        string             `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	Category       NewsCategory       `json:"category" bson:"category"`
	AuthorID       primitive.ObjectID `json:"authorId" bson:"author"`
	FeaturedImage  string             `json:"featuredImage" bson:"featuredImage"`
	Images         []string           `json:"images,omitempty" bson:"images,omitempty"`
	Status         NewsStatus         `json:"status" bson:"status"`
	Featured       bool               `json:"featured" bson:"featured"`
	Tags           []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	SeoTitle       string             `json:"seoTitle,omitempty" bson:"seoTitle,omitempty"`
	SeoDescription string             `json:"seoDescription,omitempty" bson:"seoDescription,omitempty"`
	Views          int64              `json:"views" bson:"views"`
	PublishedAt    *time.Time         `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`

	Author *Ref `json:"author,omitempty" bson:"-"`
}

// NewsInput is the admin create/update body.
type NewsInput struct {
	Title          *string       `json:"title"`
	Slug           *string       `json:"slug"`
	Content        *string       `json:"content"`
	Excerpt        *string       `json:"excerpt"`
	Category       *NewsCategory `json:"category"`
	FeaturedImage  *string       `json:"featuredImage"`
	Images         []string      `json:"images"`
	Status         *NewsStatus   `json:"status"`
	Featured       *bool         `json:"featured"`
	Tags           []string      `json:"tags"`
	SeoTitle       *string       `json:"seoTitle"`
	SeoDescription *string       `json:"seoDescription"`
}

func (in *NewsInput) Validate(create bool) error {
	if err := text("title", in.Title, create, 200); err != nil {
		return err
	}
	if err := text("content", in.Content, create, 0); err != nil {
		return err
	}
	if err := text("excerpt", in.Excerpt, false, 500); err != nil {
		return err
	}
	if err := text("seoTitle", in.SeoTitle, false, 60); err != nil {
		return err
	}
	if err := text("seoDescription", in.SeoDescription, false, 160); err != nil {
		return err
	}
	if create && in.Category == nil {
		return apperror.Validation("category", "category is required")
	}
	if in.Category != nil {
		if _, err := ParseEnum("category", string(*in.Category), NewsCategories...); err != nil {
			return err
		}
	}
	if in.Status != nil {
		if _, err := ParseEnum("status", string(*in.Status), NewsStatuses...); err != nil {
			return err
		}
	}
	slug, err := resolveSlug("News", in.Slug, in.Title, create)
	if err != nil {
		return err
	}
	in.Slug = slug
	return nil
}

// NewNews builds a draft article owned by author. PublishedAt is left for the
// repository to stamp.
func NewNews(in *NewsInput, author primitive.ObjectID, now time.Time) *News {
	n := &News{
		AuthorID:  author,
		Status:    NewsDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	setString(&n.Title, in.Title)
	setString(&n.Slug, in.Slug)
	setString(&n.Content, in.Content)
	setString(&n.Excerpt, in.Excerpt)
	setString(&n.FeaturedImage, in.FeaturedImage)
	setString(&n.SeoTitle, in.SeoTitle)
	setString(&n.SeoDescription, in.SeoDescription)
	if in.Category != nil {
		n.Category = *in.Category
	}
	if in.Status != nil {
		n.Status = *in.Status
	}
	if in.Featured != nil {
		n.Featured = *in.Featured
	}
	n.Images = in.Images
	n.Tags = in.Tags
	return n
}

// Updates returns the $set document for a validated update.
func (in *NewsInput) Updates(now time.Time) map[string]interface{} {
	set := map[string]interface{}{"updatedAt": now}
	for key, v := range map[string]*string{
		"title": in.Title, "content": in.Content, "excerpt": in.Excerpt,
		"featuredImage": in.FeaturedImage, "seoTitle": in.SeoTitle, "seoDescription": in.SeoDescription,
	} {
		if v != nil {
			set[key] = *v
		}
	}
	if in.Slug != nil && *in.Slug != "" {
		set["slug"] = *in.Slug
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.Featured != nil {
		set["featured"] = *in.Featured
	}
	if in.Images != nil {
		set["images"] = in.Images
	}
	if in.Tags != nil {
		set["tags"] = in.Tags
	}
	return set
}
