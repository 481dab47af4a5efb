package query

import (
	"go.mongodb.org/mongo-driver/bson"

	"hugox-backend/models"
)

var (
	productSorts  = []string{"createdAt", "updatedAt", "price", "name", "rating", "sold", "reviewsCount", "stock"}
	newsSorts     = []string{"createdAt", "updatedAt", "publishedAt", "title", "views"}
	categorySorts = []string{"sortOrder", "name", "createdAt", "updatedAt"}
	reviewSorts   = []string{"createdAt", "rating", "likes"}
	contactSorts  = []string{"createdAt", "updatedAt", "priority", "status", "name"}
	userSorts     = []string{"createdAt", "updatedAt", "name", "email"}
)

func enum[T ~string](param string, values []T) Field {
	return Field{Param: param, Kind: Enum, Values: models.Strings(values)}
}

// PublicProducts lists products on the storefront. Only active products are
// visible; status=active is accepted for compatibility.
var PublicProducts = Spec{
	Search: []string{"name", "description", "tags"},
	Fields: []Field{
		{Param: "status", Kind: Enum, Values: []string{string(models.ProductActive)}, Default: string(models.ProductActive)},
		{Param: "category", Kind: ObjectID},
		{Param: "brand", Kind: Pattern},
		{Param: "featured", Kind: Bool},
	},
	PriceKey:     "price",
	DefaultLimit: 12,
	DefaultSort:  "-createdAt",
	Sorts:        productSorts,
}

// CategoryProducts lists the active products of one category page.
var CategoryProducts = Spec{
	Fields: []Field{
		{Param: "brand", Kind: Pattern},
	},
	PriceKey:     "price",
	DefaultLimit: 12,
	DefaultSort:  "-createdAt",
	Sorts:        productSorts,
	Fixed:        bson.M{"status": models.ProductActive},
}

var AdminProducts = Spec{
	Search: []string{"name", "description", "sku"},
	Fields: []Field{
		enum("status", models.ProductStatuses),
		{Param: "category", Kind: ObjectID},
		{Param: "brand", Kind: Pattern},
		{Param: "featured", Kind: Bool},
	},
	PriceKey:     "price",
	DefaultLimit: 12,
	DefaultSort:  "-createdAt",
	Sorts:        productSorts,
}

// SearchProducts backs /api/search/products, both substring and ranked.
var SearchProducts = Spec{
	Search: []string{"name", "description", "tags"},
	Fields: []Field{
		{Param: "category", Kind: ObjectID},
	},
	PriceKey:     "price",
	DefaultLimit: 12,
	DefaultSort:  "-createdAt",
	Sorts:        productSorts,
	Fixed:        bson.M{"status": models.ProductActive},
}

var AdminCategories = Spec{
	Search: []string{"name", "slug", "description"},
	Fields: []Field{
		enum("status", models.CategoryStatuses),
		{Param: "parent", Kind: ObjectID},
	},
	DefaultLimit: 50,
	DefaultSort:  "sortOrder name",
	Sorts:        categorySorts,
}

var PublicNews = Spec{
	Search: []string{"title", "content", "tags"},
	Fields: []Field{
		enum("category", models.NewsCategories),
		{Param: "featured", Kind: Bool},
	},
	DefaultLimit: 12,
	DefaultSort:  "-publishedAt",
	Sorts:        newsSorts,
	Fixed:        bson.M{"status": models.NewsPublished},
}

var SearchNews = Spec{
	Search: []string{"title", "content", "tags"},
	Fields: []Field{
		enum("category", models.NewsCategories),
	},
	DefaultLimit: 12,
	DefaultSort:  "-publishedAt",
	Sorts:        newsSorts,
	Fixed:        bson.M{"status": models.NewsPublished},
}

var AdminNews = Spec{
	Search: []string{"title", "content"},
	Fields: []Field{
		enum("status", models.NewsStatuses),
		enum("category", models.NewsCategories),
		{Param: "featured", Kind: Bool},
	},
	DefaultLimit: 12,
	DefaultSort:  "-createdAt",
	Sorts:        newsSorts,
}

var PublicReviews = Spec{
	Fields: []Field{
		{Param: "product", Kind: ObjectID},
		{Param: "rating", Kind: Int, Min: 1, Max: 5},
	},
	DefaultLimit: 12,
	DefaultSort:  "-createdAt",
	Sorts:        reviewSorts,
	Fixed:        bson.M{"status": models.ReviewApproved},
}

var AdminReviews = Spec{
	Search: []string{"comment", "title"},
	Fields: []Field{
		enum("status", models.ReviewStatuses),
		{Param: "product", Kind: ObjectID},
		{Param: "user", Kind: ObjectID},
		{Param: "rating", Kind: Int, Min: 1, Max: 5},
		{Param: "verified", Kind: Bool},
	},
	DefaultLimit: 12,
	DefaultSort:  "-createdAt",
	Sorts:        reviewSorts,
}

var AdminContacts = Spec{
	Search: []string{"name", "email", "phone", "subject"},
	Fields: []Field{
		enum("status", models.ContactStatuses),
		enum("priority", models.Priorities),
		enum("source", models.ContactSources),
		{Param: "assignedTo", Kind: ObjectID},
	},
	DefaultLimit: 12,
	DefaultSort:  "-createdAt",
	Sorts:        contactSorts,
}

var AdminUsers = Spec{
	Search: []string{"name", "email", "phone"},
	Fields: []Field{
		enum("role", models.Roles),
		{Param: "isActive", Kind: Bool},
	},
	DefaultLimit: 12,
	DefaultSort:  "-createdAt",
	Sorts:        userSorts,
}
