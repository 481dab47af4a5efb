package models

import (
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
)

// Section is an ordered titled block (specifications, additional info).
type Section struct {
	Title   string `json:"title" bson:"title"`
	Content string `json:"content" bson:"content"`
	Order   int    `json:"order" bson:"order"`
}

type CustomLink struct {
	Platform string `json:"platform" bson:"platform"`
	URL      string `json:"url" bson:"url"`
}

// PurchaseLinks points at external marketplaces that sell the product.
type PurchaseLinks struct {
	Shopee   string       `json:"shopee,omitempty" bson:"shopee,omitempty"`
	Tiktok   string       `json:"tiktok,omitempty" bson:"tiktok,omitempty"`
	Facebook string       `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Custom   []CustomLink `json:"custom,omitempty" bson:"custom,omitempty"`
}

// Product is a catalog item. CategoryID is stored under "category".
type Product struct {
	ID               primitive.ObjectID     `json:"_id,omitempty" bson:"_id,omitempty"`
	Name             string                 `json:"name" bson:"name"`
	Slug             string                 `json:"slug" bson:"slug"`
	Description      string                 `json:"description" bson:"description"`
	ShortDescription string                 `json:"shortDescription,omitempty" bson:"shortDescription,omitempty"`
	Price            float64                `json:"price" bson:"price"`
	OriginalPrice    float64                `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Images           []string               `json:"images" bson:"images"`
	CategoryID       primitive.ObjectID     `json:"categoryId" bson:"category"`
	Subcategory      string                 `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Brand            string                 `json:"brand,omitempty" bson:"brand,omitempty"`
	SKU              string                 `json:"sku,omitempty" bson:"sku,omitempty"`
	Stock            int                    `json:"stock" bson:"stock"`
	Status           ProductStatus          `json:"status" bson:"status"`
	Featured         bool                   `json:"featured" bson:"featured"`
	Specifications   []Section              `json:"specifications,omitempty" bson:"specifications,omitempty"`
	AdditionalInfo   []Section              `json:"additionalInfo,omitempty" bson:"additionalInfo,omitempty"`
	Attributes       map[string]interface{} `json:"attributes,omitempty" bson:"attributes,omitempty"`
	Tags             []string               `json:"tags,omitempty" bson:"tags,omitempty"`
	SeoTitle         string                 `json:"seoTitle,omitempty" bson:"seoTitle,omitempty"`
	SeoDescription   string                 `json:"seoDescription,omitempty" bson:"seoDescription,omitempty"`
	PurchaseLinks    *PurchaseLinks         `json:"purchaseLinks,omitempty" bson:"purchaseLinks,omitempty"`
	Rating           float64                `json:"rating" bson:"rating"`
	ReviewsCount     int                    `json:"reviewsCount" bson:"reviewsCount"`
	Sold             int                    `json:"sold" bson:"sold"`
	QualityRating    float64                `json:"qualityRating" bson:"qualityRating"`
	DeliveryRating   float64                `json:"deliveryRating" bson:"deliveryRating"`
	WarrantyRating   float64                `json:"warrantyRating" bson:"warrantyRating"`
	CreatedAt        time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt" bson:"updatedAt"`

	Category *Ref `json:"category,omitempty" bson:"-"`
}

// DiscountPercentage is the rounded saving against OriginalPrice.
func (p *Product) DiscountPercentage() int {
	if p.OriginalPrice > p.Price && p.OriginalPrice > 0 {
		return int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
	}
	return 0
}

// IsAvailable reports whether the product can be bought.
func (p *Product) IsAvailable() bool {
	return p.Status == ProductActive && p.Stock > 0
}

// ProductView adds the derived fields to a Product for responses.
type ProductView struct {
	*Product
	DiscountPercentage int  `json:"discountPercentage"`
	IsAvailable        bool `json:"isAvailable"`
}

func ViewProduct(p *Product) ProductView {
	return ProductView{Product: p, DiscountPercentage: p.DiscountPercentage(), IsAvailable: p.IsAvailable()}
}

func ViewProducts(ps []Product) []ProductView {
	out := make([]ProductView, len(ps))
	for i := range ps {
		out[i] = ViewProduct(&ps[i])
	}
	return out
}

// ProductInput is the admin create/update body. Nil fields are left untouched
// on update.
type ProductInput struct {
	Name             *string                `json:"name"`
	Slug             *string                `json:"slug"`
	Description      *string                `json:"description"`
	ShortDescription *string                `json:"shortDescription"`
	Price            *float64               `json:"price"`
	OriginalPrice    *float64               `json:"originalPrice"`
	Images           []string               `json:"images"`
	Category         *string                `json:"category"`
	Subcategory      *string                `json:"subcategory"`
	Brand            *string                `json:"brand"`
	SKU              *string                `json:"sku"`
	Stock            *int                   `json:"stock"`
	Status           *ProductStatus         `json:"status"`
	Featured         *bool                  `json:"featured"`
	Specifications   []Section              `json:"specifications"`
	AdditionalInfo   []Section              `json:"additionalInfo"`
	Attributes       map[string]interface{} `json:"attributes"`
	Tags             []string               `json:"tags"`
	SeoTitle         *string                `json:"seoTitle"`
	SeoDescription   *string                `json:"seoDescription"`
	PurchaseLinks    *PurchaseLinks         `json:"purchaseLinks"`
	Rating           *float64               `json:"rating"`
	ReviewsCount     *int                   `json:"reviewsCount"`
	Sold             *int                   `json:"sold"`
	QualityRating    *float64               `json:"qualityRating"`
	DeliveryRating   *float64               `json:"deliveryRating"`
	WarrantyRating   *float64               `json:"warrantyRating"`
}

// Clean validates the input, trims text, drops empty links and sections and
// clamps every rating into [0,5] and every counter to >= 0.
func (in *ProductInput) Clean(create bool) error {
	if err := text("name", in.Name, create, 200); err != nil {
		return err
	}
	if err := text("description", in.Description, create, 0); err != nil {
		return err
	}
	if err := text("shortDescription", in.ShortDescription, false, 500); err != nil {
		return err
	}
	if err := text("seoTitle", in.SeoTitle, false, 60); err != nil {
		return err
	}
	if err := text("seoDescription", in.SeoDescription, false, 160); err != nil {
		return err
	}
	if create && in.Price == nil {
		return apperror.Validation("price", "price is required")
	}
	if in.Price != nil && *in.Price < 0 {
		return apperror.Validation("price", "Price must be a positive number")
	}
	if in.OriginalPrice != nil && *in.OriginalPrice < 0 {
		return apperror.Validation("originalPrice", "Original price cannot be negative")
	}
	if create && (in.Category == nil || *in.Category == "") {
		return apperror.Validation("category", "Valid category ID is required")
	}
	if _, err := objectID("category", in.Category); err != nil {
		return err
	}
	if create && in.Stock == nil {
		return apperror.Validation("stock", "stock is required")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return apperror.Validation("stock", "Stock must be a non-negative integer")
	}
	if in.Status != nil {
		if _, err := ParseEnum("status", string(*in.Status), ProductStatuses...); err != nil {
			return err
		}
	}
	slug, err := resolveSlug("Product", in.Slug, in.Name, create)
	if err != nil {
		return err
	}
	in.Slug = slug
	if in.SKU != nil {
		s := strings.TrimSpace(*in.SKU)
		in.SKU = &s
	}

	if in.PurchaseLinks != nil {
		in.PurchaseLinks = cleanLinks(in.PurchaseLinks)
	}
	if in.Specifications != nil {
		in.Specifications = cleanSections(in.Specifications)
	}
	if in.AdditionalInfo != nil {
		in.AdditionalInfo = cleanSections(in.AdditionalInfo)
	}

	for _, r := range []*float64{in.Rating, in.QualityRating, in.DeliveryRating, in.WarrantyRating} {
		if r != nil {
			*r = clamp(*r, 0, 5)
		}
	}
	for _, n := range []*int{in.ReviewsCount, in.Sold} {
		if n != nil && *n < 0 {
			*n = 0
		}
	}
	return nil
}

func cleanLinks(l *PurchaseLinks) *PurchaseLinks {
	out := &PurchaseLinks{
		Shopee:   strings.TrimSpace(l.Shopee),
		Tiktok:   strings.TrimSpace(l.Tiktok),
		Facebook: strings.TrimSpace(l.Facebook),
	}
	for _, c := range l.Custom {
		p, u := strings.TrimSpace(c.Platform), strings.TrimSpace(c.URL)
		if p != "" && u != "" {
			out.Custom = append(out.Custom, CustomLink{Platform: p, URL: u})
		}
	}
	return out
}

func cleanSections(in []Section) []Section {
	out := make([]Section, 0, len(in))
	for i, s := range in {
		t, c := strings.TrimSpace(s.Title), strings.TrimSpace(s.Content)
		if t == "" || c == "" {
			continue
		}
		order := s.Order
		if order == 0 {
			order = i
		}
		out = append(out, Section{Title: t, Content: c, Order: order})
	}
	return out
}

// NewProduct builds a product from a cleaned create input.
func NewProduct(in *ProductInput, now time.Time) *Product {
	p := &Product{
		Status:         ProductDraft,
		DeliveryRating: 5,
		WarrantyRating: 5,
		Images:         []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	in.applyTo(p)
	return p
}

func (in *ProductInput) applyTo(p *Product) {
	setString(&p.Name, in.Name)
	setString(&p.Slug, in.Slug)
	setString(&p.Description, in.Description)
	setString(&p.ShortDescription, in.ShortDescription)
	setString(&p.Subcategory, in.Subcategory)
	setString(&p.Brand, in.Brand)
	setString(&p.SKU, in.SKU)
	setString(&p.SeoTitle, in.SeoTitle)
	setString(&p.SeoDescription, in.SeoDescription)
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = *in.OriginalPrice
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.Category != nil {
		if id, err := primitive.ObjectIDFromHex(*in.Category); err == nil {
			p.CategoryID = id
		}
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Specifications != nil {
		p.Specifications = in.Specifications
	}
	if in.AdditionalInfo != nil {
		p.AdditionalInfo = in.AdditionalInfo
	}
	if in.Attributes != nil {
		p.Attributes = in.Attributes
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	if in.PurchaseLinks != nil {
		p.PurchaseLinks = in.PurchaseLinks
	}
	setFloat(&p.Rating, in.Rating)
	setFloat(&p.QualityRating, in.QualityRating)
	setFloat(&p.DeliveryRating, in.DeliveryRating)
	setFloat(&p.WarrantyRating, in.WarrantyRating)
	if in.ReviewsCount != nil {
		p.ReviewsCount = *in.ReviewsCount
	}
	if in.Sold != nil {
		p.Sold = *in.Sold
	}
}

// Updates returns the $set document for a cleaned update input.
func (in *ProductInput) Updates(now time.Time) map[string]interface{} {
	set := map[string]interface{}{"updatedAt": now}
	put := func(key string, ok bool, v interface{}) {
		if ok {
			set[key] = v
		}
	}
	put("name", in.Name != nil, deref(in.Name))
	put("slug", in.Slug != nil && *in.Slug != "", deref(in.Slug))
	put("description", in.Description != nil, deref(in.Description))
	put("shortDescription", in.ShortDescription != nil, deref(in.ShortDescription))
	put("subcategory", in.Subcategory != nil, deref(in.Subcategory))
	put("brand", in.Brand != nil, deref(in.Brand))
	put("seoTitle", in.SeoTitle != nil, deref(in.SeoTitle))
	put("seoDescription", in.SeoDescription != nil, deref(in.SeoDescription))
	put("images", in.Images != nil, in.Images)
	put("specifications", in.Specifications != nil, in.Specifications)
	put("additionalInfo", in.AdditionalInfo != nil, in.AdditionalInfo)
	put("attributes", in.Attributes != nil, in.Attributes)
	put("tags", in.Tags != nil, in.Tags)
	put("purchaseLinks", in.PurchaseLinks != nil, in.PurchaseLinks)
	if in.SKU != nil && *in.SKU != "" {
		set["sku"] = *in.SKU
	}
	if in.Price != nil {
		set["price"] = *in.Price
	}
	if in.OriginalPrice != nil {
		set["originalPrice"] = *in.OriginalPrice
	}
	if in.Category != nil {
		if id, err := primitive.ObjectIDFromHex(*in.Category); err == nil {
			set["category"] = id
		}
	}
	if in.Stock != nil {
		set["stock"] = *in.Stock
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.Featured != nil {
		set["featured"] = *in.Featured
	}
	for key, v := range map[string]*float64{
		"rating": in.Rating, "qualityRating": in.QualityRating,
		"deliveryRating": in.DeliveryRating, "warrantyRating": in.WarrantyRating,
	} {
		if v != nil {
			set[key] = *v
		}
	}
	if in.ReviewsCount != nil {
		set["reviewsCount"] = *in.ReviewsCount
	}
	if in.Sold != nil {
		set["sold"] = *in.Sold
	}
	return set
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
