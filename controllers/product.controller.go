package controllers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
	"hugox-backend/models"
	"hugox-backend/query"
)

const relatedLimit = 5

// GetProducts menangani daftar produk publik dengan filter dan paginasi.
func (ctrl *Controller) GetProducts(c *gin.Context) {
	q, err := query.PublicProducts.Parse(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	ctrl.listProducts(c, q, nil)
}

// SearchProducts menangani pencarian produk berperingkat.
func (ctrl *Controller) SearchProducts(c *gin.Context) {
	q, err := query.SearchProducts.ParseText(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	ctrl.listProducts(c, q, gin.H{"query": q.Text})
}

// GetProductsByCategorySlug menangani daftar produk aktif dari satu kategori.
func (ctrl *Controller) GetProductsByCategorySlug(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	category, err := ctrl.Categories.FindBySlug(ctx, c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	if category.Status != models.CategoryActive {
		fail(c, apperror.NotFound("Category not found"))
		return
	}
	q, err := query.CategoryProducts.Parse(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	q.Filter["category"] = category.ID
	ctrl.listProducts(c, q, gin.H{"category": models.Ref{
		ID:    category.ID,
		Name:  category.Name,
		Slug:  category.Slug,
		Image: category.Image,
	}})
}

func (ctrl *Controller) listProducts(c *gin.Context, q *query.Query, extra gin.H) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, total, err := ctrl.Products.List(ctx, q)
	if err != nil {
		fail(c, err)
		return
	}
	if err := ctrl.Products.FetchWithRefs(ctx, products, models.RefCategory); err != nil {
		fail(c, err)
		return
	}
	data := gin.H{"products": models.ViewProducts(products)}
	for k, v := range extra {
		data[k] = v
	}
	paged(c, data, q, total)
}

// GetFeaturedProducts menangani produk unggulan terbaru.
func (ctrl *Controller) GetFeaturedProducts(c *gin.Context) {
	limit, err := limitParam(c, 8)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := ctrl.Products.Featured(ctx, limit)
	if err != nil {
		fail(c, err)
		return
	}
	if err := ctrl.Products.FetchWithRefs(ctx, products, models.RefCategory); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"products": models.ViewProducts(products)})
}

// GetProduct menangani pengambilan satu produk aktif berdasarkan ID atau slug.
func (ctrl *Controller) GetProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	filter := bson.M{"status": models.ProductActive}
	if id, err := primitive.ObjectIDFromHex(c.Param("id")); err == nil {
		filter["_id"] = id
	} else {
		filter["slug"] = c.Param("id")
	}
	product, err := ctrl.Products.Get(ctx, filter)
	if err != nil {
		fail(c, err)
		return
	}
	related, err := ctrl.Products.Related(ctx, product, relatedLimit)
	if err != nil {
		fail(c, err)
		return
	}
	items := append([]models.Product{*product}, related...)
	if err := ctrl.Products.FetchWithRefs(ctx, items, models.RefCategory); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{
		"product": models.ViewProduct(&items[0]),
		"related": models.ViewProducts(items[1:]),
	})
}

// GetRelatedProducts menangani produk aktif lain dari kategori yang sama.
func (ctrl *Controller) GetRelatedProducts(c *gin.Context) {
	id, err := paramID(c, "id", "product")
	if err != nil {
		fail(c, err)
		return
	}
	limit, err := limitParam(c, relatedLimit)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := ctrl.Products.Get(ctx, bson.M{"_id": id, "status": models.ProductActive})
	if err != nil {
		fail(c, err)
		return
	}
	related, err := ctrl.Products.Related(ctx, product, limit)
	if err != nil {
		fail(c, err)
		return
	}
	if err := ctrl.Products.FetchWithRefs(ctx, related, models.RefCategory); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"products": models.ViewProducts(related)})
}
