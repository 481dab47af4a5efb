package controllers

import (
	"github.com/gin-gonic/gin"

	"hugox-backend/apperror"
	"hugox-backend/models"
	"hugox-backend/query"
)

// GetCategories menangani daftar kategori aktif beserta subkategorinya.
func (ctrl *Controller) GetCategories(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	categories, err := ctrl.Categories.Active(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	if err := ctrl.Categories.FetchWithRefs(ctx, categories, models.RefSubcategories); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"categories": categories})
}

// GetCategory menangani pengambilan satu kategori aktif.
func (ctrl *Controller) GetCategory(c *gin.Context) {
	id, err := paramID(c, "id", "category")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	category, err := ctrl.Categories.FindByID(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	if category.Status != models.CategoryActive {
		fail(c, apperror.NotFound("Category not found"))
		return
	}
	items := []models.Category{*category}
	if err := ctrl.Categories.FetchWithRefs(ctx, items, models.RefParent, models.RefSubcategories); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"category": items[0]})
}

// GetCategoryProducts menangani produk aktif dari satu kategori.
func (ctrl *Controller) GetCategoryProducts(c *gin.Context) {
	id, err := paramID(c, "id", "category")
	if err != nil {
		fail(c, err)
		return
	}
	q, err := query.CategoryProducts.Parse(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	q.Filter["category"] = id
	ctrl.listProducts(c, q, nil)
}
