package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
	"hugox-backend/logger"
	"hugox-backend/models"
	"hugox-backend/query"
)

// AdminGetProducts menangani daftar produk semua status.
func (ctrl *Controller) AdminGetProducts(c *gin.Context) {
	q, err := query.AdminProducts.Parse(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	ctrl.listProducts(c, q, nil)
}

// AdminGetProduct menangani satu produk tanpa memandang status.
func (ctrl *Controller) AdminGetProduct(c *gin.Context) {
	id, err := paramID(c, "id", "product")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := ctrl.Products.FindByID(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	ctrl.respondProduct(ctx, c, "", product)
}

// CreateProduct menangani pembuatan produk baru.
func (ctrl *Controller) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	if err := in.Clean(true); err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.checkCategory(ctx, in.Category); err != nil {
		fail(c, err)
		return
	}
	product := models.NewProduct(&in, ctrl.now())
	if err := ctrl.Products.Create(ctx, product); err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "create", "product", product.ID.Hex())
	items := []models.Product{*product}
	if err := ctrl.Products.FetchWithRefs(ctx, items, models.RefCategory); err != nil {
		fail(c, err)
		return
	}
	created(c, "Product created successfully", gin.H{"product": models.ViewProduct(&items[0])})
}

// UpdateProduct menangani perubahan sebagian produk.
func (ctrl *Controller) UpdateProduct(c *gin.Context) {
	id, err := paramID(c, "id", "product")
	if err != nil {
		fail(c, err)
		return
	}
	var in models.ProductInput
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	if err := in.Clean(false); err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.checkCategory(ctx, in.Category); err != nil {
		fail(c, err)
		return
	}
	product, err := ctrl.Products.Update(ctx, id, in.Updates(ctrl.now()))
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "update", "product", id.Hex())
	ctrl.respondProduct(ctx, c, "Product updated successfully", product)
}

// ChangeProductStatus menangani perubahan status produk.
func (ctrl *Controller) ChangeProductStatus(c *gin.Context) {
	id, err := paramID(c, "id", "product")
	if err != nil {
		fail(c, err)
		return
	}
	var req statusRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	status, err := models.ParseEnum("status", req.Status, models.ProductStatuses...)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := ctrl.Products.Update(ctx, id, map[string]interface{}{"status": status})
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "status", "product", id.Hex())
	ctrl.respondProduct(ctx, c, "Product status changed to "+string(status), product)
}

// DeleteProduct menangani penghapusan produk.
func (ctrl *Controller) DeleteProduct(c *gin.Context) {
	id, err := paramID(c, "id", "product")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.Products.Delete(ctx, id); err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "delete", "product", id.Hex())
	ok(c, "Product deleted successfully", nil)
}

// checkCategory verifies that a referenced category exists. A nil or empty
// reference is left to input validation.
func (ctrl *Controller) checkCategory(ctx context.Context, ref *string) error {
	if ref == nil || *ref == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(*ref)
	if err != nil {
		return apperror.Validation("category", "Valid category ID is required")
	}
	if _, err := ctrl.Categories.FindByID(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return apperror.Validation("category", "Category not found")
		}
		return err
	}
	return nil
}

func (ctrl *Controller) respondProduct(ctx context.Context, c *gin.Context, message string, product *models.Product) {
	items := []models.Product{*product}
	if err := ctrl.Products.FetchWithRefs(ctx, items, models.RefCategory); err != nil {
		fail(c, err)
		return
	}
	ok(c, message, gin.H{"product": models.ViewProduct(&items[0])})
}
