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

// AdminGetCategories menangani daftar kategori semua status.
func (ctrl *Controller) AdminGetCategories(c *gin.Context) {
	q, err := query.AdminCategories.Parse(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	categories, total, err := ctrl.Categories.List(ctx, q)
	if err != nil {
		fail(c, err)
		return
	}
	if err := ctrl.Categories.FetchWithRefs(ctx, categories, models.RefParent); err != nil {
		fail(c, err)
		return
	}
	paged(c, gin.H{"categories": categories}, q, total)
}

// AdminGetCategory menangani satu kategori tanpa memandang status.
func (ctrl *Controller) AdminGetCategory(c *gin.Context) {
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
	ctrl.respondCategory(ctx, c, "", category)
}

// CreateCategory menangani pembuatan kategori.
func (ctrl *Controller) CreateCategory(c *gin.Context) {
	var in models.CategoryInput
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	parent, err := in.Validate(true)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.checkParent(ctx, parent, primitive.NilObjectID); err != nil {
		fail(c, err)
		return
	}
	category := models.NewCategory(&in, parent, ctrl.now())
	if err := ctrl.Categories.Create(ctx, category); err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "create", "category", category.ID.Hex())
	items := []models.Category{*category}
	if err := ctrl.Categories.FetchWithRefs(ctx, items, models.RefParent); err != nil {
		fail(c, err)
		return
	}
	created(c, "Category created successfully", gin.H{"category": items[0]})
}

// UpdateCategory menangani perubahan sebagian kategori.
func (ctrl *Controller) UpdateCategory(c *gin.Context) {
	id, err := paramID(c, "id", "category")
	if err != nil {
		fail(c, err)
		return
	}
	var in models.CategoryInput
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	parent, err := in.Validate(false)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.checkParent(ctx, parent, id); err != nil {
		fail(c, err)
		return
	}
	category, err := ctrl.Categories.Update(ctx, id, in.Updates(parent, ctrl.now()))
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "update", "category", id.Hex())
	ctrl.respondCategory(ctx, c, "Category updated successfully", category)
}

// ChangeCategoryStatus menangani perubahan status kategori.
func (ctrl *Controller) ChangeCategoryStatus(c *gin.Context) {
	id, err := paramID(c, "id", "category")
	if err != nil {
		fail(c, err)
		return
	}
	var req statusRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	status, err := models.ParseEnum("status", req.Status, models.CategoryStatuses...)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	category, err := ctrl.Categories.Update(ctx, id, map[string]interface{}{"status": status})
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "status", "category", id.Hex())
	ctrl.respondCategory(ctx, c, "Category status changed to "+string(status), category)
}

// DeleteCategory menangani penghapusan kategori.
func (ctrl *Controller) DeleteCategory(c *gin.Context) {
	id, err := paramID(c, "id", "category")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.Categories.Delete(ctx, id); err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "delete", "category", id.Hex())
	ok(c, "Category deleted successfully", nil)
}

// checkParent rejects a missing parent and a category parented to itself.
func (ctrl *Controller) checkParent(ctx context.Context, parent *primitive.ObjectID, self primitive.ObjectID) error {
	if parent == nil {
		return nil
	}
	if *parent == self {
		return apperror.Validation("parent", "Category cannot be its own parent")
	}
	if _, err := ctrl.Categories.FindByID(ctx, *parent); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return apperror.Validation("parent", "Parent category not found")
		}
		return err
	}
	return nil
}

func (ctrl *Controller) respondCategory(ctx context.Context, c *gin.Context, message string, category *models.Category) {
	items := []models.Category{*category}
	if err := ctrl.Categories.FetchWithRefs(ctx, items, models.RefParent, models.RefSubcategories); err != nil {
		fail(c, err)
		return
	}
	ok(c, message, gin.H{"category": items[0]})
}
