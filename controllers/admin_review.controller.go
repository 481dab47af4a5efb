package controllers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"hugox-backend/logger"
	"hugox-backend/models"
	"hugox-backend/query"
)

// AdminGetReviews menangani daftar ulasan semua status untuk moderasi.
func (ctrl *Controller) AdminGetReviews(c *gin.Context) {
	q, err := query.AdminReviews.Parse(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	reviews, total, err := ctrl.Reviews.List(ctx, q)
	if err != nil {
		fail(c, err)
		return
	}
	if err := ctrl.Reviews.FetchWithRefs(ctx, reviews, models.RefUserContact, models.RefProduct); err != nil {
		fail(c, err)
		return
	}
	paged(c, gin.H{"reviews": models.ViewReviews(reviews)}, q, total)
}

// AdminGetReview menangani satu ulasan tanpa memandang status.
func (ctrl *Controller) AdminGetReview(c *gin.Context) {
	id, err := paramID(c, "id", "review")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := ctrl.Reviews.FindByID(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	items := []models.Review{*review}
	if err := ctrl.Reviews.FetchWithRefs(ctx, items, models.RefUserContact, models.RefProduct); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"review": models.ViewReview(&items[0])})
}

// UpdateReviewStatus menangani moderasi ulasan.
func (ctrl *Controller) UpdateReviewStatus(c *gin.Context) {
	id, err := paramID(c, "id", "review")
	if err != nil {
		fail(c, err)
		return
	}
	var req statusRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	status, err := models.ParseEnum("status", req.Status, models.ReviewStatuses...)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := ctrl.Reviews.Update(ctx, bson.M{"_id": id}, bson.M{"status": status})
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "status", "review", id.Hex())
	items := []models.Review{*review}
	if err := ctrl.Reviews.FetchWithRefs(ctx, items, models.RefUserContact, models.RefProduct); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Review status updated successfully", gin.H{"review": models.ViewReview(&items[0])})
}

// AdminDeleteReview menangani penghapusan ulasan.
func (ctrl *Controller) AdminDeleteReview(c *gin.Context) {
	id, err := paramID(c, "id", "review")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.Reviews.DeleteWhere(ctx, bson.M{"_id": id}); err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "delete", "review", id.Hex())
	ok(c, "Review deleted successfully", nil)
}
