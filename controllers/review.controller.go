package controllers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"hugox-backend/models"
	"hugox-backend/query"
	"hugox-backend/repository"
)

// GetReviews menangani daftar ulasan yang disetujui.
func (ctrl *Controller) GetReviews(c *gin.Context) {
	q, err := query.PublicReviews.Parse(c.Request.URL.Query())
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
	if err := ctrl.Reviews.FetchWithRefs(ctx, reviews, models.RefUser, models.RefProduct); err != nil {
		fail(c, err)
		return
	}
	paged(c, gin.H{"reviews": models.ViewReviews(reviews)}, q, total)
}

// GetReview menangani satu ulasan yang disetujui.
func (ctrl *Controller) GetReview(c *gin.Context) {
	id, err := paramID(c, "id", "review")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := ctrl.Reviews.Get(ctx, bson.M{"_id": id, "status": models.ReviewApproved})
	if err != nil {
		fail(c, err)
		return
	}
	items := []models.Review{*review}
	if err := ctrl.Reviews.FetchWithRefs(ctx, items, models.RefUser, models.RefProduct); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"review": models.ViewReview(&items[0])})
}

// GetProductReviews menangani ulasan satu produk beserta ringkasan ratingnya.
func (ctrl *Controller) GetProductReviews(c *gin.Context) {
	productID, err := paramID(c, "productId", "product")
	if err != nil {
		fail(c, err)
		return
	}
	q, err := query.PublicReviews.Parse(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	q.Filter["product"] = productID

	ctx, cancel := requestContext(c)
	defer cancel()

	var (
		reviews      []models.Review
		total        int64
		stats        models.RatingStats
		distribution []models.RatingBucket
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if reviews, total, err = ctrl.Reviews.List(gctx, q); err != nil {
			return err
		}
		return ctrl.Reviews.FetchWithRefs(gctx, reviews, models.RefUser)
	})
	g.Go(func() (err error) {
		stats, err = ctrl.Reviews.RatingStats(gctx, productID)
		return err
	})
	g.Go(func() (err error) {
		distribution, err = ctrl.Reviews.Distribution(gctx, productID)
		return err
	})
	if err := g.Wait(); err != nil {
		fail(c, err)
		return
	}
	paged(c, gin.H{
		"reviews":      models.ViewReviews(reviews),
		"ratingStats":  stats,
		"distribution": distribution,
	}, q, total)
}

// CreateReview menangani ulasan baru dari pengguna yang login.
func (ctrl *Controller) CreateReview(c *gin.Context) {
	user, err := mustUser(c)
	if err != nil {
		fail(c, err)
		return
	}
	var in models.ReviewInput
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	in.Status, in.Verified = nil, nil
	productID, err := in.Validate(true)
	if err != nil {
		fail(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := ctrl.Products.FindByID(ctx, *productID); err != nil {
		fail(c, err)
		return
	}
	review := &models.Review{
		ProductID: *productID,
		UserID:    user.ID,
		Rating:    *in.Rating,
		Comment:   *in.Comment,
		Images:    in.Images,
		Verified:  true,
		Status:    models.ReviewPending,
	}
	if in.Title != nil {
		review.Title = *in.Title
	}
	if review.Images == nil {
		review.Images = []string{}
	}
	if err := ctrl.Reviews.Create(ctx, review); err != nil {
		fail(c, err)
		return
	}
	items := []models.Review{*review}
	if err := ctrl.Reviews.FetchWithRefs(ctx, items, models.RefUser, models.RefProduct); err != nil {
		fail(c, err)
		return
	}
	created(c, "Review created successfully", gin.H{"review": models.ViewReview(&items[0])})
}

// LikeReview menangani penambahan suka pada ulasan.
func (ctrl *Controller) LikeReview(c *gin.Context) {
	ctrl.vote(c, repository.Like, "Review liked successfully", "likes")
}

// DislikeReview menangani penambahan tidak suka pada ulasan.
func (ctrl *Controller) DislikeReview(c *gin.Context) {
	ctrl.vote(c, repository.Dislike, "Review disliked successfully", "dislikes")
}

func (ctrl *Controller) vote(c *gin.Context, v repository.Vote, message, key string) {
	id, err := paramID(c, "id", "review")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	n, err := ctrl.Reviews.Vote(ctx, id, v)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, message, gin.H{key: n})
}
