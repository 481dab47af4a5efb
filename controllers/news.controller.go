package controllers

import (
	"github.com/gin-gonic/gin"

	"hugox-backend/models"
	"hugox-backend/query"
)

// GetNews menangani daftar artikel yang sudah terbit.
func (ctrl *Controller) GetNews(c *gin.Context) {
	q, err := query.PublicNews.Parse(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	ctrl.listNews(c, q)
}

// GetNewsByCategory menangani artikel terbit dari satu rubrik.
func (ctrl *Controller) GetNewsByCategory(c *gin.Context) {
	category, err := models.ParseEnum("category", c.Param("category"), models.NewsCategories...)
	if err != nil {
		fail(c, err)
		return
	}
	q, err := query.PublicNews.Parse(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	q.Filter["category"] = category
	ctrl.listNews(c, q)
}

func (ctrl *Controller) listNews(c *gin.Context, q *query.Query) {
	ctx, cancel := requestContext(c)
	defer cancel()

	news, total, err := ctrl.News.List(ctx, q)
	if err != nil {
		fail(c, err)
		return
	}
	if err := ctrl.News.FetchWithRefs(ctx, news, models.RefAuthor); err != nil {
		fail(c, err)
		return
	}
	paged(c, gin.H{"news": news}, q, total)
}

// GetNewsArticle menangani satu artikel terbit dan menambah jumlah tayangnya.
func (ctrl *Controller) GetNewsArticle(c *gin.Context) {
	id, err := paramID(c, "id", "news")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	article, err := ctrl.News.View(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	items := []models.News{*article}
	if err := ctrl.News.FetchWithRefs(ctx, items, models.RefAuthor); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"article": items[0]})
}

// GetFeaturedNews menangani artikel unggulan terbaru.
func (ctrl *Controller) GetFeaturedNews(c *gin.Context) {
	limit, err := limitParam(c, 6)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	news, err := ctrl.News.Featured(ctx, limit)
	if err != nil {
		fail(c, err)
		return
	}
	if err := ctrl.News.FetchWithRefs(ctx, news, models.RefAuthor); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"news": news})
}

// GetNewsCategories menangani daftar rubrik yang memiliki artikel terbit.
func (ctrl *Controller) GetNewsCategories(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	categories, err := ctrl.News.Categories(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"categories": categories})
}
