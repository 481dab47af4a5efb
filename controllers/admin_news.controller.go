package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"hugox-backend/logger"
	"hugox-backend/models"
	"hugox-backend/query"
)

// AdminGetNews menangani daftar berita semua status.
func (ctrl *Controller) AdminGetNews(c *gin.Context) {
	q, err := query.AdminNews.Parse(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	ctrl.listNews(c, q)
}

// AdminGetNewsArticle menangani satu berita tanpa menambah jumlah tayangan.
func (ctrl *Controller) AdminGetNewsArticle(c *gin.Context) {
	id, err := paramID(c, "id", "news")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	article, err := ctrl.News.FindByID(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	ctrl.respondArticle(ctx, c, "", article)
}

// CreateNews menangani pembuatan berita dengan penulis admin yang login.
func (ctrl *Controller) CreateNews(c *gin.Context) {
	user, err := mustUser(c)
	if err != nil {
		fail(c, err)
		return
	}
	var in models.NewsInput
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	if err := in.Validate(true); err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	article := models.NewNews(&in, user.ID, ctrl.now())
	if err := ctrl.News.Create(ctx, article); err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "create", "news", article.ID.Hex())
	items := []models.News{*article}
	if err := ctrl.News.FetchWithRefs(ctx, items, models.RefAuthor); err != nil {
		fail(c, err)
		return
	}
	created(c, "News article created successfully", gin.H{"article": items[0]})
}

// UpdateNews menangani perubahan sebagian berita. publishedAt hanya diisi
// pada publikasi pertama.
func (ctrl *Controller) UpdateNews(c *gin.Context) {
	id, err := paramID(c, "id", "news")
	if err != nil {
		fail(c, err)
		return
	}
	var in models.NewsInput
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	if err := in.Validate(false); err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	article, err := ctrl.News.Update(ctx, id, in.Updates(ctrl.now()))
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "update", "news", id.Hex())
	ctrl.respondArticle(ctx, c, "News article updated successfully", article)
}

// ChangeNewsStatus menangani perubahan status berita.
func (ctrl *Controller) ChangeNewsStatus(c *gin.Context) {
	id, err := paramID(c, "id", "news")
	if err != nil {
		fail(c, err)
		return
	}
	var req statusRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	status, err := models.ParseEnum("status", req.Status, models.NewsStatuses...)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	article, err := ctrl.News.Update(ctx, id, map[string]interface{}{"status": status})
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "status", "news", id.Hex())
	ctrl.respondArticle(ctx, c, "News article status changed to "+string(status), article)
}

// DeleteNews menangani penghapusan berita.
func (ctrl *Controller) DeleteNews(c *gin.Context) {
	id, err := paramID(c, "id", "news")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.News.Delete(ctx, id); err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "delete", "news", id.Hex())
	ok(c, "News article deleted successfully", nil)
}

func (ctrl *Controller) respondArticle(ctx context.Context, c *gin.Context, message string, article *models.News) {
	items := []models.News{*article}
	if err := ctrl.News.FetchWithRefs(ctx, items, models.RefAuthor); err != nil {
		fail(c, err)
		return
	}
	ok(c, message, gin.H{"article": items[0]})
}
