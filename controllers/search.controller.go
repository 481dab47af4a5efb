package controllers

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"hugox-backend/apperror"
	"hugox-backend/models"
	"hugox-backend/query"
)

// GlobalSearch menangani pencarian substring di produk dan berita sekaligus.
// Parameter type membatasi pencarian ke salah satunya.
func (ctrl *Controller) GlobalSearch(c *gin.Context) {
	values := c.Request.URL.Query()
	term, err := query.Term(values, "q")
	if err != nil {
		fail(c, err)
		return
	}
	kind := values.Get("type")
	if kind != "" && kind != "products" && kind != "news" {
		fail(c, apperror.Validation("type", "type must be one of: products, news"))
		return
	}
	browse := url.Values{"search": {term}}
	for _, k := range []string{"page", "limit"} {
		if v := values.Get(k); v != "" {
			browse.Set(k, v)
		}
	}
	pq, err := query.SearchProducts.Parse(browse)
	if err != nil {
		fail(c, err)
		return
	}
	nq, err := query.SearchNews.Parse(browse)
	if err != nil {
		fail(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var (
		products                = []models.Product{}
		news                    = []models.News{}
		productTotal, newsTotal int64
	)
	g, gctx := errgroup.WithContext(ctx)
	if kind != "news" {
		g.Go(func() (err error) {
			if products, productTotal, err = ctrl.Products.List(gctx, pq); err != nil {
				return err
			}
			return ctrl.Products.FetchWithRefs(gctx, products, models.RefCategory)
		})
	}
	if kind != "products" {
		g.Go(func() (err error) {
			if news, newsTotal, err = ctrl.News.List(gctx, nq); err != nil {
				return err
			}
			return ctrl.News.FetchWithRefs(gctx, news, models.RefAuthor)
		})
	}
	if err := g.Wait(); err != nil {
		fail(c, err)
		return
	}
	total := productTotal + newsTotal
	paged(c, gin.H{
		"query": term,
		"results": gin.H{
			"products": models.ViewProducts(products),
			"news":     news,
			"total":    total,
		},
	}, pq, total)
}

// SearchNews menangani pencarian berita berperingkat relevansi.
func (ctrl *Controller) SearchNews(c *gin.Context) {
	q, err := query.SearchNews.ParseText(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
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
	paged(c, gin.H{"query": q.Text, "news": news}, q, total)
}
