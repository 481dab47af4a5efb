package controllers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"hugox-backend/models"
)

// GetFilterCategories menangani nama dan slug kategori aktif.
func (ctrl *Controller) GetFilterCategories(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	categories, err := ctrl.Categories.Names(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"categories": categories})
}

// GetPriceRanges menangani rentang harga beserta statistik harga produk aktif.
func (ctrl *Controller) GetPriceRanges(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var (
		ranges []models.PriceRange
		stats  models.PriceStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ranges, err = ctrl.Filters.PriceRanges(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats, err = ctrl.Filters.PriceStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"ranges": ranges, "stats": stats})
}

// GetBrands menangani frekuensi merek produk aktif.
func (ctrl *Controller) GetBrands(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	brands, err := ctrl.Filters.Brands(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"brands": brands})
}

// GetProductTags menangani frekuensi tag produk aktif.
func (ctrl *Controller) GetProductTags(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	tags, err := ctrl.Filters.Tags(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"tags": tags})
}
