package controllers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"hugox-backend/models"
)

const sectionCategories = 6

type bottomBarItem struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Route  string `json:"route"`
	Active bool   `json:"active"`
}

type heroBanner struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Image      string `json:"image"`
	Link       string `json:"link"`
	ButtonText string `json:"buttonText"`
	Active     bool   `json:"active"`
}

var bottomBarItems = []bottomBarItem{
	{ID: "home", Label: "Trang chủ", Icon: "home", Route: "/", Active: true},
	{ID: "products", Label: "Sản phẩm", Icon: "shopping-bag", Route: "/products"},
	{ID: "news", Label: "Tin tức", Icon: "newspaper", Route: "/news"},
	{ID: "contact", Label: "Liên hệ", Icon: "phone", Route: "/contact"},
}

var heroBanners = []heroBanner{
	{ID: 1, Title: "HugoX E-commerce", Subtitle: "Hệ thống thương mại điện tử chuyên nghiệp",
		Image: "/images/hero-banner-1.jpg", Link: "/products", ButtonText: "Khám phá ngay", Active: true},
	{ID: 2, Title: "Sản phẩm chất lượng cao", Subtitle: "Cam kết chất lượng và giá cả hợp lý",
		Image: "/images/hero-banner-2.jpg", Link: "/products", ButtonText: "Mua ngay"},
	{ID: 3, Title: "Tin tức mới nhất", Subtitle: "Cập nhật những thông tin mới nhất về sản phẩm",
		Image: "/images/hero-banner-3.jpg", Link: "/news", ButtonText: "Đọc thêm"},
}

// GetBottomBarConfig menangani konfigurasi bilah bawah aplikasi seluler.
// Kontak diambil dari pengaturan situs.
func (ctrl *Controller) GetBottomBarConfig(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	settings, err := ctrl.Settings.Get(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"config": gin.H{
		"items": bottomBarItems,
		"contact": gin.H{
			"zalo":    settings.General.Zalo,
			"hotline": settings.General.Phone,
		},
	}})
}

// GetHeroBannerConfig menangani daftar banner utama.
func (ctrl *Controller) GetHeroBannerConfig(c *gin.Context) {
	ok(c, "", gin.H{"banners": heroBanners})
}

// GetFeaturedSections menangani produk, berita dan kategori unggulan untuk
// beranda seluler.
func (ctrl *Controller) GetFeaturedSections(c *gin.Context) {
	limit, err := limitParam(c, 6)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	var (
		products   []models.Product
		news       []models.News
		categories []models.CategoryFacet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if products, err = ctrl.Products.Featured(gctx, limit); err != nil {
			return err
		}
		return ctrl.Products.FetchWithRefs(gctx, products, models.RefCategory)
	})
	g.Go(func() (err error) {
		if news, err = ctrl.News.Featured(gctx, limit); err != nil {
			return err
		}
		return ctrl.News.FetchWithRefs(gctx, news, models.RefAuthor)
	})
	g.Go(func() (err error) {
		categories, err = ctrl.Filters.CategoryFacets(gctx, sectionCategories)
		return err
	})
	if err := g.Wait(); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"sections": gin.H{
		"featuredProducts": models.ViewProducts(products),
		"featuredNews":     news,
		"categories":       categories,
	}})
}
