package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hugox-backend/config"
	"hugox-backend/controllers"
	"hugox-backend/middleware"
	"hugox-backend/models"
	"hugox-backend/storage"
)

// Setup mengonfigurasi dan mengembalikan Gin engine.
func Setup(ctrl *controllers.Controller, gate *middleware.Gate, cfg *config.AppConfig) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	controllers.RegisterValidators()

	r := gin.New()
	r.UseRawPath = true
	r.HandleMethodNotAllowed = true
	r.MaxMultipartMemory = 8 << 20

	corsConfig := cors.DefaultConfig()
	if origins := cfg.Origins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour

	r.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.SecurityHeaders(),
		cors.New(corsConfig),
		middleware.RateLimit(cfg.RateLimitWindow, cfg.RateLimitMax, cfg.PublicRateLimitMax),
		middleware.Errors(cfg.ForbiddenStatus),
	)

	r.GET("/", ctrl.Root)
	r.GET("/health", ctrl.HealthCheck)

	api := r.Group("/api")

	// Rute otentikasi
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", ctrl.Register)
		authGroup.POST("/login", ctrl.Login)
		authGroup.POST("/logout", gate.Authenticate(), ctrl.Logout)
		authGroup.GET("/profile", gate.Authenticate(), ctrl.GetProfile)
		authGroup.PUT("/profile", gate.Authenticate(), ctrl.UpdateProfile)
	}

	// Rute produk
	products := api.Group("/products")
	{
		products.GET("", ctrl.GetProducts)
		products.GET("/search", ctrl.SearchProducts)
		products.GET("/featured", ctrl.GetFeaturedProducts)
		products.GET("/category/:slug", ctrl.GetProductsByCategorySlug)
		products.GET("/:id", ctrl.GetProduct)
		products.GET("/:id/related", ctrl.GetRelatedProducts)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", ctrl.GetCategories)
		categories.GET("/:id", ctrl.GetCategory)
		categories.GET("/:id/products", ctrl.GetCategoryProducts)
	}

	news := api.Group("/news")
	{
		news.GET("", ctrl.GetNews)
		news.GET("/categories", ctrl.GetNewsCategories)
		news.GET("/featured", ctrl.GetFeaturedNews)
		news.GET("/category/:category", ctrl.GetNewsByCategory)
		news.GET("/:id", ctrl.GetNewsArticle)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("", ctrl.GetReviews)
		reviews.GET("/product/:productId", ctrl.GetProductReviews)
		reviews.GET("/:id", ctrl.GetReview)
		reviews.POST("", gate.Authenticate(), ctrl.CreateReview)
		reviews.POST("/:id/like", gate.OptionalAuth(), ctrl.LikeReview)
		reviews.POST("/:id/dislike", gate.OptionalAuth(), ctrl.DislikeReview)
	}

	contact := api.Group("/contact")
	{
		contact.POST("", ctrl.SubmitContact)
		contact.POST("/agent", ctrl.SubmitAgentContact)
	}

	search := api.Group("/search")
	{
		search.GET("", ctrl.GlobalSearch)
		search.GET("/products", ctrl.SearchProducts)
		search.GET("/news", ctrl.SearchNews)
	}

	filters := api.Group("/filters")
	{
		filters.GET("/categories", ctrl.GetFilterCategories)
		filters.GET("/price-ranges", ctrl.GetPriceRanges)
		filters.GET("/brands", ctrl.GetBrands)
		filters.GET("/tags", ctrl.GetProductTags)
	}

	mobile := api.Group("/mobile")
	{
		mobile.GET("/bottom-bar", ctrl.GetBottomBarConfig)
		mobile.GET("/hero-banner", ctrl.GetHeroBannerConfig)
		mobile.GET("/featured-sections", ctrl.GetFeaturedSections)
	}

	public := api.Group("/public")
	{
		public.GET("/general-settings", ctrl.GetPublicGeneralSettings)
		public.GET("/contact-settings", ctrl.GetPublicContactSettings)
	}

	// Rute unggah, semua memerlukan login
	upload := api.Group("/upload", gate.Authenticate())
	{
		upload.POST("/products/single", ctrl.UploadSingle(storage.ProductImages))
		upload.POST("/products/multiple", ctrl.UploadMultiple(storage.ProductImages))
		upload.POST("/news/single", ctrl.UploadSingle(storage.NewsImages))
		upload.POST("/news/multiple", ctrl.UploadMultiple(storage.NewsImages))
		upload.POST("/avatars", ctrl.UploadSingle(storage.Avatars))
		upload.POST("/categories", ctrl.UploadSingle(storage.CategoryImages))
		upload.POST("/settings/logo", middleware.Authorize(models.RoleAdmin), ctrl.UploadSingle(storage.Logo))
		upload.POST("/settings/favicon", middleware.Authorize(models.RoleAdmin), ctrl.UploadSingle(storage.Favicon))
		upload.DELETE("/:public_id", ctrl.DeleteImage)
		upload.GET("/:public_id/info", ctrl.GetImageInfo)
		upload.GET("/:public_id/transform", ctrl.TransformImage)
	}

	admin(api, ctrl, gate)

	r.NoRoute(middleware.NotFound)
	r.NoMethod(middleware.NotFound)
	return r
}

// admin mendaftarkan rute back-office. Semua kecuali login memerlukan role admin.
func admin(api *gin.RouterGroup, ctrl *controllers.Controller, gate *middleware.Gate) {
	api.POST("/admin/auth/login", ctrl.AdminLogin)

	g := api.Group("/admin", gate.Authenticate(), middleware.Authorize(models.RoleAdmin))

	g.POST("/auth/logout", ctrl.AdminLogout)
	g.GET("/auth/profile", ctrl.GetAdminProfile)

	products := g.Group("/products")
	{
		products.GET("", ctrl.AdminGetProducts)
		products.GET("/:id", ctrl.AdminGetProduct)
		products.POST("", ctrl.CreateProduct)
		products.PUT("/:id", ctrl.UpdateProduct)
		products.PUT("/:id/status", ctrl.ChangeProductStatus)
		products.DELETE("/:id", ctrl.DeleteProduct)
	}

	categories := g.Group("/categories")
	{
		categories.GET("", ctrl.AdminGetCategories)
		categories.GET("/:id", ctrl.AdminGetCategory)
		categories.POST("", ctrl.CreateCategory)
		categories.PUT("/:id", ctrl.UpdateCategory)
		categories.PUT("/:id/status", ctrl.ChangeCategoryStatus)
		categories.DELETE("/:id", ctrl.DeleteCategory)
	}

	news := g.Group("/news")
	{
		news.GET("", ctrl.AdminGetNews)
		news.GET("/:id", ctrl.AdminGetNewsArticle)
		news.POST("", ctrl.CreateNews)
		news.PUT("/:id", ctrl.UpdateNews)
		news.PUT("/:id/status", ctrl.ChangeNewsStatus)
		news.DELETE("/:id", ctrl.DeleteNews)
	}

	reviews := g.Group("/reviews")
	{
		reviews.GET("", ctrl.AdminGetReviews)
		reviews.GET("/:id", ctrl.AdminGetReview)
		reviews.PUT("/:id/status", ctrl.UpdateReviewStatus)
		reviews.DELETE("/:id", ctrl.AdminDeleteReview)
	}

	contacts := g.Group("/contacts")
	{
		contacts.GET("", ctrl.AdminGetContacts)
		contacts.GET("/:id", ctrl.AdminGetContact)
		contacts.PUT("/:id/status", ctrl.UpdateContactStatus)
		contacts.POST("/:id/notes", ctrl.AddContactNotes)
		contacts.DELETE("/:id", ctrl.DeleteContact)
	}

	users := g.Group("/users")
	{
		users.GET("", ctrl.GetUsers)
		users.GET("/:id", ctrl.GetUser)
		users.POST("", ctrl.CreateUser)
		users.PUT("/:id", ctrl.UpdateUser)
		users.DELETE("/:id", ctrl.DeleteUser)
	}

	settings := g.Group("/settings")
	{
		settings.GET("", ctrl.GetSettings)
		settings.PUT("", ctrl.UpdateSettings)
		settings.GET("/general", ctrl.GetGeneralSettings)
		settings.PUT("/general", ctrl.UpdateGeneralSettings)
		settings.GET("/contact", ctrl.GetContactSettings)
		settings.PUT("/contact", ctrl.UpdateContactSettings)
	}

	dashboard := g.Group("/dashboard")
	{
		dashboard.GET("/stats", ctrl.GetDashboardStats)
		dashboard.GET("/revenue", ctrl.GetRevenueData)
		dashboard.GET("/orders", ctrl.GetOrdersData)
		dashboard.GET("/categories", ctrl.GetCategoryData)
		dashboard.GET("/trends", ctrl.GetTrendsData)
	}
}
