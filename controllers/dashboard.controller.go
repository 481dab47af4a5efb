package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"hugox-backend/models"
)

// GetDashboardStats menangani ringkasan dasbor admin.
func (ctrl *Controller) GetDashboardStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := ctrl.Dashboard.Stats(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"stats": stats})
}

// GetRevenueData menangani grafik pendapatan harian.
func (ctrl *Controller) GetRevenueData(c *gin.Context) {
	ctrl.series(c, "revenueChart", ctrl.Dashboard.Revenue)
}

// GetOrdersData menangani grafik pesanan harian.
func (ctrl *Controller) GetOrdersData(c *gin.Context) {
	ctrl.series(c, "ordersChart", ctrl.Dashboard.Orders)
}

// GetTrendsData menangani grafik tren pengunjung dan konversi.
func (ctrl *Controller) GetTrendsData(c *gin.Context) {
	ctrl.series(c, "trendsData", ctrl.Dashboard.Trends)
}

// GetCategoryData menangani statistik produk per kategori.
func (ctrl *Controller) GetCategoryData(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := ctrl.Dashboard.Categories(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"categoryStats": stats})
}

// series serves one day-by-day chart for the ?period= window, 30d by default.
func (ctrl *Controller) series(c *gin.Context, key string, load func(context.Context, models.Period) ([]models.DayPoint, error)) {
	period, err := models.ParseEnum("period", c.DefaultQuery("period", string(models.Period30d)), models.Periods...)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	points, err := load(ctx, period)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{key: points, "period": period})
}
