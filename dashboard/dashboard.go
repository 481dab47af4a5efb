// Package dashboard assembles the admin statistics from the content
// repositories and an order source.
package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"hugox-backend/models"
)

const (
	recentContactWindow = 7 * 24 * time.Hour
	widgetSize          = 5
	statsDays           = 30
)

// Store is the aggregation side of the repositories.
type Store interface {
	Counts(ctx context.Context) (models.Counts, error)
	RecentContacts(ctx context.Context, since time.Time, limit int) ([]models.RecentContact, error)
	TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error)
	CategoryStats(ctx context.Context, limit int) ([]models.CategoryStat, error)
}

// Service computes dashboard payloads. Nothing is cached.
type Service struct {
	store  Store
	orders OrderSource
	now    func() time.Time
}

func NewService(store Store, orders OrderSource) *Service {
	return &Service{store: store, orders: orders, now: time.Now}
}

// Stats runs every widget query concurrently.
func (s *Service) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var (
		st     models.DashboardStats
		counts models.Counts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.store.Counts(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.RecentContacts, err = s.store.RecentContacts(gctx, s.now().Add(-recentContactWindow), widgetSize)
		return err
	})
	g.Go(func() (err error) {
		st.TopProducts, err = s.store.TopProducts(gctx, widgetSize)
		return err
	})
	g.Go(func() (err error) {
		st.CategoryStats, err = s.store.CategoryStats(gctx, widgetSize)
		return err
	})
	g.Go(func() (err error) {
		st.RevenueChart, err = s.orders.Revenue(gctx, statsDays)
		return err
	})
	g.Go(func() (err error) {
		st.RecentOrders, err = s.orders.Recent(gctx, widgetSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	st.TotalProducts = counts.Products
	st.TotalUsers = counts.Users
	st.TotalContacts = counts.Contacts
	st.TotalNews = counts.News
	st.TotalReviews = counts.Reviews
	st.TotalOrders = len(st.RecentOrders)
	for _, p := range st.RevenueChart {
		st.TotalRevenue += p.Revenue
	}
	return &st, nil
}

func (s *Service) Revenue(ctx context.Context, p models.Period) ([]models.DayPoint, error) {
	return s.orders.Revenue(ctx, p.Days())
}

func (s *Service) Orders(ctx context.Context, p models.Period) ([]models.DayPoint, error) {
	return s.orders.Orders(ctx, p.Days())
}

func (s *Service) Trends(ctx context.Context, p models.Period) ([]models.DayPoint, error) {
	return s.orders.Trends(ctx, p.Days())
}

// Categories returns every category with count, average price and the
// placeholder revenue.
func (s *Service) Categories(ctx context.Context) ([]models.CategoryStat, error) {
	return s.store.CategoryStats(ctx, 0)
}
