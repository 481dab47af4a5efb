package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PriceStats is the price summary for filter sliders.
type PriceStats struct {
	MinPrice float64 `json:"minPrice" bson:"minPrice"`
	MaxPrice float64 `json:"maxPrice" bson:"maxPrice"`
	AvgPrice float64 `json:"avgPrice" bson:"avgPrice"`
}

// PriceRange is one labelled bucket of the price filter.
type PriceRange struct {
	Label string   `json:"label"`
	Min   float64  `json:"min"`
	Max   *float64 `json:"max"`
	Count int64    `json:"count"`
}

// Facet is a value with its frequency (brand, tag).
type Facet struct {
	Name  string `json:"name" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// DayPoint is one day of a dashboard series.
type DayPoint struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
	Users    int     `json:"users,omitempty"`
	Contacts int     `json:"contacts,omitempty"`
}

// OrderSummary is a row of the recent orders widget.
type OrderSummary struct {
	ID       string    `json:"id"`
	Customer string    `json:"customer"`
	Total    float64   `json:"total"`
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
}

// TopProduct is a product ranked by number of reviews.
type TopProduct struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	Name          string             `json:"name" bson:"name"`
	Images        []string           `json:"images" bson:"images"`
	Price         float64            `json:"price" bson:"price"`
	ReviewCount   int64              `json:"reviewCount" bson:"reviewCount"`
	AverageRating float64            `json:"averageRating" bson:"averageRating"`
}

// CategoryStat groups products by category name.
type CategoryStat struct {
	Category     string  `json:"category" bson:"category"`
	Count        int64   `json:"count" bson:"count"`
	Revenue      float64 `json:"revenue" bson:"revenue"`
	AveragePrice float64 `json:"averagePrice,omitempty" bson:"averagePrice,omitempty"`
}

// RecentContact is the projection used by the dashboard.
type RecentContact struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Subject   string             `json:"subject" bson:"subject"`
	Status    ContactStatus      `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Counts holds the collection totals.
type Counts struct {
	Products int64 `json:"totalProducts"`
	Users    int64 `json:"totalUsers"`
	Contacts int64 `json:"totalContacts"`
	News     int64 `json:"totalNews"`
	Reviews  int64 `json:"totalReviews"`
}

// DashboardStats is the payload of GET /api/admin/dashboard/stats.
type DashboardStats struct {
	TotalProducts  int64           `json:"totalProducts"`
	TotalOrders    int             `json:"totalOrders"`
	TotalRevenue   float64         `json:"totalRevenue"`
	TotalUsers     int64           `json:"totalUsers"`
	TotalContacts  int64           `json:"totalContacts"`
	TotalNews      int64           `json:"totalNews"`
	TotalReviews   int64           `json:"totalReviews"`
	RecentOrders   []OrderSummary  `json:"recentOrders"`
	RecentContacts []RecentContact `json:"recentContacts"`
	TopProducts    []TopProduct    `json:"topProducts"`
	RevenueChart   []DayPoint      `json:"revenueChart"`
	CategoryStats  []CategoryStat  `json:"categoryStats"`
}

// Period is the window of a dashboard chart.
type Period string

const (
	Period7d  Period = "7d"
	Period30d Period = "30d"
	Period90d Period = "90d"
	Period1y  Period = "1y"
)

var Periods = []Period{Period7d, Period30d, Period90d, Period1y}

// Days returns the number of days covered by p.
func (p Period) Days() int {
	switch p {
	case Period7d:
		return 7
	case Period90d:
		return 90
	case Period1y:
		return 365
	}
	return 30
}
