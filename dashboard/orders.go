package dashboard

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"hugox-backend/models"
)

// OrderSource supplies the order figures of the dashboard. There is no
// order collection yet; RandomOrderSource stands in for it.
type OrderSource interface {
	Revenue(ctx context.Context, days int) ([]models.DayPoint, error)
	Orders(ctx context.Context, days int) ([]models.DayPoint, error)
	Trends(ctx context.Context, days int) ([]models.DayPoint, error)
	Recent(ctx context.Context, limit int) ([]models.OrderSummary, error)
}

// RandomOrderSource fabricates placeholder series. Safe for concurrent use.
type RandomOrderSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewRandomOrderSource(seed int64) *RandomOrderSource {
	return &RandomOrderSource{rnd: rand.New(rand.NewSource(seed)), now: time.Now}
}

// between returns a value in [lo, lo+n).
func (s *RandomOrderSource) between(lo, n int) int {
	return lo + s.rnd.Intn(n)
}

// series builds one point per day, oldest first, ending today.
func (s *RandomOrderSource) series(days int, fill func(p *models.DayPoint)) []models.DayPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().UTC().Truncate(24 * time.Hour)
	out := make([]models.DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		p := models.DayPoint{Date: today.AddDate(0, 0, -i).Format("2006-01-02")}
		fill(&p)
		out = append(out, p)
	}
	return out
}

func (s *RandomOrderSource) Revenue(_ context.Context, days int) ([]models.DayPoint, error) {
	return s.series(days, func(p *models.DayPoint) {
		p.Revenue = float64(s.between(100000, 1000000))
		p.Orders = s.between(10, 50)
	}), nil
}

func (s *RandomOrderSource) Orders(_ context.Context, days int) ([]models.DayPoint, error) {
	return s.series(days, func(p *models.DayPoint) {
		p.Orders = s.between(10, 50)
		p.Revenue = float64(p.Orders * s.between(50000, 50000))
	}), nil
}

func (s *RandomOrderSource) Trends(_ context.Context, days int) ([]models.DayPoint, error) {
	return s.series(days, func(p *models.DayPoint) {
		p.Revenue = float64(s.between(100000, 1000000))
		p.Orders = s.between(10, 50)
		p.Users = s.between(5, 20)
		p.Contacts = s.between(2, 10)
	}), nil
}

var sampleCustomers = []struct {
	name   string
	total  float64
	status string
}{
	{"Nguyễn Văn A", 1500000, "delivered"},
	{"Trần Thị B", 2300000, "shipped"},
	{"Lê Văn C", 800000, "pending"},
}

func (s *RandomOrderSource) Recent(_ context.Context, limit int) ([]models.OrderSummary, error) {
	now := s.now().UTC()
	out := make([]models.OrderSummary, 0, len(sampleCustomers))
	for i, c := range sampleCustomers {
		if i == limit {
			break
		}
		out = append(out, models.OrderSummary{
			ID:       strconv.Itoa(i + 1),
			Customer: c.name,
			Total:    c.total,
			Status:   c.status,
			Date:     now.AddDate(0, 0, -i),
		})
	}
	return out, nil
}
