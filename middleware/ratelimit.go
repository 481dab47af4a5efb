package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"hugox-backend/logger"
	"hugox-backend/models"
)

// PublicPrefix routes get the lenient limiter.
const PublicPrefix = "/api/public"

// RateLimit limits each client IP per window. /health is never limited;
// PublicPrefix routes use publicMax instead of max.
func RateLimit(window time.Duration, max, publicMax int64) gin.HandlerFunc {
	store := memory.NewStore()
	strict := newLimiter(store, window, max, "api")
	lenient := newLimiter(store, window, publicMax, "public")

	return func(c *gin.Context) {
		switch path := c.Request.URL.Path; {
		case path == "/health" || c.Request.Method == http.MethodOptions:
			c.Next()
		case strings.HasPrefix(path, PublicPrefix):
			lenient(c)
		default:
			strict(c)
		}
	}
}

func newLimiter(store limiter.Store, window time.Duration, max int64, bucket string) gin.HandlerFunc {
	l := limiter.New(store, limiter.Rate{Period: window, Limit: max})
	return mgin.NewMiddleware(l,
		mgin.WithKeyGetter(func(c *gin.Context) string {
			return bucket + ":" + c.ClientIP()
		}),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.Envelope{
				Message: "Too many requests from this IP, please try again later.",
			})
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.WithRequest(c).WithError(err).Error("rate limiter failed")
			c.Next()
		}),
	)
}
