package clinicsim

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-portal/pkg/httputil"
	"github.com/jwalitptl/clinic-portal/pkg/logger"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"
)

// RouterConfig tunes the simulator's middleware.
type RouterConfig struct {
	RateLimit rate.Limit
	RateBurst int
}

// NewRouter assembles the simulator engine: request logging, rate limiting,
// metrics, the clinic endpoints, and the health/metrics plumbing.
func NewRouter(h *Handler, m *metrics.Metrics, log *logger.Logger, cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	if log != nil {
		engine.Use(requestLogger(log.WithComponent("http")))
	}
	if cfg.RateLimit > 0 {
		engine.Use(rateLimiter(rate.NewLimiter(cfg.RateLimit, cfg.RateBurst)))
	}
	if m != nil {
		engine.Use(requestMetrics(m))
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.RegisterRoutes(engine.Group(""))
	return engine
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

func rateLimiter(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			httputil.RespondWithError(c, http.StatusTooManyRequests, "Too many requests.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func requestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(path, c.Request.Method, fmt.Sprintf("%d", c.Writer.Status())).Inc()
		m.HTTPLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
