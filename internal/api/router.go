package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"livecounter-backend/internal/cache"
	"livecounter-backend/internal/mw"
)

// RouterOptions configures middleware around the handlers.
type RouterOptions struct {
	RateLimit rate.Limit
	RateBurst int
	// Cache is optional; a nil Cache disables response caching.
	Cache    cache.Store
	CacheTTL time.Duration
	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer
	// TrustedProxies may set the client IP through X-Forwarded-For.
	// Empty means loopback only, which covers the in-process pages.
	TrustedProxies []string
}

var loopbackProxies = []string{"127.0.0.1", "::1"}

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	proxies := opts.TrustedProxies
	if len(proxies) == 0 {
		proxies = loopbackProxies
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		h.log.Error().Err(err).Strs("trusted_proxies", proxies).Msg("invalid trusted proxies, falling back to loopback")
		_ = r.SetTrustedProxies(loopbackProxies)
	}
	r.Use(mw.Recovery(h.log), mw.RequestLogger(h.log))
	if h.metrics != nil {
		r.Use(mw.Metrics(h.metrics))
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	rateLimiter := mw.RateLimiter(opts.RateLimit, opts.RateBurst)
	chain := []gin.HandlerFunc{}
	if opts.Cache != nil {
		chain = append(chain, mw.Cache(opts.Cache, opts.CacheTTL, h.metrics))
	}

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		for _, route := range proxyRoutes {
			handler := append(append([]gin.HandlerFunc{}, chain...), h.Proxy(route))
			api.GET(route.route, handler...)
			if !route.inQuery {
				// A blank path parameter is a 400, not a 404.
				api.GET(route.emptyParamRoute(), h.Proxy(route))
			}
		}

		api.GET("/endpoints", GetEndpoints)
		if h.store != nil {
			api.GET("/lookups/recent", h.GetRecentLookups)
			api.GET("/lookups/stats", h.GetLookupStats)
		}
	}

	r.GET("/health/live", h.Live)
	r.GET("/health/ready", h.Ready)
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	return r
}
