package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiters keeps one token bucket per client IP and forgets clients
// that have been idle for longer than limiterIdleTTL.
type ClientLimiters struct {
	mu        sync.Mutex
	buckets   map[string]*clientBucket
	r         rate.Limit
	b         int
	now       func() time.Time
	lastSweep time.Time
}

// NewClientLimiters creates an empty set of per-client buckets.
func NewClientLimiters(r rate.Limit, b int) *ClientLimiters {
	return &ClientLimiters{
		buckets: make(map[string]*clientBucket),
		r:       r,
		b:       b,
		now:     time.Now,
	}
}

// Reserve takes a token for ip. It reports whether the request may proceed
// and, if not, how long until a token is available.
func (l *ClientLimiters) Reserve(ip string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweepLocked(now)

	bucket, ok := l.buckets[ip]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(l.r, l.b)}
		l.buckets[ip] = bucket
	}
	bucket.lastSeen = now

	res := bucket.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, 0
	}
	if wait := res.DelayFrom(now); wait > 0 {
		res.CancelAt(now)
		return false, wait
	}
	return true, 0
}

// Len returns the number of tracked clients.
func (l *ClientLimiters) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *ClientLimiters) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < limiterIdleTTL {
		return
	}
	for ip, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) >= limiterIdleTTL {
			delete(l.buckets, ip)
		}
	}
	l.lastSweep = now
}

// RateLimiter is a middleware for IP-based rate limiting.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	return rateLimit(NewClientLimiters(r, b))
}

func rateLimit(limiters *ClientLimiters) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := limiters.Reserve(c.ClientIP())
		if !ok {
			if wait > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
