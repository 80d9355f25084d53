package mw

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"livecounter-backend/internal/cache"
	"livecounter-backend/internal/metrics"
)

type cachedResponse struct {
	Status  int         `json:"status"`
	Headers http.Header `json:"headers"`
	Body    []byte      `json:"body"`
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheStatusHeader is set to HIT or MISS on cacheable requests.
const CacheStatusHeader = "X-Cache"

// Cache is a middleware caching successful GET responses keyed by request
// URI. Error responses are never stored, so a retry after a failure always
// reaches the handler. m may be nil.
func Cache(store cache.Store, duration time.Duration, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if raw, found := store.Get(c.Request.Context(), key); found {
			var cached cachedResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				if m != nil {
					m.CacheHits.Inc()
				}
				for k, v := range cached.Headers {
					c.Writer.Header()[k] = v
				}
				c.Writer.Header().Set(CacheStatusHeader, "HIT")
				c.Writer.WriteHeader(cached.Status)
				c.Writer.Write(cached.Body)
				c.Abort()
				return
			}
		}
		if m != nil {
			m.CacheMisses.Inc()
		}

		c.Writer.Header().Set(CacheStatusHeader, "MISS")
		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only cache successful responses
		if blw.Status() >= 200 && blw.Status() < 300 {
			headers := blw.Header().Clone()
			headers.Del(CacheStatusHeader)
			raw, err := json.Marshal(cachedResponse{
				Status:  blw.Status(),
				Headers: headers,
				Body:    blw.body.Bytes(),
			})
			if err == nil {
				store.Set(c.Request.Context(), key, raw, duration)
			}
		}
	}
}
