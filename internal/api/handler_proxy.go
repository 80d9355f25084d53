package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"livecounter-backend/internal/model"
	"livecounter-backend/internal/parse"
	"livecounter-backend/internal/upstream"
)

const (
	internalError = "Internal server error"
	maxAuditParam = 128
)

// proxyRoute describes one forwarded resource.
type proxyRoute struct {
	resource model.Resource
	// route is the gin pattern relative to /api.
	route string
	// param is the path parameter name, or the query key when inQuery is set.
	param   string
	inQuery bool
	missing string
	clean   func(raw string, maxQueryLength int) (string, error)
	target  func(v string) (string, url.Values)
}

func username(raw string, _ int) (string, error) { return parse.Username(raw) }

func identifier(field string) func(string, int) (string, error) {
	return func(raw string, _ int) (string, error) { return parse.Identifier(field, raw) }
}

func query(raw string, maxLen int) (string, error) { return parse.SearchQuery(raw, maxLen) }

func pathTarget(prefix string) func(string) (string, url.Values) {
	return func(v string) (string, url.Values) { return prefix + url.PathEscape(v), nil }
}

func searchTarget(path string) func(string) (string, url.Values) {
	return func(v string) (string, url.Values) { return path, url.Values{"query": {v}} }
}

var proxyRoutes = []proxyRoute{
	{
		resource: model.ResourceInstagramProfile,
		route:    "/instagram/profile/:username",
		param:    "username",
		missing:  "Username is required",
		clean:    username,
		target:   pathTarget("/instagram/@"),
	},
	{
		resource: model.ResourceInstagramPost,
		route:    "/instagram/post/:postId",
		param:    "postId",
		missing:  "Post ID parameter is required",
		clean:    identifier("postId"),
		target:   pathTarget("/instagram/post/"),
	},
	{
		resource: model.ResourceTiktokProfile,
		route:    "/tiktok/profile/:username",
		param:    "username",
		missing:  "Username is required",
		clean:    username,
		target:   pathTarget("/tiktok/@"),
	},
	{
		resource: model.ResourceTiktokVideo,
		route:    "/tiktok/video/:videoId",
		param:    "videoId",
		missing:  "Video ID parameter is required",
		clean:    identifier("videoId"),
		target:   pathTarget("/tiktok/video/"),
	},
	{
		resource: model.ResourceYoutubeChannelByID,
		route:    "/youtube/channel/id/:channelId",
		param:    "channelId",
		missing:  "Channel ID parameter is required",
		clean:    identifier("channelId"),
		target:   pathTarget("/youtube/channel/id/"),
	},
	{
		resource: model.ResourceYoutubeChannelByName,
		route:    "/youtube/channel/username/:username",
		param:    "username",
		missing:  "Username parameter is required",
		clean:    username,
		target:   pathTarget("/youtube/channel/username/"),
	},
	{
		resource: model.ResourceYoutubeVideo,
		route:    "/youtube/video/:videoId",
		param:    "videoId",
		missing:  "Video ID parameter is required",
		clean:    identifier("videoId"),
		target:   pathTarget("/youtube/video/"),
	},
	{
		resource: model.ResourceYoutubeSearchChannel,
		route:    "/youtube/search/channel",
		param:    "q",
		inQuery:  true,
		missing:  "Query parameter is required",
		clean:    query,
		target:   searchTarget("/youtube/search/channel"),
	},
	{
		resource: model.ResourceYoutubeSearchVideo,
		route:    "/youtube/search/video",
		param:    "q",
		inQuery:  true,
		missing:  "Query parameter is required",
		clean:    query,
		target:   searchTarget("/youtube/search/video"),
	},
}

// emptyParamRoute is the pattern matched when a path parameter is blank,
// e.g. /tiktok/profile/ for /tiktok/profile/:username.
func (p proxyRoute) emptyParamRoute() string {
	return strings.TrimSuffix(p.route, ":"+p.param)
}

// Proxy returns the handler forwarding route's resource to the social API.
func (h *Handler) Proxy(route proxyRoute) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		raw := c.Param(route.param)
		if route.inQuery {
			raw = c.Query(route.param)
		}

		if strings.TrimSpace(raw) == "" {
			h.reject(c, route, raw, &upstream.ValidationError{Param: route.param, Message: route.missing}, start)
			return
		}
		value, err := route.clean(raw, h.maxQueryLength)
		if err != nil {
			h.reject(c, route, raw, &upstream.ValidationError{Param: route.param, Message: err.Error()}, start)
			return
		}

		path, q := route.target(value)
		body, err := h.upstream.Get(c.Request.Context(), path, q)
		elapsed := time.Since(start)
		if h.metrics != nil {
			h.metrics.UpstreamDuration.WithLabelValues(string(route.resource)).Observe(elapsed.Seconds())
		}

		var statusErr *upstream.StatusError
		switch {
		case err == nil:
			h.finish(route, value, http.StatusOK, model.OutcomeSuccess, elapsed)
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		case errors.As(err, &statusErr):
			h.log.Warn().
				Str("resource", string(route.resource)).
				Str("upstream_path", path).
				Int("status", statusErr.StatusCode).
				Msg("upstream returned an error status")
			h.finish(route, value, statusErr.StatusCode, model.OutcomeUpstreamError, elapsed)
			c.AbortWithStatusJSON(statusErr.StatusCode, gin.H{"error": statusErr.Error()})
		default:
			h.log.Error().
				Err(err).
				Str("resource", string(route.resource)).
				Str("upstream_path", path).
				Msg("upstream request failed")
			h.finish(route, value, http.StatusInternalServerError, model.OutcomeTransportError, elapsed)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": internalError})
		}
	}
}

func (h *Handler) reject(c *gin.Context, route proxyRoute, raw string, verr *upstream.ValidationError, start time.Time) {
	h.finish(route, raw, http.StatusBadRequest, model.OutcomeValidationError, time.Since(start))
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
}

// finish records metrics and queues the audit record.
func (h *Handler) finish(route proxyRoute, param string, status int, outcome model.Outcome, elapsed time.Duration) {
	if h.metrics != nil {
		h.metrics.UpstreamRequests.WithLabelValues(string(route.resource), string(outcome)).Inc()
	}
	if h.audit == nil {
		return
	}
	if r := []rune(param); len(r) > maxAuditParam {
		param = string(r[:maxAuditParam])
	}
	h.audit.Dispatch(model.Lookup{
		Resource:  route.resource,
		Param:     param,
		Status:    status,
		Outcome:   outcome,
		LatencyMS: elapsed.Milliseconds(),
		CreatedAt: time.Now().UTC(),
	})
}
