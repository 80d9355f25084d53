package api

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"livecounter-backend/internal/metrics"
	"livecounter-backend/internal/model"
	"livecounter-backend/internal/store"
)

// Forwarder sends a GET to the social API and returns the raw JSON body.
type Forwarder interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
}

// Dispatcher accepts lookup audit records without blocking.
type Dispatcher interface {
	Dispatch(l model.Lookup) bool
}

// Pinger is a dependency whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	upstream       Forwarder
	store          store.Store
	audit          Dispatcher
	redis          Pinger
	metrics        *metrics.Metrics
	log            zerolog.Logger
	maxQueryLength int
	startAt        time.Time
}

// Deps groups the collaborators of Handler. Store, Audit, Redis and Metrics
// are optional.
type Deps struct {
	Upstream       Forwarder
	Store          store.Store
	Audit          Dispatcher
	Redis          Pinger
	Metrics        *metrics.Metrics
	Log            zerolog.Logger
	MaxQueryLength int
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	return &Handler{
		upstream:       d.Upstream,
		store:          d.Store,
		audit:          d.Audit,
		redis:          d.Redis,
		metrics:        d.Metrics,
		log:            d.Log,
		maxQueryLength: d.MaxQueryLength,
		startAt:        time.Now(),
	}
}
