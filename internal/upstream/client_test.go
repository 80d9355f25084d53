package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livecounter-backend/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.UpstreamConfig{BaseURL: baseURL, APIKey: "secret-key"}, zerolog.Nop())
}

func TestGet_ForwardsHeadersAndPath(t *testing.T) {
	var gotPath, gotQuery, gotKey, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("x-api-key")
		gotAccept = r.Header.Get("accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"uniqueId":"chris"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	body, err := c.Get(context.Background(), "/youtube/search/channel", url.Values{"query": {"lofi hip hop"}})
	require.NoError(t, err)

	assert.JSONEq(t, `{"user":{"uniqueId":"chris"}}`, string(body))
	assert.Equal(t, "/youtube/search/channel", gotPath)
	assert.Equal(t, "query=lofi+hip+hop", gotQuery)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "application/json", gotAccept)
}

func TestGet_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message":"down"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Get(context.Background(), "/tiktok/@chris", nil)
	require.Error(t, err)

	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusServiceUnavailable, serr.StatusCode)
	assert.Equal(t, "Service Unavailable", serr.StatusText)
	assert.Equal(t, "API Error: 503 Service Unavailable", serr.Error())
}

func TestGet_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Get(context.Background(), "/tiktok/@chris", nil)
	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "decode body", terr.Op)
}

func TestGet_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	_, err := newTestClient(baseURL).Get(context.Background(), "/tiktok/@chris", url.Values{"k": {"v"}})
	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "request", terr.Op)
	assert.NotContains(t, err.Error(), baseURL)
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestGet_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient(config.UpstreamConfig{BaseURL: server.URL, APIKey: "k", Timeout: 20 * time.Millisecond}, zerolog.Nop())
	_, err := c.Get(context.Background(), "/youtube/video/x", nil)
	var terr *TransportError
	assert.True(t, errors.As(err, &terr))
}

func TestStatusText_FallsBackToCanonical(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusNotFound, Status: "404"}
	assert.Equal(t, "Not Found", statusText(resp))

	resp = &http.Response{StatusCode: 429, Status: "429 Slow Down"}
	assert.Equal(t, "Slow Down", statusText(resp))
}
