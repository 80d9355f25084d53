package web

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"livecounter-backend/internal/client"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProxy struct {
	*httptest.Server
	calls   int32
	lastURI atomic.Value
}

func newFakeProxy(t *testing.T, status int, body string) *fakeProxy {
	f := &fakeProxy{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		f.lastURI.Store(r.URL.RequestURI())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)
	return f
}

func newPagesRouter(proxyURL string) *gin.Engine {
	r := gin.New()
	New(client.New(proxyURL+"/api", nil), zerolog.Nop(), 100).Register(r)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestIndex_ListsEndpoints(t *testing.T) {
	w := get(newPagesRouter("http://unused"), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TikTok Profile")
	assert.Contains(t, w.Body.String(), `href="/youtube/search/video"`)
}

func TestTiktokProfilePage(t *testing.T) {
	proxy := newFakeProxy(t, http.StatusOK, `{"user":{"uniqueId":"chris"},"statsV2":{"followerCount":12345}}`)

	w := get(newPagesRouter(proxy.URL), "/tiktok/profile?username=%40chris")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "@chris")
	assert.Contains(t, body, `<dt>Followers</dt><dd class="counter">12.3K</dd>`)
	assert.Contains(t, body, `<dt>Following</dt><dd class="counter">n/a</dd>`)
	assert.NotContains(t, body, "error-panel")
	assert.Equal(t, "/api/tiktok/profile/chris", proxy.lastURI.Load())
}

func TestLookupPage_EmptyFormDoesNotFetch(t *testing.T) {
	proxy := newFakeProxy(t, http.StatusOK, `{}`)

	w := get(newPagesRouter(proxy.URL), "/instagram/profile")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="username"`)
	assert.NotContains(t, w.Body.String(), "error-panel")
	assert.Equal(t, int32(0), atomic.LoadInt32(&proxy.calls))
}

func TestLookupPage_InvalidInput(t *testing.T) {
	proxy := newFakeProxy(t, http.StatusOK, `{}`)

	w := get(newPagesRouter(proxy.URL), "/tiktok/video?url=https%3A%2F%2Fexample.com%2Fvideo")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error-panel")
	assert.NotContains(t, w.Body.String(), "Try again")
	assert.Equal(t, int32(0), atomic.LoadInt32(&proxy.calls))
}

func TestLookupPage_ErrorPanelWithRetry(t *testing.T) {
	proxy := newFakeProxy(t, http.StatusNotFound, `{"error":"API Error: 404 Not Found"}`)

	w := get(newPagesRouter(proxy.URL), "/instagram/post?id=unknown")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "error-panel")
	assert.Contains(t, body, "API Error: 404 Not Found")
	assert.Contains(t, body, `<a class="retry" href="/instagram/post?id=unknown">Try again</a>`)
	assert.NotContains(t, body, "counter-panel")
}

func TestTiktokVideoPage_AcceptsURL(t *testing.T) {
	proxy := newFakeProxy(t, http.StatusOK, `{"id":"7301","playCount":1500,"createTime":1700000000}`)

	w := get(newPagesRouter(proxy.URL), "/tiktok/video?url=https%3A%2F%2Fwww.tiktok.com%2F%40chris%2Fvideo%2F7301")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/tiktok/video/7301", proxy.lastURI.Load())
	assert.Contains(t, w.Body.String(), `<dt>Views</dt><dd class="counter">1.5K</dd>`)
	assert.Contains(t, w.Body.String(), `<dt>Posted</dt><dd class="counter">Nov 14, 2023</dd>`)
}

func TestYoutubeChannelPage(t *testing.T) {
	proxy := newFakeProxy(t, http.StatusOK, `{"name":"MrBeast","subscriberCount":"300000000"}`)
	r := newPagesRouter(proxy.URL)

	w := get(r, "/youtube/channel?username=https%3A%2F%2Fwww.youtube.com%2F%40MrBeast")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/youtube/channel/username/MrBeast", proxy.lastURI.Load())
	assert.Contains(t, w.Body.String(), "300.0M")

	get(r, "/youtube/channel?id=UCX6OQ3DkcsbYNE6H8uQQuVA")
	assert.Equal(t, "/api/youtube/channel/id/UCX6OQ3DkcsbYNE6H8uQQuVA", proxy.lastURI.Load())
}

func TestSearchPage_NoResults(t *testing.T) {
	proxy := newFakeProxy(t, http.StatusOK, `[]`)

	w := get(newPagesRouter(proxy.URL), "/youtube/search/video?q=zzzz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No results.")
	assert.Equal(t, "/api/youtube/search/video?q=zzzz", proxy.lastURI.Load())
}
