package web

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"livecounter-backend/internal/client"
	"livecounter-backend/internal/model"
	"livecounter-backend/internal/parse"
	"livecounter-backend/internal/view"
)

// Pages renders the counter pages. Data is always fetched through the
// typed client, never from the social API directly.
type Pages struct {
	client         *client.Client
	log            zerolog.Logger
	maxQueryLength int
}

// New creates the page handlers.
func New(c *client.Client, log zerolog.Logger, maxQueryLength int) *Pages {
	return &Pages{client: c, log: log, maxQueryLength: maxQueryLength}
}

// Register mounts the pages on r.
func (p *Pages) Register(r gin.IRoutes) {
	r.GET("/", p.Index)
	r.GET("/tiktok/profile", p.TiktokProfile)
	r.GET("/tiktok/video", p.TiktokVideo)
	r.GET("/instagram/profile", p.InstagramProfile)
	r.GET("/instagram/post", p.InstagramPost)
	r.GET("/youtube/channel", p.YoutubeChannel)
	r.GET("/youtube/video", p.YoutubeVideo)
	r.GET("/youtube/search/channel", p.YoutubeSearchChannel)
	r.GET("/youtube/search/video", p.YoutubeSearchVideo)
}

type field struct {
	Name  string
	Label string
	Value string
}

type counterView struct {
	Label string
	Value string
}

type panelView struct {
	Platform model.Platform
	Title    string
	Counters []counterView
}

type pageData struct {
	Title     string
	Path      string
	Fields    []field
	Queried   bool
	Error     string
	RetryURL  string
	Panels    []panelView
	Endpoints []model.ApiEndpoint
}

func (p *Pages) Index(c *gin.Context) {
	p.render(c, http.StatusOK, "index", &pageData{Title: "Home", Endpoints: model.Endpoints()})
}

func (p *Pages) TiktokProfile(c *gin.Context) {
	d := newPage(c, "TikTok Profile", field{Name: "username", Label: "Username"})
	if !d.Queried {
		p.render(c, http.StatusOK, "lookup", d)
		return
	}
	name, err := parse.Username(c.Query("username"))
	if err != nil {
		p.inputError(c, d, err)
		return
	}
	settle(p, c, d, p.client.TiktokProfile(visitor(c), name), single(view.TiktokProfile))
}

func (p *Pages) TiktokVideo(c *gin.Context) {
	d := newPage(c, "TikTok Video", field{Name: "url", Label: "Video URL or ID"})
	if !d.Queried {
		p.render(c, http.StatusOK, "lookup", d)
		return
	}
	ref, err := parse.TikTokVideo(c.Query("url"))
	if err != nil {
		p.inputError(c, d, err)
		return
	}
	settle(p, c, d, p.client.TiktokVideo(visitor(c), ref.VideoID), single(view.TiktokVideo))
}

func (p *Pages) InstagramProfile(c *gin.Context) {
	d := newPage(c, "Instagram Profile", field{Name: "username", Label: "Username"})
	if !d.Queried {
		p.render(c, http.StatusOK, "lookup", d)
		return
	}
	name, err := parse.Username(c.Query("username"))
	if err != nil {
		p.inputError(c, d, err)
		return
	}
	settle(p, c, d, p.client.InstagramProfile(visitor(c), name), single(view.InstagramProfile))
}

func (p *Pages) InstagramPost(c *gin.Context) {
	d := newPage(c, "Instagram Post", field{Name: "id", Label: "Post URL or shortcode"})
	if !d.Queried {
		p.render(c, http.StatusOK, "lookup", d)
		return
	}
	code, err := parse.InstagramShortcode(c.Query("id"))
	if err != nil {
		p.inputError(c, d, err)
		return
	}
	settle(p, c, d, p.client.InstagramPost(visitor(c), code), single(view.InstagramPost))
}

// YoutubeChannel accepts ?id= or ?username=; the username field also takes
// a channel URL.
func (p *Pages) YoutubeChannel(c *gin.Context) {
	d := newPage(c, "YouTube Channel",
		field{Name: "id", Label: "Channel ID"},
		field{Name: "username", Label: "Username or channel URL"})
	if !d.Queried {
		p.render(c, http.StatusOK, "lookup", d)
		return
	}

	var ref parse.ChannelRef
	var err error
	if id := c.Query("id"); strings.TrimSpace(id) != "" {
		ref.ID, err = parse.Identifier("id", id)
	} else {
		ref, err = parse.YoutubeChannel(c.Query("username"))
	}
	if err != nil {
		p.inputError(c, d, err)
		return
	}

	ctx := visitor(c)
	if ref.ID != "" {
		settle(p, c, d, p.client.YoutubeChannelByID(ctx, ref.ID), single(view.YoutubeChannel))
		return
	}
	settle(p, c, d, p.client.YoutubeChannelByUsername(ctx, ref.Username), single(view.YoutubeChannel))
}

func (p *Pages) YoutubeVideo(c *gin.Context) {
	d := newPage(c, "YouTube Video", field{Name: "id", Label: "Video URL or ID"})
	if !d.Queried {
		p.render(c, http.StatusOK, "lookup", d)
		return
	}
	id, err := parse.YoutubeVideoID(c.Query("id"))
	if err != nil {
		p.inputError(c, d, err)
		return
	}
	settle(p, c, d, p.client.YoutubeVideo(visitor(c), id), single(view.YoutubeVideo))
}

func (p *Pages) YoutubeSearchChannel(c *gin.Context) {
	d := newPage(c, "YouTube Channel Search", field{Name: "q", Label: "Search"})
	if !d.Queried {
		p.render(c, http.StatusOK, "lookup", d)
		return
	}
	q, err := parse.SearchQuery(c.Query("q"), p.maxQueryLength)
	if err != nil {
		p.inputError(c, d, err)
		return
	}
	settle(p, c, d, p.client.SearchYoutubeChannels(visitor(c), q), view.YoutubeChannelResults)
}

func (p *Pages) YoutubeSearchVideo(c *gin.Context) {
	d := newPage(c, "YouTube Video Search", field{Name: "q", Label: "Search"})
	if !d.Queried {
		p.render(c, http.StatusOK, "lookup", d)
		return
	}
	q, err := parse.SearchQuery(c.Query("q"), p.maxQueryLength)
	if err != nil {
		p.inputError(c, d, err)
		return
	}
	settle(p, c, d, p.client.SearchYoutubeVideos(visitor(c), q), view.YoutubeVideoResults)
}

// newPage prefills the form from the query string. The page counts as
// queried once any field is present and non-blank.
// visitor tags the lookup context with the page visitor's address.
func visitor(c *gin.Context) context.Context {
	return client.WithForwardedFor(c.Request.Context(), c.ClientIP())
}

func newPage(c *gin.Context, title string, fields ...field) *pageData {
	d := &pageData{Title: title, Path: c.FullPath(), Fields: fields}
	for i := range d.Fields {
		d.Fields[i].Value = c.Query(d.Fields[i].Name)
		if strings.TrimSpace(d.Fields[i].Value) != "" {
			d.Queried = true
		}
	}
	return d
}

func single[T any](build func(*T) model.PlatformStats) func(*T) []model.PlatformStats {
	return func(v *T) []model.PlatformStats {
		return []model.PlatformStats{build(v)}
	}
}

// settle renders a finished lookup: counters on success, an error panel
// with a retry link to the identical URL otherwise.
func settle[T any](p *Pages, c *gin.Context, d *pageData, resp model.ApiResponse[T], build func(*T) []model.PlatformStats) {
	if resp.Failed() {
		d.Error = resp.Error
		d.RetryURL = c.Request.URL.RequestURI()
		p.render(c, http.StatusOK, "lookup", d)
		return
	}
	for _, s := range build(resp.Data) {
		panel := panelView{Platform: s.Platform, Title: s.Title}
		for _, counter := range s.Counters {
			panel.Counters = append(panel.Counters, counterView{Label: counter.Label, Value: view.Render(counter)})
		}
		d.Panels = append(d.Panels, panel)
	}
	p.render(c, http.StatusOK, "lookup", d)
}

func (p *Pages) inputError(c *gin.Context, d *pageData, err error) {
	d.Error = err.Error()
	p.render(c, http.StatusBadRequest, "lookup", d)
}

func (p *Pages) render(c *gin.Context, status int, name string, data *pageData) {
	var buf bytes.Buffer
	if err := renderTemplate(&buf, name, data); err != nil {
		p.log.Error().Err(err).Str("template", name).Msg("template render failed")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
