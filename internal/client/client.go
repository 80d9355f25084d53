package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"livecounter-backend/internal/model"
)

// Doer is the transport the client sends requests through.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type forwardedForKey struct{}

// WithForwardedFor returns a context whose requests carry ip in
// X-Forwarded-For, so the proxy rate-limits the original visitor rather
// than the process making the call.
func WithForwardedFor(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, forwardedForKey{}, ip)
}

// Client calls the proxy routes and resolves every call to an ApiResponse.
// Its methods never return errors; failures land in ApiResponse.Error.
type Client struct {
	baseURL  string
	doer     Doer
	validate *validator.Validate
}

// New creates a client for the proxy mounted at baseURL (for example
// http://127.0.0.1:8080/api). A nil doer uses http.DefaultClient.
func New(baseURL string, doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		doer:     doer,
		validate: validator.New(),
	}
}

func (c *Client) InstagramProfile(ctx context.Context, username string) model.ApiResponse[model.InstagramProfile] {
	return fetch[model.InstagramProfile](ctx, c, "/instagram/profile/"+url.PathEscape(username))
}

func (c *Client) InstagramPost(ctx context.Context, postID string) model.ApiResponse[model.InstagramPost] {
	return fetch[model.InstagramPost](ctx, c, "/instagram/post/"+url.PathEscape(postID))
}

func (c *Client) TiktokProfile(ctx context.Context, username string) model.ApiResponse[model.TiktokProfile] {
	return fetch[model.TiktokProfile](ctx, c, "/tiktok/profile/"+url.PathEscape(username))
}

// TiktokVideo looks a video up by id alone; see parse.TikTokVideo for
// turning a share URL into an id.
func (c *Client) TiktokVideo(ctx context.Context, videoID string) model.ApiResponse[model.TiktokVideo] {
	return fetch[model.TiktokVideo](ctx, c, "/tiktok/video/"+url.PathEscape(videoID))
}

func (c *Client) YoutubeChannelByID(ctx context.Context, channelID string) model.ApiResponse[model.YoutubeChannel] {
	return fetch[model.YoutubeChannel](ctx, c, "/youtube/channel/id/"+url.PathEscape(channelID))
}

func (c *Client) YoutubeChannelByUsername(ctx context.Context, username string) model.ApiResponse[model.YoutubeChannel] {
	return fetch[model.YoutubeChannel](ctx, c, "/youtube/channel/username/"+url.PathEscape(username))
}

func (c *Client) YoutubeVideo(ctx context.Context, videoID string) model.ApiResponse[model.YoutubeVideo] {
	return fetch[model.YoutubeVideo](ctx, c, "/youtube/video/"+url.PathEscape(videoID))
}

func (c *Client) SearchYoutubeChannels(ctx context.Context, query string) model.ApiResponse[[]model.YoutubeChannelSearchResult] {
	return fetch[[]model.YoutubeChannelSearchResult](ctx, c, "/youtube/search/channel?q="+url.QueryEscape(query))
}

func (c *Client) SearchYoutubeVideos(ctx context.Context, query string) model.ApiResponse[[]model.YoutubeSearchVideoResult] {
	return fetch[[]model.YoutubeSearchVideoResult](ctx, c, "/youtube/search/video?q="+url.QueryEscape(query))
}

func fetch[T any](ctx context.Context, c *Client, path string) model.ApiResponse[T] {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return model.Failure[T](err.Error())
	}
	req.Header.Set("accept", "application/json")
	if ip, _ := ctx.Value(forwardedForKey{}).(string); ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return model.Failure[T](err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Failure[T](fmt.Sprintf("API Error: %d %s", resp.StatusCode, statusText(resp)))
	}

	data, err := decode[T](resp.Body)
	if err != nil {
		return model.Failure[T](err.Error())
	}
	if err := c.check(data); err != nil {
		return model.Failure[T](err.Error())
	}
	return model.Success(data)
}

func decode[T any](r io.Reader) (*T, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid response payload: %w", err)
	}
	if string(raw) == "null" {
		return nil, errors.New("invalid response payload: empty body")
	}
	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid response payload: %w", err)
	}
	return &data, nil
}

// check runs the validate tags on a struct payload or on each element of a
// slice payload.
func (c *Client) check(data any) error {
	v := reflect.Indirect(reflect.ValueOf(data))
	switch v.Kind() {
	case reflect.Struct:
		if err := c.validate.Struct(v.Interface()); err != nil {
			return fmt.Errorf("invalid response payload: %w", err)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if err := c.check(v.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
