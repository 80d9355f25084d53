package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"livecounter-backend/config"
)

// maxBodyBytes caps how much of an upstream body is buffered.
const maxBodyBytes = 8 << 20

// Client forwards GET requests to the social API with the service credential.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates an upstream client. An invalid proxy URL is logged and
// ignored.
func NewClient(cfg config.UpstreamConfig, log zerolog.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Warn().Err(err).Msg("invalid upstream proxy URL, not using a proxy")
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		log: log,
	}
}

// Get issues GET <base><path>?<query> and returns the raw JSON body of a 2xx
// response. Non-2xx answers yield *StatusError; everything else that goes
// wrong yields *TransportError.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "request", Err: redact(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &TransportError{Op: "read body", Err: err}
	}
	if len(body) > maxBodyBytes {
		return nil, &TransportError{Op: "read body", Err: fmt.Errorf("body exceeds %d bytes", maxBodyBytes)}
	}
	if !json.Valid(body) {
		return nil, &TransportError{Op: "decode body", Err: errors.New("response is not valid JSON")}
	}

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration_ms", time.Since(start)).
		Msg("upstream request")
	return body, nil
}

// redact drops the request URL from *url.Error so query strings never
// reach logs or response bodies.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
