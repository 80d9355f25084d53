package parse

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxIdentifierLen bounds usernames, ids and shortcodes.
	MaxIdentifierLen = 128
	// DefaultMaxQueryLength is the search query bound when none is configured.
	DefaultMaxQueryLength = 100
)

var (
	identRe      = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	spaceRe      = regexp.MustCompile(`\s+`)
	tiktokPathRe = regexp.MustCompile(`^/@([A-Za-z0-9._-]+)/video/(\d+)`)
	digitsRe     = regexp.MustCompile(`^\d+$`)
	ytVideoIDRe  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	ytChannelRe  = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)
)

// Error is returned for input that must not be forwarded upstream.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &Error{Field: field, Reason: reason}
}

// Identifier validates an opaque id, shortcode or handle.
func Identifier(field, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", invalid(field, "is required")
	}
	if len(s) > MaxIdentifierLen {
		return "", invalid(field, fmt.Sprintf("must be at most %d characters", MaxIdentifierLen))
	}
	if !identRe.MatchString(s) {
		return "", invalid(field, "contains invalid characters")
	}
	return s, nil
}

// Username is Identifier with a leading "@" removed.
func Username(raw string) (string, error) {
	return Identifier("username", strings.TrimPrefix(strings.TrimSpace(raw), "@"))
}

// SearchQuery trims and collapses whitespace and rejects control characters
// and queries longer than maxLen runes.
func SearchQuery(raw string, maxLen int) (string, error) {
	s := strings.TrimSpace(spaceRe.ReplaceAllString(raw, " "))
	if s == "" {
		return "", invalid("query", "is required")
	}
	if !utf8.ValidString(s) {
		return "", invalid("query", "is not valid UTF-8")
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", invalid("query", "contains control characters")
		}
	}
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		return "", invalid("query", fmt.Sprintf("must be at most %d characters", maxLen))
	}
	return s, nil
}

// TikTokVideoRef is what can be recovered from a TikTok video link.
// Username is empty when only a bare id was given.
type TikTokVideoRef struct {
	Username string
	VideoID  string
}

// TikTokVideo accepts a numeric video id or a URL of the form
// https://www.tiktok.com/@user/video/123.
func TikTokVideo(raw string) (TikTokVideoRef, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return TikTokVideoRef{}, invalid("video", "is required")
	}
	if digitsRe.MatchString(s) {
		return TikTokVideoRef{VideoID: s}, nil
	}
	u, ok := parseURL(s, "tiktok.com")
	if !ok {
		return TikTokVideoRef{}, invalid("video", "must be a TikTok video URL or numeric id")
	}
	m := tiktokPathRe.FindStringSubmatch(u.Path)
	if m == nil {
		return TikTokVideoRef{}, invalid("video", "URL does not point to a video")
	}
	return TikTokVideoRef{Username: m[1], VideoID: m[2]}, nil
}

// YoutubeVideoID accepts an 11-character id or a watch, youtu.be or shorts URL.
func YoutubeVideoID(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", invalid("video", "is required")
	}
	if ytVideoIDRe.MatchString(s) {
		return s, nil
	}
	var id string
	if u, ok := parseURL(s, "youtube.com"); ok {
		switch {
		case u.Query().Get("v") != "":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/shorts/"), strings.HasPrefix(u.Path, "/embed/"), strings.HasPrefix(u.Path, "/live/"):
			id = pathSegment(u.Path, 1)
		}
	} else if u, ok := parseURL(s, "youtu.be"); ok {
		id = pathSegment(u.Path, 0)
	}
	if !ytVideoIDRe.MatchString(id) {
		return "", invalid("video", "must be a YouTube video URL or 11-character id")
	}
	return id, nil
}

// InstagramShortcode accepts a shortcode or a /p/, /reel/ or /tv/ URL.
func InstagramShortcode(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if u, ok := parseURL(s, "instagram.com"); ok {
		switch pathSegment(u.Path, 0) {
		case "p", "reel", "reels", "tv":
			s = pathSegment(u.Path, 1)
		default:
			return "", invalid("post", "URL does not point to a post")
		}
	}
	return Identifier("post", s)
}

// ChannelRef is either a channel id or a handle, never both.
type ChannelRef struct {
	ID       string
	Username string
}

// YoutubeChannel accepts a UC... channel id, an @handle, a bare handle, or a
// youtube.com/channel/<id> or youtube.com/@<handle> URL.
func YoutubeChannel(raw string) (ChannelRef, error) {
	s := strings.TrimSpace(raw)
	if u, ok := parseURL(s, "youtube.com"); ok {
		first := pathSegment(u.Path, 0)
		switch {
		case first == "channel":
			s = pathSegment(u.Path, 1)
		case strings.HasPrefix(first, "@"):
			s = first
		case first == "c" || first == "user":
			s = "@" + pathSegment(u.Path, 1)
		default:
			return ChannelRef{}, invalid("channel", "URL does not point to a channel")
		}
	}
	if ytChannelRe.MatchString(s) {
		return ChannelRef{ID: s}, nil
	}
	name, err := Username(s)
	if err != nil {
		return ChannelRef{}, err
	}
	return ChannelRef{Username: name}, nil
}

// parseURL parses s as an http(s) URL whose host is domain or a subdomain of it.
func parseURL(s, domain string) (*url.URL, bool) {
	if !strings.Contains(s, "://") {
		if !strings.Contains(s, domain+"/") {
			return nil, false
		}
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, false
	}
	host := strings.ToLower(u.Hostname())
	if host != domain && !strings.HasSuffix(host, "."+domain) {
		return nil, false
	}
	return u, true
}

func pathSegment(p string, i int) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	if i < len(parts) {
		return parts[i]
	}
	return ""
}
