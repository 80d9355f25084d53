package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"livecounter-backend/internal/client"
	"livecounter-backend/internal/model"
	"livecounter-backend/internal/parse"
	"livecounter-backend/internal/view"
)

type stats = []model.PlatformStats

// fetcher resolves one command-line argument to counter panels.
type fetcher func(ctx context.Context, c *client.Client, arg string) model.ApiResponse[stats]

var fetchers = map[string]fetcher{
	"tiktok-profile": func(ctx context.Context, c *client.Client, arg string) model.ApiResponse[stats] {
		name, err := parse.Username(arg)
		if err != nil {
			return model.Failure[stats](err.Error())
		}
		return collect(c.TiktokProfile(ctx, name), one(view.TiktokProfile))
	},
	"tiktok-video": func(ctx context.Context, c *client.Client, arg string) model.ApiResponse[stats] {
		ref, err := parse.TikTokVideo(arg)
		if err != nil {
			return model.Failure[stats](err.Error())
		}
		return collect(c.TiktokVideo(ctx, ref.VideoID), one(view.TiktokVideo))
	},
	"instagram-profile": func(ctx context.Context, c *client.Client, arg string) model.ApiResponse[stats] {
		name, err := parse.Username(arg)
		if err != nil {
			return model.Failure[stats](err.Error())
		}
		return collect(c.InstagramProfile(ctx, name), one(view.InstagramProfile))
	},
	"instagram-post": func(ctx context.Context, c *client.Client, arg string) model.ApiResponse[stats] {
		code, err := parse.InstagramShortcode(arg)
		if err != nil {
			return model.Failure[stats](err.Error())
		}
		return collect(c.InstagramPost(ctx, code), one(view.InstagramPost))
	},
	"youtube-channel": func(ctx context.Context, c *client.Client, arg string) model.ApiResponse[stats] {
		ref, err := parse.YoutubeChannel(arg)
		if err != nil {
			return model.Failure[stats](err.Error())
		}
		if ref.ID != "" {
			return collect(c.YoutubeChannelByID(ctx, ref.ID), one(view.YoutubeChannel))
		}
		return collect(c.YoutubeChannelByUsername(ctx, ref.Username), one(view.YoutubeChannel))
	},
	"youtube-video": func(ctx context.Context, c *client.Client, arg string) model.ApiResponse[stats] {
		id, err := parse.YoutubeVideoID(arg)
		if err != nil {
			return model.Failure[stats](err.Error())
		}
		return collect(c.YoutubeVideo(ctx, id), one(view.YoutubeVideo))
	},
	"youtube-search-channel": func(ctx context.Context, c *client.Client, arg string) model.ApiResponse[stats] {
		q, err := parse.SearchQuery(arg, parse.DefaultMaxQueryLength)
		if err != nil {
			return model.Failure[stats](err.Error())
		}
		return collect(c.SearchYoutubeChannels(ctx, q), view.YoutubeChannelResults)
	},
	"youtube-search-video": func(ctx context.Context, c *client.Client, arg string) model.ApiResponse[stats] {
		q, err := parse.SearchQuery(arg, parse.DefaultMaxQueryLength)
		if err != nil {
			return model.Failure[stats](err.Error())
		}
		return collect(c.SearchYoutubeVideos(ctx, q), view.YoutubeVideoResults)
	},
}

func resourceNames() []string {
	names := make([]string, 0, len(fetchers))
	for n := range fetchers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupFetcher(name string) (fetcher, error) {
	f, ok := fetchers[name]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q (one of: %s)", name, strings.Join(resourceNames(), ", "))
	}
	return f, nil
}

func one[T any](build func(*T) model.PlatformStats) func(*T) stats {
	return func(v *T) stats { return stats{build(v)} }
}

func collect[T any](resp model.ApiResponse[T], build func(*T) stats) model.ApiResponse[stats] {
	if resp.Failed() {
		return model.Failure[stats](resp.Error)
	}
	out := build(resp.Data)
	return model.Success(&out)
}

// printStats writes panels as indented label/value lines.
func printStats(w io.Writer, panels stats) {
	if len(panels) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}
	for _, p := range panels {
		fmt.Fprintf(w, "%s (%s)\n", p.Title, p.Platform)
		for _, c := range p.Counters {
			fmt.Fprintf(w, "  %-12s %s\n", c.Label+":", view.Render(c))
		}
	}
}
