// Package view maps lookup payloads to labelled counters. A missing payload
// or field yields a counter with no value, which renders as format.NotAvailable.
package view

import (
	"livecounter-backend/internal/format"
	"livecounter-backend/internal/model"
)

// Render formats one counter for display.
func Render(c model.CounterDisplay) string {
	switch c.Format {
	case model.FormatNumber:
		return format.Count(c.Value)
	case model.FormatDate:
		return format.Date(c.Value)
	default:
		return format.DisplayValue(c.Value)
	}
}

func number(label string, v any) model.CounterDisplay {
	return model.CounterDisplay{Label: label, Value: v, Format: model.FormatNumber}
}

func text(label string, v any) model.CounterDisplay {
	return model.CounterDisplay{Label: label, Value: v, Format: model.FormatText}
}

func date(label string, v any) model.CounterDisplay {
	return model.CounterDisplay{Label: label, Value: v, Format: model.FormatDate}
}

// title returns the first non-empty candidate, or NotAvailable.
func title(candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c
		}
	}
	return format.NotAvailable
}

func handle(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	h := "@" + *s
	return &h
}

func TiktokProfile(p *model.TiktokProfile) model.PlatformStats {
	if p == nil {
		p = &model.TiktokProfile{}
	}
	var nickname, uniqueID *string
	var verified *bool
	if p.User != nil {
		nickname, uniqueID, verified = p.User.Nickname, p.User.UniqueID, p.User.Verified
	}
	return model.PlatformStats{
		Platform: model.PlatformTiktok,
		Title:    title(nickname, handle(uniqueID)),
		Counters: []model.CounterDisplay{
			number("Followers", p.Followers()),
			number("Following", p.Following()),
			number("Likes", p.Hearts()),
			number("Videos", p.Videos()),
			text("Verified", verified),
		},
	}
}

func TiktokVideo(v *model.TiktokVideo) model.PlatformStats {
	if v == nil {
		v = &model.TiktokVideo{}
	}
	return model.PlatformStats{
		Platform: model.PlatformTiktok,
		Title:    title(v.Description, v.ID),
		Counters: []model.CounterDisplay{
			number("Views", v.PlayCount),
			number("Likes", v.LikeCount),
			number("Comments", v.CommentCount),
			number("Shares", v.ShareCount),
			date("Posted", v.CreateTime),
		},
	}
}

func InstagramProfile(p *model.InstagramProfile) model.PlatformStats {
	if p == nil {
		p = &model.InstagramProfile{}
	}
	counts := p.Counts
	if counts == nil {
		counts = &model.InstagramCounts{}
	}
	return model.PlatformStats{
		Platform: model.PlatformInstagram,
		Title:    title(handle(p.Username)),
		Counters: []model.CounterDisplay{
			number("Followers", counts.Followers),
			number("Following", counts.Following),
			number("Posts", counts.Posts),
			text("Verified", p.IsVerified),
			text("Category", p.BusinessCategoryName),
		},
	}
}

func InstagramPost(p *model.InstagramPost) model.PlatformStats {
	if p == nil {
		p = &model.InstagramPost{}
	}
	return model.PlatformStats{
		Platform: model.PlatformInstagram,
		Title:    title(p.Shortcode, p.ID),
		Counters: []model.CounterDisplay{
			number("Likes", p.LikesCount),
			number("Comments", p.CommentsCount),
			text("Caption", p.Caption),
		},
	}
}

func YoutubeChannel(c *model.YoutubeChannel) model.PlatformStats {
	if c == nil {
		c = &model.YoutubeChannel{}
	}
	return model.PlatformStats{
		Platform: model.PlatformYoutube,
		Title:    title(c.Name, handle(c.Username), c.ID),
		Counters: []model.CounterDisplay{
			number("Subscribers", c.SubscriberCount),
			number("Views", c.ViewCount),
			number("Videos", c.VideoCount),
		},
	}
}

func YoutubeVideo(v *model.YoutubeVideo) model.PlatformStats {
	if v == nil {
		v = &model.YoutubeVideo{}
	}
	var channel *string
	if v.Channel != nil {
		channel = v.Channel.Name
	}
	return model.PlatformStats{
		Platform: model.PlatformYoutube,
		Title:    title(v.Title, v.ID),
		Counters: []model.CounterDisplay{
			number("Views", v.ViewCount),
			number("Likes", v.LikesCount),
			date("Published", v.PublishDate),
			text("Channel", channel),
		},
	}
}

// YoutubeChannelResults builds one panel per search row.
func YoutubeChannelResults(rows *[]model.YoutubeChannelSearchResult) []model.PlatformStats {
	if rows == nil {
		return nil
	}
	out := make([]model.PlatformStats, 0, len(*rows))
	for _, r := range *rows {
		out = append(out, model.PlatformStats{
			Platform: model.PlatformYoutube,
			Title:    title(r.Name, r.ID),
			Counters: []model.CounterDisplay{
				number("Subscribers", r.SubscriberCount),
				text("Channel ID", r.ID),
			},
		})
	}
	return out
}

// YoutubeVideoResults builds one panel per search row.
func YoutubeVideoResults(rows *[]model.YoutubeSearchVideoResult) []model.PlatformStats {
	if rows == nil {
		return nil
	}
	out := make([]model.PlatformStats, 0, len(*rows))
	for _, r := range *rows {
		var channel *string
		if r.Channel != nil {
			channel = r.Channel.Name
		}
		out = append(out, model.PlatformStats{
			Platform: model.PlatformYoutube,
			Title:    title(r.Title, r.ID),
			Counters: []model.CounterDisplay{
				number("Views", r.ViewCount),
				text("Duration", r.Duration),
				date("Published", r.PublishDate),
				text("Channel", channel),
			},
		})
	}
	return out
}
