package model

// YoutubeChannel is the upstream payload for a channel lookup. Counters are
// strings upstream and are kept verbatim.
type YoutubeChannel struct {
	ID              *string `json:"id" validate:"omitempty,max=256"`
	Name            *string `json:"name"`
	Username        *string `json:"username" validate:"omitempty,max=256"`
	Avatar          *string `json:"avatar" validate:"omitempty,url"`
	SubscriberCount *string `json:"subscriberCount" validate:"omitempty,max=64"`
	VideoCount      *string `json:"videoCount" validate:"omitempty,max=64"`
	ViewCount       *string `json:"viewCount" validate:"omitempty,max=64"`
	Description     *string `json:"description"`
}

// YoutubeVideo is the upstream payload for a video lookup.
type YoutubeVideo struct {
	ID          *string              `json:"id" validate:"omitempty,max=256"`
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Thumbnail   *string              `json:"thumbnail" validate:"omitempty,url"`
	VideoURL    *string              `json:"videoUrl" validate:"omitempty,url"`
	ViewCount   *string              `json:"viewCount" validate:"omitempty,max=64"`
	LikesCount  *string              `json:"likesCount" validate:"omitempty,max=64"`
	PublishDate *string              `json:"publishDate"`
	Channel     *YoutubeVideoChannel `json:"channel"`
}

// YoutubeVideoChannel is the channel block embedded in video payloads.
type YoutubeVideoChannel struct {
	ID       *string `json:"id" validate:"omitempty,max=256"`
	Name     *string `json:"name"`
	Username *string `json:"username" validate:"omitempty,max=256"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
}

// YoutubeSearchVideoResult is one row of a video search.
type YoutubeSearchVideoResult struct {
	ID          *string              `json:"id" validate:"omitempty,max=256"`
	Title       *string              `json:"title"`
	Thumbnail   *string              `json:"thumbnail" validate:"omitempty,url"`
	Duration    *string              `json:"duration" validate:"omitempty,max=32"`
	ViewCount   *string              `json:"viewCount" validate:"omitempty,max=64"`
	PublishDate *string              `json:"publishDate"`
	Channel     *YoutubeVideoChannel `json:"channel"`
}

// YoutubeChannelSearchResult is one row of a channel search.
type YoutubeChannelSearchResult struct {
	ID              *string `json:"id" validate:"omitempty,max=256"`
	Name            *string `json:"name"`
	Avatar          *string `json:"avatar" validate:"omitempty,url"`
	SubscriberCount *string `json:"subscriberCount" validate:"omitempty,max=64"`
}
