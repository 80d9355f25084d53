package model

// Platform names a social network served by the upstream API.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTiktok    Platform = "tiktok"
	PlatformYoutube   Platform = "youtube"
)

// Resource identifies one proxied lookup.
type Resource string

const (
	ResourceInstagramProfile     Resource = "instagram_profile"
	ResourceInstagramPost        Resource = "instagram_post"
	ResourceTiktokProfile        Resource = "tiktok_profile"
	ResourceTiktokVideo          Resource = "tiktok_video"
	ResourceYoutubeChannelByID   Resource = "youtube_channel_id"
	ResourceYoutubeChannelByName Resource = "youtube_channel_username"
	ResourceYoutubeVideo         Resource = "youtube_video"
	ResourceYoutubeSearchChannel Resource = "youtube_search_channel"
	ResourceYoutubeSearchVideo   Resource = "youtube_search_video"
)

// ApiEndpoint is a read-only catalog entry used for documentation and labels.
type ApiEndpoint struct {
	Resource     Resource `json:"resource"`
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	UpstreamPath string   `json:"upstreamPath"`
	Description  string   `json:"description"`
	IsStable     bool     `json:"isStable"`
	Platform     Platform `json:"platform"`
}

var endpoints = []ApiEndpoint{
	{
		Resource:     ResourceInstagramProfile,
		Name:         "Instagram Profile",
		Path:         "/api/instagram/profile/{username}",
		UpstreamPath: "/instagram/@{username}",
		Description:  "Get Instagram user profile and posts",
		IsStable:     true,
		Platform:     PlatformInstagram,
	},
	{
		Resource:     ResourceInstagramPost,
		Name:         "Instagram Post",
		Path:         "/api/instagram/post/{postId}",
		UpstreamPath: "/instagram/post/{postId}",
		Description:  "Get Instagram post details",
		IsStable:     false,
		Platform:     PlatformInstagram,
	},
	{
		Resource:     ResourceTiktokProfile,
		Name:         "TikTok Profile",
		Path:         "/api/tiktok/profile/{username}",
		UpstreamPath: "/tiktok/@{username}",
		Description:  "Get TikTok user profile and stats",
		IsStable:     true,
		Platform:     PlatformTiktok,
	},
	{
		Resource:     ResourceTiktokVideo,
		Name:         "TikTok Video",
		Path:         "/api/tiktok/video/{videoId}",
		UpstreamPath: "/tiktok/video/{videoId}",
		Description:  "Get TikTok video details",
		IsStable:     false,
		Platform:     PlatformTiktok,
	},
	{
		Resource:     ResourceYoutubeChannelByID,
		Name:         "YouTube Channel by ID",
		Path:         "/api/youtube/channel/id/{channelId}",
		UpstreamPath: "/youtube/channel/id/{channelId}",
		Description:  "Get YouTube channel by ID",
		IsStable:     false,
		Platform:     PlatformYoutube,
	},
	{
		Resource:     ResourceYoutubeChannelByName,
		Name:         "YouTube Channel by Username",
		Path:         "/api/youtube/channel/username/{username}",
		UpstreamPath: "/youtube/channel/username/{username}",
		Description:  "Get YouTube channel by username",
		IsStable:     false,
		Platform:     PlatformYoutube,
	},
	{
		Resource:     ResourceYoutubeVideo,
		Name:         "YouTube Video",
		Path:         "/api/youtube/video/{videoId}",
		UpstreamPath: "/youtube/video/{videoId}",
		Description:  "Get YouTube video details",
		IsStable:     true,
		Platform:     PlatformYoutube,
	},
	{
		Resource:     ResourceYoutubeSearchChannel,
		Name:         "YouTube Search Channel",
		Path:         "/api/youtube/search/channel?q={query}",
		UpstreamPath: "/youtube/search/channel?query={query}",
		Description:  "Search YouTube channels",
		IsStable:     false,
		Platform:     PlatformYoutube,
	},
	{
		Resource:     ResourceYoutubeSearchVideo,
		Name:         "YouTube Search Video",
		Path:         "/api/youtube/search/video?q={query}",
		UpstreamPath: "/youtube/search/video?query={query}",
		Description:  "Search YouTube videos",
		IsStable:     true,
		Platform:     PlatformYoutube,
	},
}

// Endpoints returns a copy of the endpoint catalog.
func Endpoints() []ApiEndpoint {
	out := make([]ApiEndpoint, len(endpoints))
	copy(out, endpoints)
	return out
}

// EndpointFor looks up the catalog entry for a resource.
func EndpointFor(r Resource) (ApiEndpoint, bool) {
	for _, e := range endpoints {
		if e.Resource == r {
			return e, true
		}
	}
	return ApiEndpoint{}, false
}
