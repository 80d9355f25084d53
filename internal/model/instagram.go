package model

// InstagramProfile is the upstream payload for an Instagram user.
type InstagramProfile struct {
	ID                    *string          `json:"id" validate:"omitempty,max=256"`
	Username              *string          `json:"username" validate:"omitempty,max=256"`
	Avatar                *string          `json:"avatar" validate:"omitempty,url"`
	AvatarHD              *string          `json:"avatarHD" validate:"omitempty,url"`
	Biography             *string          `json:"biography"`
	ExternalURL           *string          `json:"externalUrl" validate:"omitempty,max=2048"`
	BusinessCategoryName  *string          `json:"businessCategoryName"`
	IsVerified            *bool            `json:"isVerified"`
	IsBusinessAccount     *bool            `json:"isBusinessAccount"`
	IsProfessionalAccount *bool            `json:"isProfessionalAccount"`
	IsPrivate             *bool            `json:"isPrivate"`
	Counts                *InstagramCounts `json:"counts"`
	Posts                 []InstagramPost  `json:"posts" validate:"omitempty,dive"`
}

// InstagramCounts holds the profile counters.
type InstagramCounts struct {
	Followers Count `json:"followers"`
	Following Count `json:"following"`
	Posts     Count `json:"posts"`
}

// InstagramPost is a single post, either inline in a profile or looked up by shortcode.
type InstagramPost struct {
	ID            *string `json:"id" validate:"omitempty,max=256"`
	Shortcode     *string `json:"shortcode" validate:"omitempty,max=256"`
	Caption       *string `json:"caption"`
	LikesCount    Count   `json:"likesCount"`
	CommentsCount Count   `json:"commentsCount"`
	Thumbnail     *string `json:"thumbnail" validate:"omitempty,url"`
}
