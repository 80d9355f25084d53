package model

// TiktokProfile is the upstream payload for a TikTok user.
type TiktokProfile struct {
	User    *TiktokUser  `json:"user"`
	Stats   *TiktokStats `json:"stats"`
	StatsV2 *TiktokStats `json:"statsV2"`
}

// TiktokUser describes the account.
type TiktokUser struct {
	ID                  *string `json:"id" validate:"omitempty,max=256"`
	UniqueID            *string `json:"uniqueId" validate:"omitempty,max=256"`
	Nickname            *string `json:"nickname"`
	AvatarLarger        *string `json:"avatarLarger" validate:"omitempty,url"`
	AvatarMedium        *string `json:"avatarMedium" validate:"omitempty,url"`
	AvatarThumb         *string `json:"avatarThumb" validate:"omitempty,url"`
	CreateTime          Count   `json:"createTime"`
	Verified            *bool   `json:"verified"`
	Signature           *string `json:"signature"`
	IsEmbedBanned       *bool   `json:"isEmbedBanned"`
	IsOrganization      *bool   `json:"isOrganization"`
	FollowingVisibility *int    `json:"followingVisibility"`
	RoomID              *string `json:"roomId"`
	BioLink             *string `json:"bioLink" validate:"omitempty,max=2048"`
}

// TiktokStats is the counter block. statsV2 carries the same fields as
// strings, which Count accepts.
type TiktokStats struct {
	FollowerCount  Count `json:"followerCount"`
	FollowingCount Count `json:"followingCount"`
	Heart          Count `json:"heart"`
	HeartCount     Count `json:"heartCount"`
	VideoCount     Count `json:"videoCount"`
}

// TiktokVideo is the upstream payload for a single video.
type TiktokVideo struct {
	ID           *string `json:"id" validate:"omitempty,max=256"`
	Description  *string `json:"description"`
	PlayCount    Count   `json:"playCount"`
	ShareCount   Count   `json:"shareCount"`
	CommentCount Count   `json:"commentCount"`
	LikeCount    Count   `json:"likeCount"`
	CreateTime   Count   `json:"createTime"` // unix seconds
}

// Followers prefers statsV2 and falls back to stats; the result is invalid
// when neither block reports a follower count.
func (p TiktokProfile) Followers() Count {
	return p.pick(func(s *TiktokStats) Count { return s.FollowerCount })
}

// Following mirrors Followers for the following count.
func (p TiktokProfile) Following() Count {
	return p.pick(func(s *TiktokStats) Count { return s.FollowingCount })
}

// Hearts mirrors Followers for the total like count.
func (p TiktokProfile) Hearts() Count {
	return p.pick(func(s *TiktokStats) Count {
		if s.HeartCount.Valid {
			return s.HeartCount
		}
		return s.Heart
	})
}

// Videos mirrors Followers for the video count.
func (p TiktokProfile) Videos() Count {
	return p.pick(func(s *TiktokStats) Count { return s.VideoCount })
}

func (p TiktokProfile) pick(field func(*TiktokStats) Count) Count {
	for _, s := range []*TiktokStats{p.StatsV2, p.Stats} {
		if s == nil {
			continue
		}
		if c := field(s); c.Valid {
			return c
		}
	}
	return Count{}
}
