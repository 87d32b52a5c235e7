package dto

// ProfileDTO 作者主页
type ProfileDTO struct {
	Author         *UserDTO     `json:"author"`
	PostsCount     int64        `json:"posts_count"`
	FollowerCount  int64        `json:"follower_count"`
	FollowingCount int64        `json:"following_count"`
	Following      bool         `json:"following"`
	Page           *PostPageDTO `json:"page"`
}

// GroupFeedDTO 分组页
type GroupFeedDTO struct {
	Group *GroupDTO    `json:"group"`
	Page  *PostPageDTO `json:"page"`
}
