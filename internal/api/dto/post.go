package dto

import "time"

// PostDTO 帖子
type PostDTO struct {
	ID       uint64    `json:"id"`
	Text     string    `json:"text"`
	TextHTML string    `json:"text_html"`
	Summary  string    `json:"summary"`
	PubDate  time.Time `json:"pub_date"`
	Author   *UserDTO  `json:"author"`
	Group    *GroupDTO `json:"group,omitempty"`
	Image    *string   `json:"image,omitempty"`
	ImageURL *string   `json:"image_url,omitempty"`
}

// PostBaseDTO 创建、编辑帖子共用
type PostBaseDTO struct {
	Text    string  `json:"text" validate:"max=20000"`
	GroupID *uint64 `json:"group_id"`
	Image   *string `json:"image"`
}

// PostPageDTO 分页结果
type PostPageDTO struct {
	Items      []*PostDTO `json:"items"`
	PageNumber int        `json:"page_number"`
	TotalPages int        `json:"total_pages"`
	TotalCount int64      `json:"total_count"`
	PageSize   int        `json:"page_size"`
	HasPrev    bool       `json:"has_prev"`
	HasNext    bool       `json:"has_next"`
}

// PostDetailDTO 帖子详情页
type PostDetailDTO struct {
	Post             *PostDTO      `json:"post"`
	AuthorPostsCount int64         `json:"author_posts_count"`
	Comments         []*CommentDTO `json:"comments"`
}

// PostRevisionDTO 编辑历史
type PostRevisionDTO struct {
	Text     string    `json:"text"`
	GroupID  *uint64   `json:"group_id,omitempty"`
	Image    *string   `json:"image,omitempty"`
	EditorID uint64    `json:"editor_id"`
	EditedAt time.Time `json:"edited_at"`
}
