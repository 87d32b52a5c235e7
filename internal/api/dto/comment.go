package dto

import "time"

// CommentDTO 评论
type CommentDTO struct {
	ID       uint64    `json:"id"`
	PostID   uint64    `json:"post_id"`
	Text     string    `json:"text"`
	TextHTML string    `json:"text_html"`
	Created  time.Time `json:"created"`
	Author   *UserDTO  `json:"author"`
}

// CreateCommentDTO 发表评论
type CreateCommentDTO struct {
	Text string `json:"text" validate:"max=5000"`
}
