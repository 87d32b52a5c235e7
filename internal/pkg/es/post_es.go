package es

import (
	"Yatube/internal/model"
	"time"
)

// PostES 写入 ES 的帖子文档
type PostES struct {
	ID             uint64    `json:"id"`
	AuthorID       uint64    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	GroupID        *uint64   `json:"group_id,omitempty"`
	Text           string    `json:"text"`
	Image          *string   `json:"image,omitempty"`
	PubDate        time.Time `json:"pub_date"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToPostES 需要预加载 Author
func ToPostES(post *model.Post) *PostES {
	return &PostES{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		AuthorUsername: post.Author.Username,
		GroupID:        post.GroupID,
		Text:           post.Text,
		Image:          post.Image,
		PubDate:        post.PubDate,
		UpdatedAt:      post.UpdatedAt,
	}
}
