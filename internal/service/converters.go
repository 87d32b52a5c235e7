package service

import (
	"Yatube/internal/api/dto"
	"Yatube/internal/model"
	"Yatube/internal/pkg/util"
	"strconv"

	"github.com/jinzhu/copier"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

func toUserDTO(u *model.User) *dto.UserDTO {
	if u == nil {
		return nil
	}
	out := &dto.UserDTO{}
	_ = copier.Copy(out, u)
	return out
}

func toGroupDTO(g *model.Group) *dto.GroupDTO {
	if g == nil {
		return nil
	}
	out := &dto.GroupDTO{}
	_ = copier.Copy(out, g)
	return out
}

// toPostDTO publicURL 为 nil 时不生成图片地址
func toPostDTO(p *model.Post, publicURL func(string) string) *dto.PostDTO {
	out := &dto.PostDTO{
		ID:       p.ID,
		Text:     p.Text,
		TextHTML: util.RenderText(p.Text),
		Summary:  p.String(),
		PubDate:  p.PubDate,
		Author:   toUserDTO(&p.Author),
		Group:    toGroupDTO(p.Group),
		Image:    p.Image,
	}
	if p.Image != nil && publicURL != nil {
		url := publicURL(*p.Image)
		out.ImageURL = &url
	}
	return out
}

func toCommentDTO(c *model.Comment) *dto.CommentDTO {
	out := &dto.CommentDTO{}
	_ = copier.Copy(out, c)
	out.TextHTML = util.RenderText(c.Text)
	out.Author = toUserDTO(&c.Author)
	return out
}
