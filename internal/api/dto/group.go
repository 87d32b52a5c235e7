package dto

// GroupDTO 分组
type GroupDTO struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CreateGroupDTO 管理员创建分组
type CreateGroupDTO struct {
	Title       string `json:"title" binding:"required" validate:"required,max=200"`
	Slug        string `json:"slug" binding:"required" validate:"required,max=100,excludesall= /?#"`
	Description string `json:"description" validate:"max=2000"`
}
