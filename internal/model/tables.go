package model

// Tables 需要自动迁移的表，按依赖顺序排列
func Tables() []any {
	return []any{
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	}
}
