package dto

// MediaPendingMeta 已上传但尚未被帖子引用的图片
type MediaPendingMeta struct {
	OwnerID   uint64 `json:"owner_id"`
	MimeType  string `json:"mime_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Size      int64  `json:"size"`
	CreatedAt int64  `json:"created_at"`
}

// MediaUploadDTO 上传结果
type MediaUploadDTO struct {
	Key    string `json:"key"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}
