package consts

const (
	MimePrefixImage = "image"
)

const (
	ThumbnailWidth  = 960
	ThumbnailHeight = 339
)

const (
	MaxImageSize = 10 << 20
)
