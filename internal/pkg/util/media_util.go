package util

import (
	"Yatube/internal/pkg/consts"
	"bytes"
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
)

// DetectContentType 嗅探文件头部得到 MIME 类型
func DetectContentType(head []byte) string {
	return http.DetectContentType(head)
}

// IsImage MIME 类型是否为图片
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, consts.MimePrefixImage+"/")
}

// MakeThumbnail 按比例缩放到不超过 960x339，统一编码为 JPEG
func MakeThumbnail(data []byte) (out []byte, width, height int, err error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}

	var dst image.Image = src
	b := src.Bounds()
	if b.Dx() > consts.ThumbnailWidth || b.Dy() > consts.ThumbnailHeight {
		dst = imaging.Fit(src, consts.ThumbnailWidth, consts.ThumbnailHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, dst, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, 0, 0, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), dst.Bounds().Dx(), dst.Bounds().Dy(), nil
}
