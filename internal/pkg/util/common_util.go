package util

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy 渲染结果只允许换行标签
var textPolicy = bluemonday.NewPolicy().AllowElements("br")

// RenderText 纯文本转义为 HTML，换行转为 <br>，原文不做修改
func RenderText(text string) string {
	escaped := html.EscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return textPolicy.Sanitize(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// PtrUint64 用于将 uint64 转换为 *uint64
func PtrUint64(i uint64) *uint64 {
	return &i
}

// PtrString 空串返回 nil
func PtrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
