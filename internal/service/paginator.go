package service

import (
	"strconv"
	"strings"
)

// DefaultPageSize 每页帖子数
const DefaultPageSize = 10

// MaxCachedPage 超过该页码的请求不进缓存
const MaxCachedPage = 10000

// Paginator 页码从 1 开始，越界页码收敛到最近的有效页
type Paginator struct {
	PageSize int
}

func NewPaginator(pageSize int) Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Paginator{PageSize: pageSize}
}

// NumPages ceil(total / size)，没有数据时为 0
func (p Paginator) NumPages(total int64) int {
	if total <= 0 {
		return 0
	}
	size := int64(p.PageSize)
	return int((total + size - 1) / size)
}

// Resolve 解析请求中的页码，返回实际页码与总页数
func (p Paginator) Resolve(raw string, total int64) (page int, numPages int) {
	numPages = p.NumPages(total)
	page = RequestedPage(raw)
	if page > numPages {
		page = max(numPages, 1)
	}
	return page, numPages
}

// Offset 页码对应的偏移量
func (p Paginator) Offset(page int) int {
	return (page - 1) * p.PageSize
}

// RequestedPage 非数字或小于 1 视为第 1 页，不检查上限
func RequestedPage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
