package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginator_NumPages(t *testing.T) {
	p := NewPaginator(10)
	cases := []struct {
		total int64
		want  int
	}{
		{0, 0},
		{1, 1},
		{10, 1},
		{11, 2},
		{25, 3},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, p.NumPages(c.total), "total=%d", c.total)
	}
}

func TestPaginator_Resolve(t *testing.T) {
	p := NewPaginator(10)
	cases := []struct {
		name      string
		raw       string
		total     int64
		wantPage  int
		wantPages int
	}{
		{name: "absent", raw: "", total: 25, wantPage: 1, wantPages: 3},
		{name: "valid", raw: "2", total: 25, wantPage: 2, wantPages: 3},
		{name: "spaces", raw: " 3 ", total: 25, wantPage: 3, wantPages: 3},
		{name: "beyond last", raw: "99", total: 25, wantPage: 3, wantPages: 3},
		{name: "zero", raw: "0", total: 25, wantPage: 1, wantPages: 3},
		{name: "negative", raw: "-4", total: 25, wantPage: 1, wantPages: 3},
		{name: "not a number", raw: "abc", total: 25, wantPage: 1, wantPages: 3},
		{name: "float", raw: "1.5", total: 25, wantPage: 1, wantPages: 3},
		{name: "empty store", raw: "5", total: 0, wantPage: 1, wantPages: 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			page, pages := p.Resolve(c.raw, c.total)
			assert.Equal(t, c.wantPage, page)
			assert.Equal(t, c.wantPages, pages)
		})
	}
}

func TestPaginator_DefaultSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NewPaginator(0).PageSize)
	assert.Equal(t, 20, NewPaginator(10).Offset(3))
}
