package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		perPage int
		want    int
	}{
		{"empty", 0, 25, 0},
		{"exact single page", 25, 25, 1},
		{"partial page rounds up", 26, 25, 2},
		{"many pages", 251, 25, 11},
		{"negative count", -1, 25, 0},
		{"zero per page", 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.count, tt.perPage))
		})
	}
}

// pageSpec describes one expected link: -1 page means ellipsis
type pageSpec struct {
	page    int
	current bool
}

func specs(links []PageLink) []pageSpec {
	out := make([]pageSpec, len(links))
	for i, l := range links {
		if l.Ellipsis {
			out[i] = pageSpec{page: -1}
		} else {
			out[i] = pageSpec{page: l.Page, current: l.Current}
		}
	}
	return out
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []pageSpec
	}{
		{
			name:    "few pages, no window",
			current: 2,
			total:   4,
			want:    []pageSpec{{1, false}, {2, true}, {3, false}, {4, false}},
		},
		{
			name:    "middle of a long run",
			current: 7,
			total:   20,
			want: []pageSpec{
				{1, false}, {-1, false},
				{5, false}, {6, false}, {7, true}, {8, false}, {9, false},
				{-1, false}, {20, false},
			},
		},
		{
			name:    "clamped at the start",
			current: 1,
			total:   20,
			want: []pageSpec{
				{1, true}, {2, false}, {3, false}, {4, false}, {5, false},
				{-1, false}, {20, false},
			},
		},
		{
			name:    "clamped at the end",
			current: 20,
			total:   20,
			want: []pageSpec{
				{1, false}, {-1, false},
				{16, false}, {17, false}, {18, false}, {19, false}, {20, true},
			},
		},
		{
			name:    "window touches page one, no leading gap",
			current: 3,
			total:   20,
			want: []pageSpec{
				{1, false}, {2, false}, {3, true}, {4, false}, {5, false},
				{-1, false}, {20, false},
			},
		},
		{
			name:    "window adjacent to page one, leading link but no ellipsis",
			current: 4,
			total:   20,
			want: []pageSpec{
				{1, false},
				{2, false}, {3, false}, {4, true}, {5, false}, {6, false},
				{-1, false}, {20, false},
			},
		},
		{
			name:    "window adjacent to the last page, trailing link but no ellipsis",
			current: 17,
			total:   20,
			want: []pageSpec{
				{1, false}, {-1, false},
				{15, false}, {16, false}, {17, true}, {18, false}, {19, false},
				{20, false},
			},
		},
		{
			name:    "single page",
			current: 1,
			total:   1,
			want:    []pageSpec{{1, true}},
		},
		{
			name:    "current beyond total is clamped",
			current: 99,
			total:   3,
			want:    []pageSpec{{1, false}, {2, false}, {3, true}},
		},
		{
			name:    "current below one is clamped",
			current: 0,
			total:   3,
			want:    []pageSpec{{1, true}, {2, false}, {3, false}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, specs(PageWindow(tt.current, tt.total)))
		})
	}
}

func TestPageWindowEmpty(t *testing.T) {
	assert.Nil(t, PageWindow(1, 0))
}
