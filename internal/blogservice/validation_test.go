package blogservice

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/currytech/internal/common"
)

func TestValidateBlog(t *testing.T) {
	tooManyTags := make([]string, 21)
	for i := range tooManyTags {
		tooManyTags[i] = "tag"
	}

	testCases := []struct {
		name   string
		req    CreateBlogRequest
		errors map[string]string
	}{
		{
			name: "Valid",
			req:  CreateBlogRequest{Title: "Cloud migration", Content: "Body", Image: "https://example.com/a.png", Tags: []string{"cloud"}},
		},
		{
			name:   "Missing Title And Content",
			req:    CreateBlogRequest{},
			errors: map[string]string{"title": "must be provided", "content": "must be provided"},
		},
		{
			name:   "Long Title",
			req:    CreateBlogRequest{Title: strings.Repeat("t", 201), Content: "Body"},
			errors: map[string]string{"title": "must not be more than 200 characters long"},
		},
		{
			name:   "Bad Image",
			req:    CreateBlogRequest{Title: "Title", Content: "Body", Image: "not a url"},
			errors: map[string]string{"image": "must be a valid URL"},
		},
		{
			name:   "Too Many Tags",
			req:    CreateBlogRequest{Title: "Title", Content: "Body", Tags: tooManyTags},
			errors: map[string]string{"tags": "must not contain more than 20 items"},
		},
		{
			name:   "Empty Tag",
			req:    CreateBlogRequest{Title: "Title", Content: "Body", Tags: []string{"go", ""}},
			errors: map[string]string{"tags[1]": "must be provided"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateBlog(v, tc.req)

			if tc.errors == nil {
				assert.True(t, v.Valid(), v.Errors)
				return
			}

			assert.Equal(t, tc.errors, v.Errors)
		})
	}
}

func TestReadPage(t *testing.T) {
	testCases := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{name: "Defaults", page: 0, limit: 0, wantPage: 1, wantLimit: 10},
		{name: "Negative", page: -3, limit: -1, wantPage: 1, wantLimit: 10},
		{name: "Explicit", page: 3, limit: 25, wantPage: 3, wantLimit: 25},
		{name: "Limit Capped", page: 2, limit: 5000, wantPage: 2, wantLimit: MaxLimit},
		{name: "Huge Page", page: math.MaxInt / 5, limit: 10, wantPage: math.MaxInt / 10, wantLimit: 10},
		{name: "Max Page", page: math.MaxInt, limit: MaxLimit, wantPage: math.MaxInt / MaxLimit, wantLimit: MaxLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := readPage(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
			assert.GreaterOrEqual(t, (page-1)*limit, 0)
		})
	}
}

func TestNewPagination(t *testing.T) {
	testCases := []struct {
		name               string
		page, limit, total int
		want               Pagination
	}{
		{name: "Single Page", page: 1, limit: 10, total: 5, want: Pagination{}},
		{name: "Exact Fit", page: 1, limit: 10, total: 10, want: Pagination{}},
		{name: "First Of Many", page: 1, limit: 10, total: 11, want: Pagination{Next: &PageRef{Page: 2, Limit: 10}}},
		{
			name: "Middle",
			page: 2, limit: 5, total: 12,
			want: Pagination{Next: &PageRef{Page: 3, Limit: 5}, Prev: &PageRef{Page: 1, Limit: 5}},
		},
		{name: "Last", page: 3, limit: 5, total: 12, want: Pagination{Prev: &PageRef{Page: 2, Limit: 5}}},
		{name: "Past The End", page: 9, limit: 5, total: 12, want: Pagination{Prev: &PageRef{Page: 8, Limit: 5}}},
		{name: "Empty", page: 1, limit: 10, total: 0, want: Pagination{}},
		{
			name: "Far Past The End",
			page: math.MaxInt / 5, limit: 10, total: 3,
			want: Pagination{Prev: &PageRef{Page: math.MaxInt/10 - 1, Limit: 10}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := readPage(tc.page, tc.limit)
			assert.Equal(t, tc.want, newPagination(page, limit, tc.total))
		})
	}
}
