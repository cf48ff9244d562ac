package blogservice

import (
	"math"

	"github.com/sushihentaime/currytech/internal/common"
)

func validateBlog(v *common.Validator, req CreateBlogRequest) {
	v.Struct(req)
}

func validateComment(v *common.Validator, req CommentRequest) {
	v.Struct(req)
}

// readPage falls back to the defaults for missing or non-positive values.
// limit is capped at MaxLimit and page at the last one whose page*limit
// still fits in an int, so offsets never overflow.
func readPage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}

// newPagination links to the neighbouring pages that hold results.
func newPagination(page, limit, total int) Pagination {
	var p Pagination

	if page*limit < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if (page-1)*limit > 0 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}

	return p
}
