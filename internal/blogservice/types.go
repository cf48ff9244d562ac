package blogservice

import (
	"database/sql"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Blog struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Content is stored in Markdown format.
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Tags      []string  `json:"tags"`
	Author    Author    `json:"author"`
	Views     int       `json:"views"`
	Likes     int       `json:"likes"`
	LikedBy   []string  `json:"likedBy"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Author is the expanded user reference embedded in blogs and comments.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Comment struct {
	ID     string `json:"id"`
	BlogID string `json:"-"`
	User   Author `json:"user"`
	// Name is the commenter's display name at the time of posting.
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"date"`
}

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

type BlogList struct {
	Blogs      []Blog
	Total      int
	Pagination Pagination
}

type LikeResult struct {
	Liked bool
	Likes int
	Blog  *Blog
}

type CreateBlogRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required"`
	Image   string   `json:"image" validate:"omitempty,url"`
	Tags    []string `json:"tags" validate:"max=20,dive,required,max=50"`
}

// UpdateBlogRequest holds the fields a caller may replace. Nil fields keep
// their stored value.
type UpdateBlogRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Image   *string   `json:"image"`
	Tags    *[]string `json:"tags"`
}

type CommentRequest struct {
	Comment string `json:"comment" validate:"required,max=1000"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
}
