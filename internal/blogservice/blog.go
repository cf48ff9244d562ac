package blogservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sushihentaime/currytech/internal/common"
	"github.com/sushihentaime/currytech/internal/userservice"
)

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

// ListBlogs returns one page of blogs, newest first. Page and limit fall back
// to 1 and 10 when not positive.
func (s *BlogService) ListBlogs(ctx context.Context, page, limit int, tag string) (*BlogList, error) {
	page, limit = readPage(page, limit)

	blogs, total, err := s.m.getBlogs(ctx, strings.TrimSpace(tag), limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &BlogList{
		Blogs:      blogs,
		Total:      total,
		Pagination: newPagination(page, limit, total),
	}, nil
}

// GetBlog returns a blog and counts the read as a view.
func (s *BlogService) GetBlog(ctx context.Context, id string) (*Blog, error) {
	err := s.m.incrementViews(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.m.getBlog(ctx, s.m.db, id)
}

// CreateBlog stores a new blog authored by the caller. Only admins may create blogs.
func (s *BlogService) CreateBlog(ctx context.Context, user *userservice.User, req CreateBlogRequest) (*Blog, error) {
	if !user.IsAdmin() {
		return nil, common.ErrForbidden
	}

	if req.Tags == nil {
		req.Tags = []string{}
	}

	v := common.NewValidator()
	validateBlog(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	b := Blog{
		Title:   req.Title,
		Content: sanitizeMarkdown(req.Content),
		Image:   req.Image,
		Tags:    req.Tags,
		Author:  Author{ID: user.ID, Name: user.Name},
	}

	err := s.m.insert(ctx, &b)
	if err != nil {
		return nil, err
	}

	return s.m.getBlog(ctx, s.m.db, b.ID)
}

// UpdateBlog replaces the provided fields. The caller must be the author or an admin.
func (s *BlogService) UpdateBlog(ctx context.Context, user *userservice.User, id string, req UpdateBlogRequest) (*Blog, error) {
	b, err := s.m.getBlog(ctx, s.m.db, id)
	if err != nil {
		return nil, err
	}

	if !user.CanModify(b.Author.ID) {
		return nil, common.ErrForbidden
	}

	merged := CreateBlogRequest{Title: b.Title, Content: b.Content, Image: b.Image, Tags: b.Tags}
	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.Content != nil {
		merged.Content = *req.Content
	}
	if req.Image != nil {
		merged.Image = *req.Image
	}
	if req.Tags != nil {
		merged.Tags = *req.Tags
	}
	if merged.Tags == nil {
		merged.Tags = []string{}
	}

	v := common.NewValidator()
	validateBlog(v, merged)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	b.Title = merged.Title
	b.Content = sanitizeMarkdown(merged.Content)
	b.Image = merged.Image
	b.Tags = merged.Tags

	err = s.m.updateBlog(ctx, b)
	if err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBlog removes a blog with its likes and comments. The caller must be the author or an admin.
func (s *BlogService) DeleteBlog(ctx context.Context, user *userservice.User, id string) error {
	authorID, err := s.m.getAuthorID(ctx, id)
	if err != nil {
		return err
	}

	if !user.CanModify(authorID) {
		return common.ErrForbidden
	}

	return s.m.deleteBlog(ctx, id)
}

// AddComment puts the caller's comment at the front of the blog's comments
// and returns the updated list.
func (s *BlogService) AddComment(ctx context.Context, user *userservice.User, id string, req CommentRequest) ([]Comment, error) {
	req.Comment = strings.TrimSpace(req.Comment)

	v := common.NewValidator()
	validateComment(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	c := Comment{
		BlogID:  id,
		User:    Author{ID: user.ID, Name: user.Name},
		Name:    user.Name,
		Comment: req.Comment,
	}

	var comments []Comment

	err := common.WithTx(ctx, s.m.db, func(tx *sql.Tx) error {
		if err := s.m.insertComment(ctx, tx, &c); err != nil {
			return err
		}

		byBlog, err := s.m.getComments(ctx, tx, id)
		if err != nil {
			return err
		}

		comments = byBlog[id]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return comments, nil
}

// ToggleLike flips the caller's like on the blog. Likes is the size of the
// blog's likedBy set after the change.
func (s *BlogService) ToggleLike(ctx context.Context, user *userservice.User, id string) (*LikeResult, error) {
	var res LikeResult

	err := common.WithTx(ctx, s.m.db, func(tx *sql.Tx) error {
		liked, err := s.m.toggleLike(ctx, tx, id, user.ID)
		if err != nil {
			return err
		}

		b, err := s.m.getBlog(ctx, tx, id)
		if err != nil {
			return err
		}

		res = LikeResult{Liked: liked, Likes: b.Likes, Blog: b}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}
