package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sushihentaime/currytech/internal/common"
)

var (
	ErrAuthorForeignKey = errors.New("author does not exist")
)

// querier is satisfied by both *sql.DB and *sql.Tx so reads can join a
// running transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const selectBlogs = `
	SELECT b.id, b.title, b.content, b.image, b.tags, b.views, b.created_at, b.updated_at,
		u.id, u.name,
		ARRAY(SELECT l.user_id::text FROM blog_likes l WHERE l.blog_id = b.id ORDER BY l.created_at, l.user_id)
	FROM blogs b
	JOIN users u ON u.id = b.author_id`

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

func scanBlog(scan func(dest ...any) error) (*Blog, error) {
	var b Blog

	err := scan(&b.ID, &b.Title, &b.Content, &b.Image, pq.Array(&b.Tags), &b.Views, &b.CreatedAt, &b.UpdatedAt,
		&b.Author.ID, &b.Author.Name, pq.Array(&b.LikedBy))
	if err != nil {
		return nil, err
	}

	if b.Tags == nil {
		b.Tags = []string{}
	}
	if b.LikedBy == nil {
		b.LikedBy = []string{}
	}
	b.Likes = len(b.LikedBy)
	b.Comments = []Comment{}

	return &b, nil
}

func (m *BlogModel) insert(ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (id, title, content, image, tags, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	b.ID = uuid.NewString()

	err := m.db.QueryRowContext(ctx, query, b.ID, b.Title, b.Content, b.Image, pq.Array(b.Tags), b.Author.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "blogs_author_id_fkey"):
			return ErrAuthorForeignKey
		default:
			return err
		}
	}

	return nil
}

// getBlog loads a blog with its author, likes and comments.
func (m *BlogModel) getBlog(ctx context.Context, q querier, id string) (*Blog, error) {
	b, err := scanBlog(q.QueryRowContext(ctx, selectBlogs+" WHERE b.id = $1", id).Scan)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows), common.InvalidTextRepresentation(err):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	comments, err := m.getComments(ctx, q, b.ID)
	if err != nil {
		return nil, err
	}
	b.Comments = comments[b.ID]
	if b.Comments == nil {
		b.Comments = []Comment{}
	}

	return b, nil
}

// getComments returns the comments of the given blogs keyed by blog id,
// newest first.
func (m *BlogModel) getComments(ctx context.Context, q querier, blogIDs ...string) (map[string][]Comment, error) {
	query := `
		SELECT c.id, c.blog_id, c.user_id, u.name, c.name, c.comment, c.created_at
		FROM blog_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.blog_id = ANY($1::uuid[])
		ORDER BY c.created_at DESC, c.id`

	rows, err := q.QueryContext(ctx, query, pq.Array(blogIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make(map[string][]Comment, len(blogIDs))
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.BlogID, &c.User.ID, &c.User.Name, &c.Name, &c.Comment, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments[c.BlogID] = append(comments[c.BlogID], c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

// getBlogs returns a page of blogs sorted by creation time, newest first, and
// the total number of blogs matching the tag filter. An empty tag matches all.
func (m *BlogModel) getBlogs(ctx context.Context, tag string, limit, offset int) ([]Blog, int, error) {
	var total int

	err := m.db.QueryRowContext(ctx, `SELECT count(*) FROM blogs WHERE $1::text = '' OR $1::text = ANY(tags)`, tag).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := selectBlogs + `
		WHERE $1::text = '' OR $1::text = ANY(b.tags)
		ORDER BY b.created_at DESC, b.id
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, tag, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	blogs := []Blog{}
	ids := []string{}
	for rows.Next() {
		b, err := scanBlog(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, *b)
		ids = append(ids, b.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) == 0 {
		return blogs, total, nil
	}

	comments, err := m.getComments(ctx, m.db, ids...)
	if err != nil {
		return nil, 0, err
	}

	for i := range blogs {
		if c, ok := comments[blogs[i].ID]; ok {
			blogs[i].Comments = c
		}
	}

	return blogs, total, nil
}

// incrementViews bumps the view counter in a single statement so concurrent
// readers never lose an increment.
func (m *BlogModel) incrementViews(ctx context.Context, id string) error {
	res, err := m.db.ExecContext(ctx, `UPDATE blogs SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		if common.InvalidTextRepresentation(err) {
			return common.ErrRecordNotFound
		}
		return err
	}

	return expectOneRow(res)
}

func (m *BlogModel) getAuthorID(ctx context.Context, id string) (string, error) {
	var authorID string

	err := m.db.QueryRowContext(ctx, `SELECT author_id FROM blogs WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows), common.InvalidTextRepresentation(err):
			return "", common.ErrRecordNotFound
		default:
			return "", err
		}
	}

	return authorID, nil
}

func (m *BlogModel) updateBlog(ctx context.Context, b *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, content = $2, image = $3, tags = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`

	err := m.db.QueryRowContext(ctx, query, b.Title, b.Content, b.Image, pq.Array(b.Tags), b.ID).Scan(&b.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, id string) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

// lockBlog takes a row lock on the blog for the rest of the transaction,
// serializing likes and comments on the same blog.
func lockBlog(ctx context.Context, tx *sql.Tx, id string) error {
	var locked string

	err := tx.QueryRowContext(ctx, `SELECT id FROM blogs WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows), common.InvalidTextRepresentation(err):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

// toggleLike removes the user's like if present and adds it otherwise. It
// returns whether the user likes the blog afterwards.
func (m *BlogModel) toggleLike(ctx context.Context, tx *sql.Tx, blogID, userID string) (bool, error) {
	if err := lockBlog(ctx, tx, blogID); err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM blog_likes WHERE blog_id = $1 AND user_id = $2`, blogID, userID)
	if err != nil {
		return false, err
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if removed > 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO blog_likes (blog_id, user_id) VALUES ($1, $2)`, blogID, userID)
	if err != nil {
		return false, err
	}

	return true, nil
}

func (m *BlogModel) insertComment(ctx context.Context, tx *sql.Tx, c *Comment) error {
	if err := lockBlog(ctx, tx, c.BlogID); err != nil {
		return err
	}

	query := `
		INSERT INTO blog_comments (id, blog_id, user_id, name, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	c.ID = uuid.NewString()

	return tx.QueryRowContext(ctx, query, c.ID, c.BlogID, c.User.ID, c.Name, c.Comment).Scan(&c.CreatedAt)
}

func expectOneRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	switch {
	case rows == 0:
		return common.ErrRecordNotFound
	case rows != 1:
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	}

	return nil
}
