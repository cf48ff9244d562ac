package testimonialservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sushihentaime/currytech/internal/common"
)

const testimonialColumns = `id, content, rating, author_name, author_company, author_position, author_avatar, is_approved, user_id, created_at`

func newTestimonialModel(db *sql.DB) *TestimonialModel {
	return &TestimonialModel{db: db}
}

func scanTestimonial(scan func(dest ...any) error) (*Testimonial, error) {
	var t Testimonial

	err := scan(&t.ID, &t.Content, &t.Rating, &t.Author.Name, &t.Author.Company, &t.Author.Position, &t.Author.Avatar,
		&t.IsApproved, &t.UserID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func notFound(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows), common.InvalidTextRepresentation(err):
		return common.ErrRecordNotFound
	default:
		return err
	}
}

func (m *TestimonialModel) insert(ctx context.Context, t *Testimonial) error {
	query := `
		INSERT INTO testimonials (id, content, rating, author_name, author_company, author_position, author_avatar, is_approved, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8)
		RETURNING is_approved, created_at`

	t.ID = uuid.NewString()

	args := []any{
		t.ID,
		t.Content,
		t.Rating,
		t.Author.Name,
		t.Author.Company,
		t.Author.Position,
		t.Author.Avatar,
		t.UserID,
	}

	return m.db.QueryRowContext(ctx, query, args...).Scan(&t.IsApproved, &t.CreatedAt)
}

func (m *TestimonialModel) get(ctx context.Context, id string) (*Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = $1`

	t, err := scanTestimonial(m.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		return nil, notFound(err)
	}

	return t, nil
}

// list returns the testimonials matching f, newest first.
func (m *TestimonialModel) list(ctx context.Context, f filter) ([]Testimonial, error) {
	query := `
		SELECT ` + testimonialColumns + `
		FROM testimonials
		WHERE (NOT $1 OR is_approved)
		AND ($2::text = '' OR user_id::text = $2)
		ORDER BY created_at DESC, id`

	rows, err := m.db.QueryContext(ctx, query, f.approvedOnly, f.userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	testimonials := []Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows.Scan)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return testimonials, nil
}

// update writes the editable fields. The approval flag is left untouched.
func (m *TestimonialModel) update(ctx context.Context, t *Testimonial) error {
	query := `
		UPDATE testimonials
		SET content = $1, rating = $2, author_name = $3, author_company = $4, author_position = $5, author_avatar = $6
		WHERE id = $7
		RETURNING is_approved`

	args := []any{
		t.Content,
		t.Rating,
		t.Author.Name,
		t.Author.Company,
		t.Author.Position,
		t.Author.Avatar,
		t.ID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&t.IsApproved)
	if err != nil {
		return notFound(err)
	}

	return nil
}

func (m *TestimonialModel) approve(ctx context.Context, id string) (*Testimonial, error) {
	query := `
		UPDATE testimonials
		SET is_approved = true
		WHERE id = $1
		RETURNING ` + testimonialColumns

	t, err := scanTestimonial(m.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		return nil, notFound(err)
	}

	return t, nil
}

func (m *TestimonialModel) delete(ctx context.Context, id string) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return notFound(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}
