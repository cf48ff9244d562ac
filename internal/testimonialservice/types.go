package testimonialservice

import (
	"database/sql"
	"time"
)

const DefaultAvatar = "https://randomuser.me/api/portraits/lego/1.jpg"

type Testimonial struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	Author     Author    `json:"author"`
	IsApproved bool      `json:"isApproved"`
	UserID     string    `json:"user"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Author struct {
	Name     string `json:"name" validate:"required,max=100"`
	Company  string `json:"company" validate:"max=100"`
	Position string `json:"position" validate:"max=100"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
}

// CreateTestimonialRequest carries no approval flag: new testimonials always
// wait for an admin.
type CreateTestimonialRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Author  Author `json:"author"`
}

type UpdateTestimonialRequest struct {
	Content *string       `json:"content"`
	Rating  *int          `json:"rating"`
	Author  *AuthorUpdate `json:"author"`
}

type AuthorUpdate struct {
	Name     *string `json:"name"`
	Company  *string `json:"company"`
	Position *string `json:"position"`
	Avatar   *string `json:"avatar"`
}

// filter narrows a listing. The zero value lists everything.
type filter struct {
	approvedOnly bool
	userID       string
}

type TestimonialModel struct {
	db *sql.DB
}

type TestimonialService struct {
	m *TestimonialModel
}
