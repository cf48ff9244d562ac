package testimonialservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sushihentaime/currytech/internal/common"
	"github.com/sushihentaime/currytech/internal/userservice"
)

func NewTestimonialService(db *sql.DB) *TestimonialService {
	return &TestimonialService{m: newTestimonialModel(db)}
}

// ListApproved returns the publicly visible testimonials.
func (s *TestimonialService) ListApproved(ctx context.Context) ([]Testimonial, error) {
	return s.m.list(ctx, filter{approvedOnly: true})
}

func (s *TestimonialService) ListAll(ctx context.Context) ([]Testimonial, error) {
	return s.m.list(ctx, filter{})
}

// ListMine returns the caller's testimonials whatever their approval state.
func (s *TestimonialService) ListMine(ctx context.Context, user *userservice.User) ([]Testimonial, error) {
	return s.m.list(ctx, filter{userID: user.ID})
}

func (s *TestimonialService) GetTestimonial(ctx context.Context, id string) (*Testimonial, error) {
	return s.m.get(ctx, id)
}

// CreateTestimonial stores the caller's testimonial unapproved.
func (s *TestimonialService) CreateTestimonial(ctx context.Context, user *userservice.User, req CreateTestimonialRequest) (*Testimonial, error) {
	req.Content = strings.TrimSpace(req.Content)
	req.Author.Name = strings.TrimSpace(req.Author.Name)

	v := common.NewValidator()
	validateTestimonial(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	t := Testimonial{
		Content: req.Content,
		Rating:  req.Rating,
		Author:  withDefaultAvatar(req.Author),
		UserID:  user.ID,
	}

	err := s.m.insert(ctx, &t)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// UpdateTestimonial replaces the provided fields. The caller must own the
// testimonial or be an admin.
func (s *TestimonialService) UpdateTestimonial(ctx context.Context, user *userservice.User, id string, req UpdateTestimonialRequest) (*Testimonial, error) {
	t, err := s.m.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !user.CanModify(t.UserID) {
		return nil, common.ErrForbidden
	}

	merged := CreateTestimonialRequest{Content: t.Content, Rating: t.Rating, Author: t.Author}
	if req.Content != nil {
		merged.Content = strings.TrimSpace(*req.Content)
	}
	if req.Rating != nil {
		merged.Rating = *req.Rating
	}
	if a := req.Author; a != nil {
		if a.Name != nil {
			merged.Author.Name = strings.TrimSpace(*a.Name)
		}
		if a.Company != nil {
			merged.Author.Company = *a.Company
		}
		if a.Position != nil {
			merged.Author.Position = *a.Position
		}
		if a.Avatar != nil {
			merged.Author.Avatar = *a.Avatar
		}
	}

	v := common.NewValidator()
	validateTestimonial(v, merged)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	t.Content = merged.Content
	t.Rating = merged.Rating
	t.Author = withDefaultAvatar(merged.Author)

	err = s.m.update(ctx, t)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// DeleteTestimonial removes a testimonial owned by the caller, or any
// testimonial when the caller is an admin.
func (s *TestimonialService) DeleteTestimonial(ctx context.Context, user *userservice.User, id string) error {
	t, err := s.m.get(ctx, id)
	if err != nil {
		return err
	}

	if !user.CanModify(t.UserID) {
		return common.ErrForbidden
	}

	return s.m.delete(ctx, id)
}

// ApproveTestimonial publishes a testimonial. Approving twice is a no-op.
func (s *TestimonialService) ApproveTestimonial(ctx context.Context, id string) (*Testimonial, error) {
	return s.m.approve(ctx, id)
}

func withDefaultAvatar(a Author) Author {
	if strings.TrimSpace(a.Avatar) == "" {
		a.Avatar = DefaultAvatar
	}
	return a
}
