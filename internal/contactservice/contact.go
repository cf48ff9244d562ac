package contactservice

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/sushihentaime/currytech/internal/common"
)

func NewContactService(db *sql.DB, mb common.MessageProducer, logger *slog.Logger) *ContactService {
	return &ContactService{
		m:      newContactModel(db),
		mb:     mb,
		logger: logger,
	}
}

// Submit stores a contact form entry with status new and notifies the admins
// through the broker.
func (s *ContactService) Submit(ctx context.Context, req SubmitRequest) (*Contact, error) {
	req = trimmed(req)

	v := common.NewValidator()
	validateContact(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	c := Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	err := s.m.insert(ctx, &c)
	if err != nil {
		return nil, err
	}

	event := common.ContactSubmittedEvent{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Subject: c.Subject,
		Message: c.Message,
	}
	if err := common.PublishEvent(ctx, s.mb, common.ContactSubmittedKey, event); err != nil {
		s.logger.Error("could not publish contact submitted event", slog.String("contact_id", c.ID), slog.String("error", err.Error()))
	}

	return &c, nil
}

func (s *ContactService) List(ctx context.Context) ([]Contact, error) {
	return s.m.list(ctx)
}

func (s *ContactService) Get(ctx context.Context, id string) (*Contact, error) {
	return s.m.get(ctx, id)
}

// Update replaces the provided fields, including the status.
func (s *ContactService) Update(ctx context.Context, id string, req UpdateRequest) (*Contact, error) {
	c, err := s.m.get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := SubmitRequest{Name: c.Name, Email: c.Email, Phone: c.Phone, Subject: c.Subject, Message: c.Message}
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Email != nil {
		merged.Email = *req.Email
	}
	if req.Phone != nil {
		merged.Phone = *req.Phone
	}
	if req.Subject != nil {
		merged.Subject = *req.Subject
	}
	if req.Message != nil {
		merged.Message = *req.Message
	}
	merged = trimmed(merged)

	status := c.Status
	if req.Status != nil {
		status = *req.Status
	}

	v := common.NewValidator()
	validateContact(v, merged)
	validateStatus(v, status)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	c.Name = merged.Name
	c.Email = merged.Email
	c.Phone = merged.Phone
	c.Subject = merged.Subject
	c.Message = merged.Message
	c.Status = status

	err = s.m.update(ctx, c)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.m.delete(ctx, id)
}

func trimmed(req SubmitRequest) SubmitRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	return req
}
