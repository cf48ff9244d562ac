package contactservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/sushihentaime/currytech/internal/common"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusResolved Status = "resolved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusResolved:
		return true
	default:
		return false
	}
}

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubmitRequest is the public contact form. Visitors cannot set a status.
type SubmitRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone" validate:"max=30"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type UpdateRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Subject *string `json:"subject"`
	Message *string `json:"message"`
	Status  *Status `json:"status"`
}

type ContactModel struct {
	db *sql.DB
}

type ContactService struct {
	m      *ContactModel
	mb     common.MessageProducer
	logger *slog.Logger
}
