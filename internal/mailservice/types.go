package mailservice

import (
	"bytes"
	"context"
	"html/template"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"

	"github.com/sushihentaime/currytech/internal/common"
)

const (
	WelcomeTemplate             = "welcome_email.tmpl"
	ContactNotificationTemplate = "contact_notification.tmpl"

	maxRetries       = 5
	defaultBaseDelay = 500 * time.Millisecond
)

type MailService struct {
	mb         common.MessageConsumer
	m          Mailer
	logger     MailLogger
	adminEmail string
	baseDelay  time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

type MailConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	Sender     string
	AdminEmail string
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

// Template holds the parsed mail templates keyed by file name.
type Template struct {
	set map[string]*template.Template
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}

// outgoing is one e-mail derived from a broker message.
type outgoing struct {
	recipient string
	data      any
	template  string
}
