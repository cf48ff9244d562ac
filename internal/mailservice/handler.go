package mailservice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/currytech/internal/common"
	"golang.org/x/exp/rand"
)

func NewMailService(mb common.MessageConsumer, cfg MailConfig, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          NewMailer(cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Sender, NewTemplate()),
		logger:     logger,
		adminEmail: cfg.AdminEmail,
		baseDelay:  defaultBaseDelay,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start begins consuming every queue the mail service handles.
func (s *MailService) Start() {
	s.SendWelcomeEmail()
	s.SendContactNotification()
}

// SendWelcomeEmail greets newly registered users.
func (s *MailService) SendWelcomeEmail() {
	s.consume(common.UserRegisteredKey, common.UserRegisteredQueue, func(body []byte) (*outgoing, error) {
		var event common.UserRegisteredEvent

		err := json.Unmarshal(body, &event)
		if err != nil {
			return nil, err
		}

		if event.Email == "" {
			return nil, errors.New("user registered event without email")
		}

		return &outgoing{recipient: event.Email, data: event, template: WelcomeTemplate}, nil
	})
}

// SendContactNotification forwards contact form submissions to the admin inbox.
func (s *MailService) SendContactNotification() {
	s.consume(common.ContactSubmittedKey, common.ContactSubmittedQueue, func(body []byte) (*outgoing, error) {
		var event common.ContactSubmittedEvent

		err := json.Unmarshal(body, &event)
		if err != nil {
			return nil, err
		}

		return &outgoing{recipient: s.adminEmail, data: event, template: ContactNotificationTemplate}, nil
	})
}

func (s *MailService) consume(key common.BindingKey, queue common.Queue, decode func(body []byte) (*outgoing, error)) {
	msgs, err := s.mb.Consume(key, common.SiteExchange, queue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("queue", string(queue)), slog.String("error", err.Error()))
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				out, err := decode(msg.Body)
				if err != nil {
					s.logger.Error("could not decode message", slog.String("queue", string(queue)), slog.String("error", err.Error()))
					ack(msg)
					continue
				}

				if err := s.deliver(out); err != nil {
					// leave it unacknowledged so the broker redelivers it
					return
				}
				ack(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping consumer due to context cancellation", slog.String("queue", string(queue)))
				return
			}
		}
	}()
}

// deliver sends out, retrying with exponential backoff and jitter. A message
// that still fails after maxRetries attempts is dropped. It only returns an
// error when the service is shutting down.
func (s *MailService) deliver(out *outgoing) error {
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.m.send(out.recipient, out.data, out.template)
		if err == nil {
			s.logger.Info("email sent", slog.String("email", out.recipient), slog.String("template", out.template))
			return nil
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying email", slog.String("email", out.recipient), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return s.ctx.Err()
		}
	}

	s.logger.Error("could not send email", slog.String("email", out.recipient), slog.String("template", out.template))
	return nil
}

// ack acknowledges msg. Deliveries built outside a live channel have no
// acknowledger and are skipped.
func ack(msg amqp.Delivery) {
	if msg.Acknowledger != nil {
		_ = msg.Ack(false)
	}
}

// Close stops the consumers and waits for in-flight messages to finish.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
