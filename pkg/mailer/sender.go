package mailer

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

// Message is a rendered email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Validate checks the fields every delivery channel needs.
func (m Message) Validate() error {
	if strings.TrimSpace(m.To) == "" {
		return errors.New("mail: missing recipient")
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.New("mail: missing subject")
	}
	if m.Text == "" && m.HTML == "" {
		return errors.New("mail: empty body")
	}
	return nil
}

// Sender delivers a message. A non-nil error means the message was not handed over.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// JSONPublisher is implemented by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueSender hands messages to the email worker through a queue.
type QueueSender struct {
	Pub JSONPublisher
}

func NewQueueSender(pub JSONPublisher) *QueueSender { return &QueueSender{Pub: pub} }

func (q *QueueSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if q.Pub == nil {
		return errors.New("mail queue not configured")
	}
	return q.Pub.PublishJSON(ctx, EmailJob{To: msg.To, Subject: msg.Subject, Text: msg.Text, HTML: msg.HTML})
}

// LogSender only records that a message would have been sent. Bodies are not logged since they may carry secrets.
type LogSender struct {
	Logger *logrus.Logger
}

func (l *LogSender) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if l.Logger != nil {
		l.Logger.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Info("mail sending disabled; message dropped")
	}
	return nil
}
