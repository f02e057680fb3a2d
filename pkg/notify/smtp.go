package notify

import (
	"context"

	gomail "github.com/go-gomail/gomail"
	"github.com/pkg/errors"
)

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, from, pass string) (*SMTPSender, error) {
	if host == "" {
		return nil, errors.New("empty smtp host")
	}
	if from == "" {
		return nil, errors.New("empty smtp from address")
	}

	return &SMTPSender{
		dialer: gomail.NewPlainDialer(host, port, from, pass),
		from:   from,
	}, nil
}

// Send delivers a plain-text message. gomail dials per message, which is
// fine at verification-code volume.
func (s *SMTPSender) Send(_ context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return errors.Wrap(err, "smtp send failed")
	}

	return nil
}
