package mail

import (
	"bytes"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/MKhiriev/news-site/internal/utils"
)

const userAgent = "news-site"

// Message is a plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

func (m Message) validate() error {
	if m.From == "" {
		return ErrNoSender
	}
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	return nil
}

// build converts m into a go-mail message dated now. The Message-ID is a
// random key under domain.
func (m Message) build(now time.Time, domain string) (*gomail.Msg, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	if domain == "" {
		domain = "localhost"
	}

	msg := gomail.NewMsg(gomail.WithCharset(gomail.CharsetUTF8), gomail.WithEncoding(gomail.EncodingQP))
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("%w: sender %q: %w", ErrInvalidAddress, m.From, err)
	}
	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("%w: recipients %q: %w", ErrInvalidAddress, m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetDateWithValue(now)
	msg.SetMessageIDWithValue(utils.NewUUIDGenerator().GenerateKey() + "@" + domain)
	msg.SetUserAgent(userAgent)
	msg.SetBodyString(gomail.TypeTextPlain, m.Body)

	return msg, nil
}

// Format renders the message in RFC 5322 form with CRLF line endings.
func (m Message) Format(now time.Time, domain string) ([]byte, error) {
	msg, err := m.build(now, domain)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err = msg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWritingMessage, err)
	}
	return buf.Bytes(), nil
}
