package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/logger"
)

// SMTPBackend delivers messages to an SMTP server, opening one connection
// per message.
type SMTPBackend struct {
	host      string
	port      int
	tlsConfig *tls.Config
	options   []gomail.Option
	now       func() time.Time
	logger    *logger.Logger
}

// NewSMTPBackend configures the backend from the email settings. The client
// certificate is loaded once when both SSLCertFile and SSLKeyFile are set.
//
// EMAIL_USE_TLS requires STARTTLS, EMAIL_USE_SSL dials with implicit TLS and
// neither sends in plain text. With EMAIL_HOST_USER set the server must offer
// AUTH PLAIN, which is also used over a plain-text connection.
func NewSMTPBackend(cfg config.Email, log *logger.Logger) (*SMTPBackend, error) {
	if log == nil {
		log = logger.Nop()
	}

	tlsConfig := &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
	if cfg.SSLCertFile != "" && cfg.SSLKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.SSLCertFile, cfg.SSLKeyFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadingKeyPair, err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	options := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSConfig(tlsConfig),
		gomail.WithTLSPolicy(tlsPolicy(cfg)),
	}
	if cfg.UseSSL {
		options = append(options, gomail.WithSSL())
	}
	if cfg.Timeout > 0 {
		options = append(options, gomail.WithTimeout(cfg.Timeout))
	}
	if cfg.HostUser != "" {
		options = append(options,
			gomail.WithSMTPAuth(authType(cfg)),
			gomail.WithUsername(cfg.HostUser),
			gomail.WithPassword(cfg.HostPassword),
		)
	}

	b := &SMTPBackend{
		host:      cfg.Host,
		port:      cfg.Port,
		tlsConfig: tlsConfig,
		options:   options,
		now:       time.Now,
		logger:    log,
	}

	if _, err := b.newClient(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguringSMTP, err)
	}

	return b, nil
}

func tlsPolicy(cfg config.Email) gomail.TLSPolicy {
	if cfg.UseTLS {
		return gomail.TLSMandatory
	}
	return gomail.NoTLS
}

func authType(cfg config.Email) gomail.SMTPAuthType {
	if cfg.UseTLS || cfg.UseSSL {
		return gomail.SMTPAuthPlain
	}
	return gomail.SMTPAuthPlainNoEnc
}

func (b *SMTPBackend) newClient() (*gomail.Client, error) {
	return gomail.NewClient(b.host, b.options...)
}

func (b *SMTPBackend) address() string {
	return net.JoinHostPort(b.host, strconv.Itoa(b.port))
}

func (b *SMTPBackend) Send(ctx context.Context, msg Message) error {
	m, err := msg.build(b.now(), hostname())
	if err != nil {
		return err
	}

	client, err := b.newClient()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguringSMTP, err)
	}

	if err = client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConnectingSMTP, b.address(), err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			b.logger.Warn().Err(err).Str("host", b.host).Msg("SMTP QUIT failed")
		}
	}()

	if err = client.Send(m); err != nil {
		return fmt.Errorf("%w: %w", ErrSendingSMTP, err)
	}

	b.logger.Debug().Str("host", b.host).Strs("to", msg.To).Msg("message sent over SMTP")
	return nil
}
