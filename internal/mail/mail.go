// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mail

import (
	"context"
	"fmt"
	"net/mail"
	"os"

	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/logger"
)

// SubjectPrefix is prepended to the subject of messages sent to admins.
const SubjectPrefix = "[news-site] "

// New returns the Mailer for cfg.Backend.
func New(cfg config.Email, log *logger.Logger) (Mailer, error) {
	switch cfg.Backend {
	case config.EmailBackendConsole:
		return NewConsoleBackend(os.Stdout), nil
	case config.EmailBackendFile:
		return NewFileBackend(cfg.FilePath), nil
	case config.EmailBackendSMTP:
		return NewSMTPBackend(cfg, log)
	case config.EmailBackendLocMem:
		return NewLocMemBackend(), nil
	case config.EmailBackendDummy:
		return NewDummyBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// AdminNotifier mails error reports to the site admins.
type AdminNotifier struct {
	mailer Mailer
	from   string
	to     []string
}

// NewAdminNotifier sends from serverEmail to every admin in admins.
func NewAdminNotifier(mailer Mailer, serverEmail string, admins []config.Admin) *AdminNotifier {
	to := make([]string, 0, len(admins))
	for _, a := range admins {
		to = append(to, formatAddress(a))
	}
	return &AdminNotifier{mailer: mailer, from: serverEmail, to: to}
}

// MailAdmins sends a report to all admins. It is a no-op when there are
// none.
func (n *AdminNotifier) MailAdmins(ctx context.Context, subject, body string) error {
	if n == nil || len(n.to) == 0 {
		return nil
	}
	return n.mailer.Send(ctx, Message{
		From:    n.from,
		To:      n.to,
		Subject: SubjectPrefix + subject,
		Body:    body,
	})
}

func formatAddress(a config.Admin) string {
	if a.Name == "" {
		return a.Email
	}
	return (&mail.Address{Name: a.Name, Address: a.Email}).String()
}
