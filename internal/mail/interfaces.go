package mail

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/mail_mock.go -package=mock

// Mailer delivers email messages.
type Mailer interface {
	// Send delivers msg. Implementations are safe for concurrent use.
	Send(ctx context.Context, msg Message) error
}
