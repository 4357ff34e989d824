package mail

import "errors"

var (
	ErrUnknownBackend  = errors.New("unknown email backend")
	ErrNoRecipients    = errors.New("message has no recipients")
	ErrNoSender        = errors.New("message has no sender")
	ErrInvalidAddress  = errors.New("invalid email address")
	ErrWritingMessage  = errors.New("error writing message")
	ErrConfiguringSMTP = errors.New("invalid SMTP client configuration")
	ErrConnectingSMTP  = errors.New("error connecting to SMTP server")
	ErrSendingSMTP     = errors.New("error sending message over SMTP")
	ErrLoadingKeyPair  = errors.New("error loading SMTP client certificate")
)
