package mailer

import "errors"

var (
	// ErrSendFailed возвращается, когда провайдер отклонил письмо
	ErrSendFailed = errors.New("mailer: failed to send email")

	// ErrNoRecipient возвращается, когда у получателя нет email
	ErrNoRecipient = errors.New("mailer: recipient has no email address")
)
