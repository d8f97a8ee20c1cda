package mailer

import "context"

// Noop заглушка почтового клиента для окружений без SendGrid.
// Все отправки молча пропускаются.
type Noop struct {
	log Logger
}

// NewNoop создает заглушку почтового клиента
func NewNoop(log Logger) *Noop {
	return &Noop{log: log}
}

func (n *Noop) SendConfirmation(ctx context.Context, email AppointmentEmail) error {
	n.log.Info("mailer disabled: skipping confirmation email to %s", email.RecipientEmail)
	return nil
}

func (n *Noop) SendReschedule(ctx context.Context, email AppointmentEmail) error {
	n.log.Info("mailer disabled: skipping reschedule email to %s", email.RecipientEmail)
	return nil
}

func (n *Noop) SendCancellation(ctx context.Context, email AppointmentEmail) error {
	n.log.Info("mailer disabled: skipping cancellation email to %s", email.RecipientEmail)
	return nil
}

func (n *Noop) SendReminder(ctx context.Context, email AppointmentEmail) error {
	n.log.Info("mailer disabled: skipping reminder email to %s", email.RecipientEmail)
	return nil
}
