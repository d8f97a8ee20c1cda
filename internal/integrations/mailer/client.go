package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Client клиент для отправки писем через SendGrid.
// Все отправки best-effort: вызывающий код логирует ошибку и продолжает,
// запись никогда не откатывается из-за недоставленного письма.
type Client struct {
	sg        *sendgrid.Client
	fromName  string
	fromEmail string
	log       Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(apiKey, fromName, fromEmail string, log Logger) *Client {
	return &Client{
		sg:        sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		log:       log,
	}
}

// SendConfirmation отправляет клиенту подтверждение записи
func (c *Client) SendConfirmation(ctx context.Context, email AppointmentEmail) error {
	subject := fmt.Sprintf("Your appointment at %s is confirmed", email.SalonName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour appointment for %s at %s is confirmed:\n%s at %s (%d min).\n\nSee you soon!",
		email.RecipientName, email.ServiceName, email.SalonName,
		email.Date, email.StartTime, email.DurationMin,
	)
	return c.send(ctx, email, subject, body)
}

// SendReschedule отправляет клиенту уведомление о переносе записи
func (c *Client) SendReschedule(ctx context.Context, email AppointmentEmail) error {
	subject := fmt.Sprintf("Your appointment at %s has been updated", email.SalonName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour appointment at %s has been updated:\n%s, %s at %s (%d min).",
		email.RecipientName, email.SalonName, email.ServiceName,
		email.Date, email.StartTime, email.DurationMin,
	)
	return c.send(ctx, email, subject, body)
}

// SendCancellation отправляет клиенту уведомление об отмене записи
func (c *Client) SendCancellation(ctx context.Context, email AppointmentEmail) error {
	subject := fmt.Sprintf("Your appointment at %s has been cancelled", email.SalonName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour appointment at %s (%s, %s at %s) has been cancelled.",
		email.RecipientName, email.SalonName, email.ServiceName,
		email.Date, email.StartTime,
	)
	return c.send(ctx, email, subject, body)
}

// SendReminder отправляет клиенту напоминание о завтрашней записи
func (c *Client) SendReminder(ctx context.Context, email AppointmentEmail) error {
	subject := fmt.Sprintf("Reminder: appointment at %s tomorrow", email.SalonName)
	body := fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder of your appointment at %s:\n%s, %s at %s.",
		email.RecipientName, email.SalonName, email.ServiceName,
		email.Date, email.StartTime,
	)
	return c.send(ctx, email, subject, body)
}

func (c *Client) send(ctx context.Context, email AppointmentEmail, subject, body string) error {
	if email.RecipientEmail == "" {
		return ErrNoRecipient
	}

	from := mail.NewEmail(c.fromName, c.fromEmail)
	to := mail.NewEmail(email.RecipientName, email.RecipientEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	resp, err := c.sg.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d: %s", ErrSendFailed, resp.StatusCode, resp.Body)
	}

	c.log.Info("send: email %q delivered to %s", subject, email.RecipientEmail)
	return nil
}
