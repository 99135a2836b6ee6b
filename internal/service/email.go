package service

import (
	"context"
	"fmt"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService builds the SendGrid-backed notifier. With enabled false or
// an empty API key every send is a logged no-op, which keeps local
// environments from needing SendGrid credentials.
func NewEmailService(apiKey, fromEmail, fromName string, enabled bool) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   enabled && apiKey != "",
	}
}

func (s *emailService) send(toEmail, toName, subject, plainText string) error {
	if !s.enabled {
		logger.Debug("email delivery disabled, skipping", "to", toEmail, "subject", subject)
		return nil
	}

	logger.ExternalServiceCall("sendgrid", "Send", "to", toEmail, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "Send", nil)
	return nil
}

func formatAmount(amountCents int64) string {
	return fmt.Sprintf("%d.%02d", amountCents/100, amountCents%100)
}

func (s *emailService) SendRequestReceivedNotification(ctx context.Context, toEmail, toName, senderName string, amountCents int64, description string) error {
	subject := fmt.Sprintf("%s sent you a money request", senderName)
	body := fmt.Sprintf("Hello %s,\n\n%s has requested %s from you.\n\nNote: %s\n\nOpen SwiftPay to accept or reject the request.\n\nThe SwiftPay Team",
		toName, senderName, formatAmount(amountCents), description)
	return s.send(toEmail, toName, subject, body)
}

func (s *emailService) SendRequestResolvedNotification(ctx context.Context, toEmail, toName string, amountCents int64, status domain.RequestStatus) error {
	subject := fmt.Sprintf("Your money request was %s", status)
	body := fmt.Sprintf("Hello %s,\n\nYour request for %s has been %s.\n\nThe SwiftPay Team",
		toName, formatAmount(amountCents), status)
	return s.send(toEmail, toName, subject, body)
}

func (s *emailService) SendTransferReceivedNotification(ctx context.Context, toEmail, toName, senderName string, amountCents int64) error {
	subject := fmt.Sprintf("You received money from %s", senderName)
	body := fmt.Sprintf("Hello %s,\n\n%s sent you %s. The amount has been credited to your balance.\n\nThe SwiftPay Team",
		toName, senderName, formatAmount(amountCents))
	return s.send(toEmail, toName, subject, body)
}

func (s *emailService) SendPendingRequestReminder(ctx context.Context, toEmail, toName, senderName string, amountCents int64) error {
	subject := "Reminder: you have a pending money request"
	body := fmt.Sprintf("Hello %s,\n\n%s is still waiting on your response to a request for %s.\n\nThe SwiftPay Team",
		toName, senderName, formatAmount(amountCents))
	return s.send(toEmail, toName, subject, body)
}
