package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// EmailService defines the interface for sending emails.
type EmailService interface {
	SendAuthCode(ctx context.Context, toEmail, code string) error
}

// SMTPEmailService sends emails using SMTP.
type SMTPEmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
}

func NewSMTPEmailService() *SMTPEmailService {
	return &SMTPEmailService{
		smtpHost:     "smtp.fastmail.com",
		smtpPort:     "587",
		smtpUsername: os.Getenv("SMTP_USERNAME"),
		smtpPassword: os.Getenv("SMTP_PASSWORD"),
		fromEmail:    os.Getenv("SMTP_FROM_EMAIL"),
		fromName:     "BrokerX",
	}
}

// SendAuthCode sends a plain-text verification code email via SMTP.
func (s *SMTPEmailService) SendAuthCode(ctx context.Context, toEmail, code string) error {
	subject := "Your verification code"
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	body := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.\n", code)

	message := []byte(
		"From: " + from + "\r\n" +
			"To: " + toEmail + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	addr := s.smtpHost + ":" + s.smtpPort
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{toEmail}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("verification email sent to %s", toEmail)
	return nil
}

// MockEmailService logs the code instead of sending it; cmd/server uses
// it in the development environment.
type MockEmailService struct{}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) SendAuthCode(ctx context.Context, toEmail, code string) error {
	log.Printf("=== EMAIL SEND (MOCK) === to=%s code=%s", toEmail, code)
	return nil
}
