// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mentorhub/meeting-service/internal/domain"
	"github.com/mentorhub/meeting-service/internal/logging"
)

// SMTPService implements the EmailService interface using SMTP
type SMTPService struct {
	config    SMTPConfig
	templates Templates
}

// SMTPConfig holds the SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string // Optional for authenticated SMTP
	Password string // Optional for authenticated SMTP
}

// NewSMTPService creates a new SMTP email service
func NewSMTPService(config SMTPConfig) (*SMTPService, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	return &SMTPService{
		config:    config,
		templates: templates,
	}, nil
}

// SendInvitation sends an invitation email to an invited student
func (s *SMTPService) SendInvitation(ctx context.Context, invitation domain.EmailInvitation) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", invitation.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", invitation.MeetingTitle))

	htmlContent, err := renderHTML(s.templates.Invitation.HTML, invitation)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render HTML template", logging.ErrKey, err)
		return fmt.Errorf("failed to render HTML template: %w", err)
	}

	textContent, err := renderText(s.templates.Invitation.Text, invitation)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render text template", logging.ErrKey, err)
		return fmt.Errorf("failed to render text template: %w", err)
	}

	subject := fmt.Sprintf("Invitation: %s", invitation.MeetingTitle)
	message := buildEmailMessage(invitation.RecipientEmail, subject, htmlContent, textContent, invitation.Attachment, s.config)
	if err := sendEmailMessage(invitation.RecipientEmail, message, s.config); err != nil {
		slog.ErrorContext(ctx, "failed to send invitation email", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "invitation email sent successfully")
	return nil
}

// SendCancellation sends a cancellation email to a student
func (s *SMTPService) SendCancellation(ctx context.Context, cancellation domain.EmailCancellation) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", cancellation.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", cancellation.MeetingTitle))

	htmlContent, err := renderHTML(s.templates.Cancellation.HTML, cancellation)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render cancellation HTML template", logging.ErrKey, err)
		return fmt.Errorf("failed to render cancellation HTML template: %w", err)
	}

	textContent, err := renderText(s.templates.Cancellation.Text, cancellation)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render cancellation text template", logging.ErrKey, err)
		return fmt.Errorf("failed to render cancellation text template: %w", err)
	}

	subject := fmt.Sprintf("Meeting Cancellation: %s", cancellation.MeetingTitle)
	message := buildEmailMessage(cancellation.RecipientEmail, subject, htmlContent, textContent, nil, s.config)
	if err := sendEmailMessage(cancellation.RecipientEmail, message, s.config); err != nil {
		slog.ErrorContext(ctx, "failed to send cancellation email", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "cancellation email sent successfully")
	return nil
}
