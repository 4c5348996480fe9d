// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

// Package email contains the email delivery infrastructure for invitation
// and cancellation notifications sent to students.
package email

import (
	"context"
	"log/slog"

	"github.com/mentorhub/meeting-service/internal/domain"
	"github.com/mentorhub/meeting-service/internal/logging"
)

// NoOpService is a no-operation email service that logs but doesn't send emails
type NoOpService struct{}

// NewNoOpService creates a new no-op email service
func NewNoOpService() *NoOpService {
	return &NoOpService{}
}

// SendInvitation logs the invitation but doesn't send an email
func (s *NoOpService) SendInvitation(ctx context.Context, invitation domain.EmailInvitation) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", invitation.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", invitation.MeetingTitle))

	slog.DebugContext(ctx, "email service disabled, skipping invitation email")
	return nil
}

// SendCancellation logs the cancellation but doesn't send an email
func (s *NoOpService) SendCancellation(ctx context.Context, cancellation domain.EmailCancellation) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", cancellation.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", cancellation.MeetingTitle))

	slog.DebugContext(ctx, "email service disabled, skipping cancellation email")
	return nil
}
