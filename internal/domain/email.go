// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
	"time"
)

// EmailService defines the interface for sending meeting emails to students.
type EmailService interface {
	SendInvitation(ctx context.Context, invitation EmailInvitation) error
	SendCancellation(ctx context.Context, cancellation EmailCancellation) error
}

// EmailInvitation contains the data needed to send a meeting invitation email.
type EmailInvitation struct {
	RecipientEmail  string
	RecipientName   string
	MeetingTitle    string
	MentorName      string
	StartTime       time.Time
	Duration        int // minutes
	Description     string
	Purpose         string
	MeetingURL      string
	MeetingPassword string
	Attachment      *EmailAttachment
}

// EmailCancellation contains the data needed to send a meeting cancellation email.
type EmailCancellation struct {
	RecipientEmail string
	RecipientName  string
	MeetingTitle   string
	MentorName     string
	StartTime      time.Time
	Reason         string
}

// EmailAttachment represents a file attached to an email (e.g. the ICS
// calendar entry for an invitation).
type EmailAttachment struct {
	Filename    string
	ContentType string
	Data        []byte
}
