// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/mentorhub/meeting-service/internal/domain/models"
)

// MeetingIndexSender handles indexing operations for meetings.
type MeetingIndexSender interface {
	SendIndexMeeting(ctx context.Context, action models.MessageAction, data models.Meeting) error
	SendDeleteIndexMeeting(ctx context.Context, meetingUID string) error
}

// MeetingEventSender handles lifecycle event messages for meetings.
type MeetingEventSender interface {
	SendMeetingDeleted(ctx context.Context, data models.MeetingDeletedMessage) error
	SendInvitationResponded(ctx context.Context, data models.InvitationRespondedMessage) error
}

// MessageSender aggregates all messaging operations the services need.
type MessageSender interface {
	MeetingIndexSender
	MeetingEventSender
}
