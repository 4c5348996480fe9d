// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

// Package messaging contains the NATS message publishing for the meeting
// service: indexer messages for search and lifecycle event messages for
// downstream consumers.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mentorhub/meeting-service/internal/domain/models"
	"github.com/mentorhub/meeting-service/internal/logging"
	"github.com/mentorhub/meeting-service/pkg/constants"
)

// INatsConn is a NATS connection interface needed by the [MessageBuilder].
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder builds messages and sends them to the NATS server.
type MessageBuilder struct {
	NatsConn INatsConn
}

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// sendMessage sends the message to the NATS server.
func (m *MessageBuilder) sendMessage(ctx context.Context, subject string, data []byte) error {
	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

// sendIndexerMessage sends the message to the NATS server for the indexer.
func (m *MessageBuilder) sendIndexerMessage(ctx context.Context, subject string, action models.MessageAction, payload any, tags []string) error {
	headers := make(map[string]string)
	if authorization, ok := ctx.Value(constants.AuthorizationContextID).(string); ok {
		headers[constants.AuthorizationHeader] = authorization
	}
	if principal, ok := ctx.Value(constants.PrincipalContextID).(string); ok {
		headers["x-on-behalf-of"] = principal
	}

	message := models.MeetingIndexerMessage{
		Action:  action,
		Headers: headers,
		Data:    payload,
		Tags:    tags,
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message into JSON", logging.ErrKey, err, "subject", subject)
		return err
	}

	slog.DebugContext(ctx, "constructed indexer message",
		"subject", subject,
		"action", action,
		"tags_count", len(tags),
	)

	return m.sendMessage(ctx, subject, messageBytes)
}

// SendIndexMeeting sends the message to the NATS server for the meeting indexing.
func (m *MessageBuilder) SendIndexMeeting(ctx context.Context, action models.MessageAction, data models.Meeting) error {
	return m.sendIndexerMessage(ctx, models.IndexMeetingSubject, action, data, data.Tags())
}

// SendDeleteIndexMeeting sends the deletion message to the NATS server for the meeting indexing.
func (m *MessageBuilder) SendDeleteIndexMeeting(ctx context.Context, meetingUID string) error {
	return m.sendIndexerMessage(ctx, models.IndexMeetingSubject, models.ActionDeleted, meetingUID, nil)
}

// SendMeetingDeleted sends the message announcing that a meeting was deleted.
func (m *MessageBuilder) SendMeetingDeleted(ctx context.Context, data models.MeetingDeletedMessage) error {
	messageBytes, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message into JSON", logging.ErrKey, err)
		return err
	}
	return m.sendMessage(ctx, models.MeetingDeletedSubject, messageBytes)
}

// SendInvitationResponded sends the message announcing that a student
// responded to a meeting invitation.
func (m *MessageBuilder) SendInvitationResponded(ctx context.Context, data models.InvitationRespondedMessage) error {
	messageBytes, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message into JSON", logging.ErrKey, err)
		return err
	}
	return m.sendMessage(ctx, models.InvitationRespondedSubject, messageBytes)
}
