// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package models

// NATS subjects that the meeting service sends messages about.
const (
	// IndexMeetingSubject is the subject for the meeting indexing.
	// The subject is of the form: mentorhub.index.meeting
	IndexMeetingSubject = "mentorhub.index.meeting"

	// MeetingDeletedSubject is the subject for meeting deletion events.
	// The subject is of the form: mentorhub.meetings-api.meeting_deleted
	MeetingDeletedSubject = "mentorhub.meetings-api.meeting_deleted"

	// InvitationRespondedSubject is the subject for invitation accept/reject
	// events. The subject is of the form: mentorhub.meetings-api.invitation_responded
	InvitationRespondedSubject = "mentorhub.meetings-api.invitation_responded"
)

// MessageAction is the action of an indexer message.
type MessageAction string

const (
	// ActionCreated is the action for a created resource.
	ActionCreated MessageAction = "created"
	// ActionUpdated is the action for an updated resource.
	ActionUpdated MessageAction = "updated"
	// ActionDeleted is the action for a deleted resource.
	ActionDeleted MessageAction = "deleted"
)

// MeetingIndexerMessage is a NATS message schema for sending messages related to meetings CRUD operations.
type MeetingIndexerMessage struct {
	Action  MessageAction     `json:"action"`
	Headers map[string]string `json:"headers"`
	Data    any               `json:"data"`
	// Tags is a list of tags to be set on the indexed resource for search.
	Tags []string `json:"tags"`
}

// MeetingDeletedMessage is the schema for the message sent when a meeting is deleted.
type MeetingDeletedMessage struct {
	MeetingUID string `json:"meeting_uid"`
}

// InvitationResponse is the kind of response a student gave to an invitation.
type InvitationResponse string

const (
	// InvitationAccepted indicates the student accepted the invitation.
	InvitationAccepted InvitationResponse = "accepted"
	// InvitationRejected indicates the student declined the invitation.
	InvitationRejected InvitationResponse = "rejected"
)

// InvitationRespondedMessage is the schema for the message sent when a
// student accepts or rejects a meeting invitation.
type InvitationRespondedMessage struct {
	MeetingUID string             `json:"meeting_uid"`
	StudentID  string             `json:"student_id"`
	Response   InvitationResponse `json:"response"`
	Reason     string             `json:"reason,omitempty"`
}
