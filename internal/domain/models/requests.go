// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package models

import "time"

// CreateMeetingRequest is a request by a mentor to schedule a new meeting.
// InvitedStudents carries contact details for the invitation email fan-out;
// only the student IDs are persisted on the meeting document.
type CreateMeetingRequest struct {
	MentorID        string           `json:"mentorId"`
	MentorName      string           `json:"mentorName"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	Date            string           `json:"date"`     // YYYY-MM-DD
	Time            string           `json:"time"`     // HH:MM
	Duration        int              `json:"duration"` // minutes
	Purpose         string           `json:"purpose,omitempty"`
	MeetingURL      string           `json:"meetingUrl,omitempty"`
	MeetingPassword string           `json:"meetingPassword,omitempty"`
	InvitedStudents []InvitedStudent `json:"invitedStudents,omitempty"`
}

// ToMeeting builds the meeting document for a create request. The UID,
// status and timestamps are owned by the service, not the caller.
func (r *CreateMeetingRequest) ToMeeting(uid string, now time.Time) *Meeting {
	invitedIDs := make([]string, 0, len(r.InvitedStudents))
	for _, student := range r.InvitedStudents {
		invitedIDs = append(invitedIDs, student.StudentID)
	}

	return &Meeting{
		UID:               uid,
		MentorID:          r.MentorID,
		MentorName:        r.MentorName,
		Title:             r.Title,
		Description:       r.Description,
		Date:              r.Date,
		Time:              r.Time,
		Duration:          r.Duration,
		Purpose:           r.Purpose,
		MeetingURL:        r.MeetingURL,
		MeetingPassword:   r.MeetingPassword,
		Status:            MeetingStatusScheduled,
		InvitedStudentIDs: sanitizeMembership(invitedIDs),
		AcceptedStudents:  []string{},
		RejectedStudents:  []string{},
		RejectionReasons:  RejectionReasons{}.Encode(),
		CreatedAt:         &now,
		UpdatedAt:         &now,
	}
}

// CancellationNotice carries the contact details and optional reason for
// notifying students that a meeting was cancelled or deleted. Like the
// create path, the caller supplies the addresses because the meeting
// document only persists student IDs.
type CancellationNotice struct {
	Students []InvitedStudent `json:"students,omitempty"`
	Reason   string           `json:"reason,omitempty"`
}

// UpdateMeetingRequest carries the mentor-mutable fields of a meeting.
// Membership arrays and mentor attribution are not updatable through this
// path. Nil pointer fields keep their stored value. Cancellation is only
// consulted when the request moves the meeting to the cancelled status.
type UpdateMeetingRequest struct {
	Title           *string             `json:"title,omitempty"`
	Description     *string             `json:"description,omitempty"`
	Date            *string             `json:"date,omitempty"`
	Time            *string             `json:"time,omitempty"`
	Duration        *int                `json:"duration,omitempty"`
	Purpose         *string             `json:"purpose,omitempty"`
	MeetingURL      *string             `json:"meetingUrl,omitempty"`
	MeetingPassword *string             `json:"meetingPassword,omitempty"`
	Status          *MeetingStatus      `json:"status,omitempty"`
	Cancellation    *CancellationNotice `json:"cancellation,omitempty"`
}

// Apply overwrites the meeting's mutable fields with the values set on the
// request.
func (r *UpdateMeetingRequest) Apply(meeting *Meeting) {
	if r.Title != nil {
		meeting.Title = *r.Title
	}
	if r.Description != nil {
		meeting.Description = *r.Description
	}
	if r.Date != nil {
		meeting.Date = *r.Date
	}
	if r.Time != nil {
		meeting.Time = *r.Time
	}
	if r.Duration != nil {
		meeting.Duration = *r.Duration
	}
	if r.Purpose != nil {
		meeting.Purpose = *r.Purpose
	}
	if r.MeetingURL != nil {
		meeting.MeetingURL = *r.MeetingURL
	}
	if r.MeetingPassword != nil {
		meeting.MeetingPassword = *r.MeetingPassword
	}
	if r.Status != nil {
		meeting.Status = *r.Status
	}
}
