// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"slices"
	"time"

	"github.com/mentorhub/meeting-service/pkg/constants"
)

// MeetingStatus is the lifecycle status of a meeting.
type MeetingStatus string

const (
	// MeetingStatusScheduled is the initial status of every meeting.
	MeetingStatusScheduled MeetingStatus = "scheduled"
	// MeetingStatusOngoing indicates the meeting is currently in progress.
	MeetingStatusOngoing MeetingStatus = "ongoing"
	// MeetingStatusCompleted is a terminal status.
	MeetingStatusCompleted MeetingStatus = "completed"
	// MeetingStatusCancelled is a terminal status.
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// IsTerminal reports whether the status stops future join actions.
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusCompleted || s == MeetingStatusCancelled
}

// Meeting is the key-value store representation of a mentor meeting.
//
// The three membership fields are logically sets of student IDs but are
// stored as arrays in the flat document schema, so they are sanitized and
// deduplicated on every write. RejectionReasons is a JSON-encoded map of
// student ID to reason; use [ParseRejectionReasons] to read it.
type Meeting struct {
	UID               string        `json:"uid"`
	MentorID          string        `json:"mentor_id"`
	MentorName        string        `json:"mentor_name"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	Date              string        `json:"date"`     // YYYY-MM-DD
	Time              string        `json:"time"`     // HH:MM
	Duration          int           `json:"duration"` // minutes
	Purpose           string        `json:"purpose"`
	MeetingURL        string        `json:"meeting_url"`
	MeetingPassword   string        `json:"meeting_password,omitempty"`
	Status            MeetingStatus `json:"status"`
	InvitedStudentIDs []string      `json:"invited_student_ids"`
	AcceptedStudents  []string      `json:"accepted_students"`
	RejectedStudents  []string      `json:"rejected_students"`
	RejectionReasons  string        `json:"rejection_reasons,omitempty"`
	CreatedAt         *time.Time    `json:"created_at,omitempty"`
	UpdatedAt         *time.Time    `json:"updated_at,omitempty"`
}

// IsInvited reports whether the student was invited to the meeting.
func (m *Meeting) IsInvited(studentID string) bool {
	return m != nil && studentID != "" && slices.Contains(m.InvitedStudentIDs, studentID)
}

// HasAccepted reports whether the student accepted the invitation.
func (m *Meeting) HasAccepted(studentID string) bool {
	return m != nil && studentID != "" && slices.Contains(m.AcceptedStudents, studentID)
}

// HasRejected reports whether the student rejected the invitation.
func (m *Meeting) HasRejected(studentID string) bool {
	return m != nil && studentID != "" && slices.Contains(m.RejectedStudents, studentID)
}

// HasPendingInvitation reports whether the student has an invitation they
// have neither accepted nor rejected. This is the single membership
// predicate every consumer of "pending" must use; the status is derived and
// never stored.
func (m *Meeting) HasPendingInvitation(studentID string) bool {
	return m.IsInvited(studentID) && !m.HasAccepted(studentID) && !m.HasRejected(studentID)
}

// StartsAt combines the Date and Time fields into a wall-clock start time in
// the given location. Time defaults to midnight when empty or malformed so
// that calendar-date comparisons still work for partially filled documents.
func (m *Meeting) StartsAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(constants.MeetingDateLayout, m.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid meeting date %q: %w", m.Date, err)
	}
	if m.Time == "" {
		return day, nil
	}
	t, err := time.ParseInLocation(constants.MeetingTimeLayout, m.Time, loc)
	if err != nil {
		return day, nil
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}

// IsOnDate reports whether the meeting falls on the given calendar date,
// ignoring the time of day.
func (m *Meeting) IsOnDate(ref time.Time) bool {
	start, err := m.StartsAt(ref.Location())
	if err != nil {
		return false
	}
	y1, m1, d1 := start.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Tags generates a consistent set of tags for the meeting for searching/indexing.
func (m *Meeting) Tags() []string {
	if m == nil {
		return nil
	}

	tags := []string{}

	if m.UID != "" {
		tags = append(tags, m.UID)
		tags = append(tags, fmt.Sprintf("meeting_uid:%s", m.UID))
	}

	if m.MentorID != "" {
		tags = append(tags, fmt.Sprintf("mentor_id:%s", m.MentorID))
	}

	if m.Title != "" {
		tags = append(tags, fmt.Sprintf("title:%s", m.Title))
	}

	if m.Status != "" {
		tags = append(tags, fmt.Sprintf("status:%s", m.Status))
	}

	for _, studentID := range m.InvitedStudentIDs {
		if studentID != "" {
			tags = append(tags, fmt.Sprintf("invited_student_id:%s", studentID))
		}
	}

	return tags
}

// InvitedStudent is the contact detail for a student invited to a meeting.
// It is carried on the create request for the invitation email fan-out; the
// stored meeting document keeps only the IDs.
type InvitedStudent struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
}
