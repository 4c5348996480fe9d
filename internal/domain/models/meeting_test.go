// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeeting_MembershipPredicates(t *testing.T) {
	meeting := &Meeting{
		UID:               "meeting-1",
		InvitedStudentIDs: []string{"S1", "S2"},
		AcceptedStudents:  []string{"S1"},
		RejectedStudents:  []string{},
	}

	tests := []struct {
		name        string
		studentID   string
		wantPending bool
	}{
		{
			name:        "accepted student is not pending",
			studentID:   "S1",
			wantPending: false,
		},
		{
			name:        "invited student with no response is pending",
			studentID:   "S2",
			wantPending: true,
		},
		{
			name:        "uninvited student is not pending",
			studentID:   "S3",
			wantPending: false,
		},
		{
			name:        "empty student id is not pending",
			studentID:   "",
			wantPending: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPending, meeting.HasPendingInvitation(tt.studentID))
		})
	}
}

func TestMeeting_MembershipPredicates_RejectedStudent(t *testing.T) {
	meeting := &Meeting{
		InvitedStudentIDs: []string{"S1"},
		RejectedStudents:  []string{"S1"},
	}

	assert.True(t, meeting.IsInvited("S1"))
	assert.True(t, meeting.HasRejected("S1"))
	assert.False(t, meeting.HasPendingInvitation("S1"))
}

func TestMeeting_MembershipPredicates_MissingArrays(t *testing.T) {
	// Missing membership arrays are treated as empty sets.
	meeting := &Meeting{InvitedStudentIDs: []string{"S1"}}

	assert.False(t, meeting.HasAccepted("S1"))
	assert.False(t, meeting.HasRejected("S1"))
	assert.True(t, meeting.HasPendingInvitation("S1"))
}

func TestMeetingStatus_IsTerminal(t *testing.T) {
	assert.False(t, MeetingStatusScheduled.IsTerminal())
	assert.False(t, MeetingStatusOngoing.IsTerminal())
	assert.True(t, MeetingStatusCompleted.IsTerminal())
	assert.True(t, MeetingStatusCancelled.IsTerminal())
}

func TestMeeting_StartsAt(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name     string
		date     string
		time     string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "date and time",
			date:     "2026-05-11",
			time:     "14:30",
			expected: time.Date(2026, 5, 11, 14, 30, 0, 0, loc),
		},
		{
			name:     "missing time defaults to midnight",
			date:     "2026-05-11",
			time:     "",
			expected: time.Date(2026, 5, 11, 0, 0, 0, 0, loc),
		},
		{
			name:     "malformed time falls back to midnight",
			date:     "2026-05-11",
			time:     "2pm",
			expected: time.Date(2026, 5, 11, 0, 0, 0, 0, loc),
		},
		{
			name:    "malformed date is an error",
			date:    "May 11, 2026",
			time:    "14:30",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meeting := &Meeting{Date: tt.date, Time: tt.time}
			start, err := meeting.StartsAt(loc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, start)
		})
	}
}

func TestMeeting_IsOnDate(t *testing.T) {
	ref := time.Date(2026, 5, 11, 23, 50, 0, 0, time.UTC)

	onDate := &Meeting{Date: "2026-05-11", Time: "09:00"}
	assert.True(t, onDate.IsOnDate(ref))

	dayBefore := &Meeting{Date: "2026-05-10", Time: "23:59"}
	assert.False(t, dayBefore.IsOnDate(ref))

	badDate := &Meeting{Date: "not-a-date"}
	assert.False(t, badDate.IsOnDate(ref))
}

func TestMeeting_Tags(t *testing.T) {
	tests := []struct {
		name     string
		meeting  *Meeting
		expected []string
	}{
		{
			name:     "nil meeting returns nil",
			meeting:  nil,
			expected: nil,
		},
		{
			name: "complete meeting",
			meeting: &Meeting{
				UID:               "meeting-123",
				MentorID:          "F001",
				Title:             "Thesis review",
				Status:            MeetingStatusScheduled,
				InvitedStudentIDs: []string{"S1", "", "S2"},
			},
			expected: []string{
				"meeting-123",
				"meeting_uid:meeting-123",
				"mentor_id:F001",
				"title:Thesis review",
				"status:scheduled",
				"invited_student_id:S1",
				"invited_student_id:S2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.meeting.Tags())
		})
	}
}
