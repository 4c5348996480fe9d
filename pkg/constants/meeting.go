// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package constants

// Meeting constraints
const (
	// MaxRejectionReasonLength is the maximum length of a rejection reason
	MaxRejectionReasonLength = 100

	// MaxMeetingDurationMinutes is the maximum duration of a meeting in minutes
	MaxMeetingDurationMinutes = 600

	// MaxMembershipWriteAttempts bounds the read-reduce-write retry loop used
	// when mutating the membership sets of a meeting under concurrent writers.
	MaxMembershipWriteAttempts = 3
)

// Layouts for the flat document date and time fields.
const (
	// MeetingDateLayout is the layout of the meeting date field.
	MeetingDateLayout = "2006-01-02"

	// MeetingTimeLayout is the layout of the meeting time field.
	MeetingTimeLayout = "15:04"
)
