// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"time"

	"github.com/mentorhub/meeting-service/internal/domain/models"
)

// SelectTodayMeeting picks the meeting a student should join today: from
// the meetings the student has accepted, it drops completed and cancelled
// ones, keeps those falling on the reference date's calendar day, and
// returns the one with the latest start time. The time of day plays no part
// in the date match, only in the tie-break. Returns nil when nothing
// qualifies.
func SelectTodayMeeting(meetings []*models.Meeting, studentID string, ref time.Time) *models.Meeting {
	var (
		selected      *models.Meeting
		selectedStart time.Time
	)

	for _, meeting := range meetings {
		if meeting == nil || meeting.Status.IsTerminal() {
			continue
		}
		if !meeting.HasAccepted(studentID) {
			continue
		}
		if !meeting.IsOnDate(ref) {
			continue
		}

		start, err := meeting.StartsAt(ref.Location())
		if err != nil {
			continue
		}
		if selected == nil || start.After(selectedStart) {
			selected = meeting
			selectedStart = start
		}
	}

	return selected
}
