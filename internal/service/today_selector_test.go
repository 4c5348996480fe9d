// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/meeting-service/internal/domain/models"
)

func acceptedMeeting(uid, date, timeOfDay string, status models.MeetingStatus) *models.Meeting {
	return &models.Meeting{
		UID:               uid,
		Date:              date,
		Time:              timeOfDay,
		Status:            status,
		InvitedStudentIDs: []string{"student-1"},
		AcceptedStudents:  []string{"student-1"},
	}
}

func TestSelectTodayMeeting(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

	t.Run("picks the latest start among today's meetings", func(t *testing.T) {
		meetings := []*models.Meeting{
			acceptedMeeting("morning", "2026-03-14", "09:00", models.MeetingStatusScheduled),
			acceptedMeeting("afternoon", "2026-03-14", "14:00", models.MeetingStatusScheduled),
		}

		selected := SelectTodayMeeting(meetings, "student-1", now)

		require.NotNil(t, selected)
		assert.Equal(t, "afternoon", selected.UID)
	})

	t.Run("excludes completed and cancelled meetings", func(t *testing.T) {
		meetings := []*models.Meeting{
			acceptedMeeting("cancelled", "2026-03-14", "16:00", models.MeetingStatusCancelled),
			acceptedMeeting("completed", "2026-03-14", "15:00", models.MeetingStatusCompleted),
			acceptedMeeting("scheduled", "2026-03-14", "09:00", models.MeetingStatusScheduled),
		}

		selected := SelectTodayMeeting(meetings, "student-1", now)

		require.NotNil(t, selected)
		assert.Equal(t, "scheduled", selected.UID)
	})

	t.Run("excludes other calendar dates regardless of time", func(t *testing.T) {
		meetings := []*models.Meeting{
			acceptedMeeting("yesterday", "2026-03-13", "23:59", models.MeetingStatusScheduled),
			acceptedMeeting("tomorrow", "2026-03-15", "00:01", models.MeetingStatusScheduled),
		}

		assert.Nil(t, SelectTodayMeeting(meetings, "student-1", now))
	})

	t.Run("requires the student to have accepted", func(t *testing.T) {
		meeting := acceptedMeeting("today", "2026-03-14", "10:00", models.MeetingStatusScheduled)
		meeting.AcceptedStudents = []string{"someone-else"}

		assert.Nil(t, SelectTodayMeeting([]*models.Meeting{meeting}, "student-1", now))
	})

	t.Run("ongoing meetings still qualify", func(t *testing.T) {
		meeting := acceptedMeeting("today", "2026-03-14", "07:30", models.MeetingStatusOngoing)

		selected := SelectTodayMeeting([]*models.Meeting{meeting}, "student-1", now)

		require.NotNil(t, selected)
		assert.Equal(t, "today", selected.UID)
	})

	t.Run("missing time defaults to midnight and still matches the date", func(t *testing.T) {
		meeting := acceptedMeeting("today", "2026-03-14", "", models.MeetingStatusScheduled)

		selected := SelectTodayMeeting([]*models.Meeting{meeting}, "student-1", now)

		require.NotNil(t, selected)
	})

	t.Run("unparseable dates are skipped", func(t *testing.T) {
		meeting := acceptedMeeting("bad", "not-a-date", "10:00", models.MeetingStatusScheduled)

		assert.Nil(t, SelectTodayMeeting([]*models.Meeting{meeting}, "student-1", now))
	})

	t.Run("no meetings yields nil", func(t *testing.T) {
		assert.Nil(t, SelectTodayMeeting(nil, "student-1", now))
	})
}
