// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/meeting-service/internal/domain"
	"github.com/mentorhub/meeting-service/internal/domain/models"
	"github.com/mentorhub/meeting-service/pkg/utils"
)

func newMeetingServiceForTest() (*MeetingService, *domain.MockMeetingRepository, *domain.MockMessageSender, *domain.MockEmailService) {
	repo := &domain.MockMeetingRepository{}
	sender := &domain.MockMessageSender{}
	emailSvc := &domain.MockEmailService{}
	repo.On("IsReady").Return(true).Maybe()
	svc := NewMeetingService(repo, sender, emailSvc, ServiceConfig{EmailWorkerCount: 2})
	return svc, repo, sender, emailSvc
}

func validCreateRequest() *models.CreateMeetingRequest {
	return &models.CreateMeetingRequest{
		MentorID:   "mentor-1",
		MentorName: "Grace",
		Title:      "Weekly Sync",
		Date:       "2026-03-14",
		Time:       "14:00",
		Duration:   45,
		InvitedStudents: []models.InvitedStudent{
			{StudentID: "student-1", Name: "Ada", Email: "ada@example.com"},
			{StudentID: "student-2", Name: "Alan"},
		},
	}
}

func TestMeetingService_CreateMeeting(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a scheduled meeting and fans out emails", func(t *testing.T) {
		svc, repo, sender, emailSvc := newMeetingServiceForTest()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		sender.On("SendIndexMeeting", mock.Anything, models.ActionCreated, mock.Anything).Return(nil).Once()
		emailSvc.On("SendInvitation", mock.Anything, mock.MatchedBy(func(inv domain.EmailInvitation) bool {
			return inv.RecipientEmail == "ada@example.com" && inv.Attachment != nil &&
				strings.Contains(string(inv.Attachment.Data), "mailto:ada@example.com")
		})).Return(nil).Once()

		meeting, err := svc.CreateMeeting(ctx, validCreateRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, meeting.UID)
		assert.Equal(t, models.MeetingStatusScheduled, meeting.Status)
		assert.Equal(t, []string{"student-1", "student-2"}, meeting.InvitedStudentIDs)
		assert.Empty(t, meeting.AcceptedStudents)
		assert.Empty(t, meeting.RejectedStudents)
		assert.NotNil(t, meeting.CreatedAt)
		repo.AssertExpectations(t)
		sender.AssertExpectations(t)
		// only the student with an email address gets one
		emailSvc.AssertNumberOfCalls(t, "SendInvitation", 1)
	})

	t.Run("email failures never fail the create", func(t *testing.T) {
		svc, repo, sender, emailSvc := newMeetingServiceForTest()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		sender.On("SendIndexMeeting", mock.Anything, models.ActionCreated, mock.Anything).Return(nil).Once()
		emailSvc.On("SendInvitation", mock.Anything, mock.Anything).
			Return(domain.NewInternalError("smtp down")).Once()

		_, err := svc.CreateMeeting(ctx, validCreateRequest())

		require.NoError(t, err)
	})

	t.Run("validation failures", func(t *testing.T) {
		svc, repo, _, _ := newMeetingServiceForTest()

		tests := []struct {
			name   string
			mutate func(*models.CreateMeetingRequest)
		}{
			{"missing title", func(r *models.CreateMeetingRequest) { r.Title = "" }},
			{"missing mentor", func(r *models.CreateMeetingRequest) { r.MentorID = "" }},
			{"bad date", func(r *models.CreateMeetingRequest) { r.Date = "14/03/2026" }},
			{"bad time", func(r *models.CreateMeetingRequest) { r.Time = "2pm" }},
			{"negative duration", func(r *models.CreateMeetingRequest) { r.Duration = -1 }},
			{"excessive duration", func(r *models.CreateMeetingRequest) { r.Duration = 601 }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validCreateRequest()
				tt.mutate(req)

				_, err := svc.CreateMeeting(ctx, req)

				require.Error(t, err)
				assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
			})
		}
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestMeetingService_GetMeeting(t *testing.T) {
	ctx := context.Background()

	t.Run("returns meeting with revision etag", func(t *testing.T) {
		svc, repo, _, _ := newMeetingServiceForTest()
		repo.On("GetWithRevision", mock.Anything, "meeting-1").Return(testMeeting(), uint64(42), nil).Once()

		meeting, etag, err := svc.GetMeeting(ctx, "meeting-1")

		require.NoError(t, err)
		assert.Equal(t, "meeting-1", meeting.UID)
		assert.Equal(t, "42", etag)
	})

	t.Run("missing UID is a validation error", func(t *testing.T) {
		svc, _, _, _ := newMeetingServiceForTest()

		_, _, err := svc.GetMeeting(ctx, "")

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})
}

func TestMeetingService_UpdateMeeting(t *testing.T) {
	ctx := context.Background()

	t.Run("applies mutable fields and keeps membership", func(t *testing.T) {
		svc, repo, sender, _ := newMeetingServiceForTest()
		stored := testMeeting()
		stored.AcceptedStudents = []string{"student-1"}
		repo.On("GetWithRevision", mock.Anything, "meeting-1").Return(stored, uint64(9), nil).Once()
		repo.On("Update", mock.Anything, mock.Anything, uint64(9)).Return(nil).Once()
		sender.On("SendIndexMeeting", mock.Anything, models.ActionUpdated, mock.Anything).Return(nil).Once()

		updated, err := svc.UpdateMeeting(ctx, "meeting-1", &models.UpdateMeetingRequest{
			Title:    utils.StringPtr("Renamed"),
			Duration: utils.IntPtr(30),
		}, "")

		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, 30, updated.Duration)
		assert.Equal(t, []string{"student-1"}, updated.AcceptedStudents)
		repo.AssertExpectations(t)
	})

	t.Run("honors If-Match revision", func(t *testing.T) {
		svc, repo, sender, _ := newMeetingServiceForTest()
		repo.On("GetWithRevision", mock.Anything, "meeting-1").Return(testMeeting(), uint64(9), nil).Once()
		repo.On("Update", mock.Anything, mock.Anything, uint64(5)).
			Return(domain.NewConflictError("meeting has been modified")).Once()
		sender.On("SendIndexMeeting", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		_, err := svc.UpdateMeeting(ctx, "meeting-1", &models.UpdateMeetingRequest{
			Title: utils.StringPtr("Renamed"),
		}, "5")

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
	})

	t.Run("malformed If-Match is a validation error", func(t *testing.T) {
		svc, repo, _, _ := newMeetingServiceForTest()
		repo.On("GetWithRevision", mock.Anything, "meeting-1").Return(testMeeting(), uint64(9), nil).Once()

		_, err := svc.UpdateMeeting(ctx, "meeting-1", &models.UpdateMeetingRequest{}, "not-a-revision")

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})

	t.Run("cancelling emails the students in the notice", func(t *testing.T) {
		svc, repo, sender, emailSvc := newMeetingServiceForTest()
		repo.On("GetWithRevision", mock.Anything, "meeting-1").Return(testMeeting(), uint64(9), nil).Once()
		repo.On("Update", mock.Anything, mock.Anything, uint64(9)).Return(nil).Once()
		sender.On("SendIndexMeeting", mock.Anything, models.ActionUpdated, mock.Anything).Return(nil).Once()
		emailSvc.On("SendCancellation", mock.Anything, mock.MatchedBy(func(c domain.EmailCancellation) bool {
			return c.RecipientEmail == "ada@example.com" && c.Reason == "mentor unavailable"
		})).Return(nil).Once()

		cancelled := models.MeetingStatusCancelled
		updated, err := svc.UpdateMeeting(ctx, "meeting-1", &models.UpdateMeetingRequest{
			Status: &cancelled,
			Cancellation: &models.CancellationNotice{
				Students: []models.InvitedStudent{
					{StudentID: "student-1", Name: "Ada", Email: "ada@example.com"},
					{StudentID: "student-2", Name: "Alan"},
				},
				Reason: "mentor unavailable",
			},
		}, "")

		require.NoError(t, err)
		assert.Equal(t, models.MeetingStatusCancelled, updated.Status)
		// only the student with an email address gets one
		emailSvc.AssertNumberOfCalls(t, "SendCancellation", 1)
	})

	t.Run("non-cancelling update sends no cancellation emails", func(t *testing.T) {
		svc, repo, sender, emailSvc := newMeetingServiceForTest()
		repo.On("GetWithRevision", mock.Anything, "meeting-1").Return(testMeeting(), uint64(9), nil).Once()
		repo.On("Update", mock.Anything, mock.Anything, uint64(9)).Return(nil).Once()
		sender.On("SendIndexMeeting", mock.Anything, models.ActionUpdated, mock.Anything).Return(nil).Once()

		_, err := svc.UpdateMeeting(ctx, "meeting-1", &models.UpdateMeetingRequest{
			Title: utils.StringPtr("Renamed"),
			Cancellation: &models.CancellationNotice{
				Students: []models.InvitedStudent{{StudentID: "student-1", Email: "ada@example.com"}},
			},
		}, "")

		require.NoError(t, err)
		emailSvc.AssertNotCalled(t, "SendCancellation", mock.Anything, mock.Anything)
	})

	t.Run("already cancelled meeting is not re-notified", func(t *testing.T) {
		svc, repo, sender, emailSvc := newMeetingServiceForTest()
		stored := testMeeting()
		stored.Status = models.MeetingStatusCancelled
		repo.On("GetWithRevision", mock.Anything, "meeting-1").Return(stored, uint64(9), nil).Once()
		repo.On("Update", mock.Anything, mock.Anything, uint64(9)).Return(nil).Once()
		sender.On("SendIndexMeeting", mock.Anything, models.ActionUpdated, mock.Anything).Return(nil).Once()

		cancelled := models.MeetingStatusCancelled
		_, err := svc.UpdateMeeting(ctx, "meeting-1", &models.UpdateMeetingRequest{
			Status: &cancelled,
			Cancellation: &models.CancellationNotice{
				Students: []models.InvitedStudent{{StudentID: "student-1", Email: "ada@example.com"}},
			},
		}, "")

		require.NoError(t, err)
		emailSvc.AssertNotCalled(t, "SendCancellation", mock.Anything, mock.Anything)
	})
}

func TestMeetingService_DeleteMeeting(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and publishes deletion messages", func(t *testing.T) {
		svc, repo, sender, _ := newMeetingServiceForTest()
		repo.On("GetWithRevision", mock.Anything, "meeting-1").Return(testMeeting(), uint64(4), nil).Once()
		repo.On("Delete", mock.Anything, "meeting-1", uint64(4)).Return(nil).Once()
		sender.On("SendDeleteIndexMeeting", mock.Anything, "meeting-1").Return(nil).Once()
		sender.On("SendMeetingDeleted", mock.Anything, models.MeetingDeletedMessage{MeetingUID: "meeting-1"}).Return(nil).Once()

		err := svc.DeleteMeeting(ctx, "meeting-1", "", nil)

		require.NoError(t, err)
		repo.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("emails the students in the notice", func(t *testing.T) {
		svc, repo, sender, emailSvc := newMeetingServiceForTest()
		repo.On("GetWithRevision", mock.Anything, "meeting-1").Return(testMeeting(), uint64(4), nil).Once()
		repo.On("Delete", mock.Anything, "meeting-1", uint64(4)).Return(nil).Once()
		sender.On("SendDeleteIndexMeeting", mock.Anything, "meeting-1").Return(nil).Once()
		sender.On("SendMeetingDeleted", mock.Anything, mock.Anything).Return(nil).Once()
		emailSvc.On("SendCancellation", mock.Anything, mock.MatchedBy(func(c domain.EmailCancellation) bool {
			return c.RecipientEmail == "ada@example.com" && c.MeetingTitle == testMeeting().Title
		})).Return(nil).Once()

		err := svc.DeleteMeeting(ctx, "meeting-1", "", &models.CancellationNotice{
			Students: []models.InvitedStudent{{StudentID: "student-1", Name: "Ada", Email: "ada@example.com"}},
		})

		require.NoError(t, err)
		emailSvc.AssertExpectations(t)
	})

	t.Run("cancellation email failures never fail the delete", func(t *testing.T) {
		svc, repo, sender, emailSvc := newMeetingServiceForTest()
		repo.On("GetWithRevision", mock.Anything, "meeting-1").Return(testMeeting(), uint64(4), nil).Once()
		repo.On("Delete", mock.Anything, "meeting-1", uint64(4)).Return(nil).Once()
		sender.On("SendDeleteIndexMeeting", mock.Anything, "meeting-1").Return(nil).Once()
		sender.On("SendMeetingDeleted", mock.Anything, mock.Anything).Return(nil).Once()
		emailSvc.On("SendCancellation", mock.Anything, mock.Anything).
			Return(domain.NewInternalError("smtp down")).Once()

		err := svc.DeleteMeeting(ctx, "meeting-1", "", &models.CancellationNotice{
			Students: []models.InvitedStudent{{StudentID: "student-1", Email: "ada@example.com"}},
		})

		require.NoError(t, err)
	})

	t.Run("missing meeting surfaces as not found", func(t *testing.T) {
		svc, repo, _, _ := newMeetingServiceForTest()
		repo.On("GetWithRevision", mock.Anything, "missing").
			Return(nil, uint64(0), domain.NewNotFoundError("meeting not found")).Once()

		err := svc.DeleteMeeting(ctx, "missing", "", nil)

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
	})
}

func TestMeetingService_ListMeetings(t *testing.T) {
	ctx := context.Background()

	t.Run("student filter lists accepted meetings", func(t *testing.T) {
		svc, repo, _, _ := newMeetingServiceForTest()
		repo.On("ListByAcceptedStudent", mock.Anything, "student-1").
			Return([]*models.Meeting{testMeeting()}, nil).Once()

		result, err := svc.ListMeetings(ctx, "student-1", "")

		require.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("both filters intersect", func(t *testing.T) {
		svc, repo, _, _ := newMeetingServiceForTest()
		mine := testMeeting()
		other := testMeeting()
		other.UID = "meeting-2"
		other.MentorID = "someone-else"
		repo.On("ListByAcceptedStudent", mock.Anything, "student-1").
			Return([]*models.Meeting{mine, other}, nil).Once()

		result, err := svc.ListMeetings(ctx, "student-1", "mentor-1")

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "meeting-1", result[0].UID)
	})

	t.Run("no filters degrades to empty list", func(t *testing.T) {
		svc, repo, _, _ := newMeetingServiceForTest()

		result, err := svc.ListMeetings(ctx, "", "")

		require.NoError(t, err)
		assert.Empty(t, result)
		repo.AssertNotCalled(t, "ListAll", mock.Anything)
	})
}

func TestMeetingService_GetTodayMeeting(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

	t.Run("returns the single selected meeting", func(t *testing.T) {
		svc, repo, _, _ := newMeetingServiceForTest()
		today := testMeeting()
		today.AcceptedStudents = []string{"student-1"}
		repo.On("ListByAcceptedStudent", mock.Anything, "student-1").
			Return([]*models.Meeting{today}, nil).Once()

		result, err := svc.GetTodayMeeting(ctx, "student-1", now)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "meeting-1", result[0].UID)
	})

	t.Run("no qualifying meeting yields empty list", func(t *testing.T) {
		svc, repo, _, _ := newMeetingServiceForTest()
		repo.On("ListByAcceptedStudent", mock.Anything, "student-1").
			Return([]*models.Meeting{}, nil).Once()

		result, err := svc.GetTodayMeeting(ctx, "student-1", now)

		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("missing student ID degrades to empty list", func(t *testing.T) {
		svc, repo, _, _ := newMeetingServiceForTest()

		result, err := svc.GetTodayMeeting(ctx, "", now)

		require.NoError(t, err)
		assert.Empty(t, result)
		repo.AssertNotCalled(t, "ListByAcceptedStudent", mock.Anything, mock.Anything)
	})
}
