// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mentorhub/meeting-service/internal/domain"
	"github.com/mentorhub/meeting-service/internal/domain/models"
	"github.com/mentorhub/meeting-service/internal/logging"
	"github.com/mentorhub/meeting-service/pkg/constants"
)

// InvitationService implements the accept/reject flow for meeting
// invitations and the pending-invitation query.
type InvitationService struct {
	meetingRepository domain.MeetingRepository
	messageSender     domain.MessageSender
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(
	meetingRepository domain.MeetingRepository,
	messageSender domain.MessageSender,
) *InvitationService {
	return &InvitationService{
		meetingRepository: meetingRepository,
		messageSender:     messageSender,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *InvitationService) ServiceReady() bool {
	return s.meetingRepository != nil &&
		s.messageSender != nil &&
		s.meetingRepository.IsReady()
}

// AcceptInvitation records the student's acceptance on the meeting and
// returns the updated document. Accepting twice is a no-op that still
// succeeds with the current document.
func (s *InvitationService) AcceptInvitation(ctx context.Context, req *models.AcceptInvitationRequest) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("invitation service is not ready")
	}
	if req == nil || req.MeetingUID == "" || req.StudentID == "" {
		return nil, domain.NewValidationError("meetingId and studentId are required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", req.MeetingUID))
	ctx = logging.AppendCtx(ctx, slog.String("student_id", req.StudentID))

	meeting, changed, err := s.mutateMembership(ctx, req.MeetingUID, func(m *models.Meeting) bool {
		return m.AddAcceptedStudent(req.StudentID)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.publishResponse(ctx, meeting, models.InvitationRespondedMessage{
			MeetingUID: meeting.UID,
			StudentID:  req.StudentID,
			Response:   models.InvitationAccepted,
		})
	}

	slog.InfoContext(ctx, "invitation accepted", "changed", changed)
	return meeting, nil
}

// RejectInvitation records the student's rejection and their reason on the
// meeting and returns the updated document. Rejecting again with a new
// reason overwrites the stored reason.
func (s *InvitationService) RejectInvitation(ctx context.Context, req *models.RejectInvitationRequest) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("invitation service is not ready")
	}
	if req == nil || req.MeetingUID == "" || req.StudentID == "" {
		return nil, domain.NewValidationError("meetingId and studentId are required")
	}
	// The reason is validated before any store access.
	if err := models.ValidateRejectionReason(req.Reason); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", req.MeetingUID))
	ctx = logging.AppendCtx(ctx, slog.String("student_id", req.StudentID))

	meeting, changed, err := s.mutateMembership(ctx, req.MeetingUID, func(m *models.Meeting) bool {
		return m.AddRejectedStudent(ctx, req.StudentID, req.Reason)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.publishResponse(ctx, meeting, models.InvitationRespondedMessage{
			MeetingUID: meeting.UID,
			StudentID:  req.StudentID,
			Response:   models.InvitationRejected,
			Reason:     req.Reason,
		})
	}

	slog.InfoContext(ctx, "invitation rejected", "changed", changed)
	return meeting, nil
}

// mutateMembership runs a read-reduce-write cycle against the store with
// optimistic concurrency. Every membership mutation goes through this path:
// the meeting is fetched with its revision, the reducer is applied, and the
// write carries the revision so concurrent writers cannot silently drop
// each other's updates. On a revision conflict the whole cycle is retried
// up to MaxMembershipWriteAttempts before surfacing the conflict.
func (s *InvitationService) mutateMembership(ctx context.Context, meetingUID string, reduce func(*models.Meeting) bool) (*models.Meeting, bool, error) {
	for attempt := 0; attempt < constants.MaxMembershipWriteAttempts; attempt++ {
		meeting, revision, err := s.meetingRepository.GetWithRevision(ctx, meetingUID)
		if err != nil {
			return nil, false, err
		}

		if meeting.Status.IsTerminal() {
			return nil, false, domain.NewValidationError(
				fmt.Sprintf("meeting is %s and no longer accepts invitation responses", meeting.Status))
		}

		if changed := reduce(meeting); !changed {
			// Nothing to write; the stored document already reflects the
			// requested state.
			return meeting, false, nil
		}

		now := time.Now().UTC()
		meeting.UpdatedAt = &now

		err = s.meetingRepository.Update(ctx, meeting, revision)
		if err == nil {
			return meeting, true, nil
		}
		if domain.GetErrorType(err) != domain.ErrorTypeConflict {
			return nil, false, err
		}

		slog.DebugContext(ctx, "revision conflict updating meeting membership, retrying",
			"attempt", attempt+1, "revision", revision)
	}

	return nil, false, domain.NewConflictError(
		fmt.Sprintf("meeting %s was modified concurrently too many times", meetingUID))
}

// publishResponse sends the index update and the invitation-responded event
// for a successful mutation. Publish failures are logged and never fail the
// request.
func (s *InvitationService) publishResponse(ctx context.Context, meeting *models.Meeting, event models.InvitationRespondedMessage) {
	if err := s.messageSender.SendIndexMeeting(ctx, models.ActionUpdated, *meeting); err != nil {
		slog.ErrorContext(ctx, "failed to send index message for updated meeting", logging.ErrKey, err)
	}
	if err := s.messageSender.SendInvitationResponded(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to send invitation responded event", logging.ErrKey, err)
	}
}

// ListPendingInvitations returns the meetings the student is invited to but
// has neither accepted nor rejected. A missing student ID or an unready
// repository degrades to an empty list rather than an error, matching the
// read-path contract of the invitations endpoint.
func (s *InvitationService) ListPendingInvitations(ctx context.Context, studentID string) ([]*models.Meeting, error) {
	if studentID == "" || s.meetingRepository == nil || !s.meetingRepository.IsReady() {
		return []*models.Meeting{}, nil
	}

	ctx = logging.AppendCtx(ctx, slog.String("student_id", studentID))

	invited, err := s.meetingRepository.ListByInvitedStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	pending := make([]*models.Meeting, 0, len(invited))
	for _, meeting := range invited {
		if meeting.HasPendingInvitation(studentID) {
			pending = append(pending, meeting)
		}
	}

	slog.DebugContext(ctx, "returning pending invitations", "count", len(pending))
	return pending, nil
}
