// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mentorhub/meeting-service/internal/domain"
	"github.com/mentorhub/meeting-service/internal/domain/models"
	"github.com/mentorhub/meeting-service/internal/infrastructure/email"
	"github.com/mentorhub/meeting-service/internal/logging"
	"github.com/mentorhub/meeting-service/pkg/concurrent"
	"github.com/mentorhub/meeting-service/pkg/constants"
)

// MeetingService implements the mentor-facing meeting CRUD operations, the
// meeting listing queries, and the today's-meeting selection.
type MeetingService struct {
	meetingRepository domain.MeetingRepository
	messageSender     domain.MessageSender
	emailService      domain.EmailService
	icsGenerator      *email.ICSGenerator
	config            ServiceConfig
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(
	meetingRepository domain.MeetingRepository,
	messageSender domain.MessageSender,
	emailService domain.EmailService,
	config ServiceConfig,
) *MeetingService {
	return &MeetingService{
		meetingRepository: meetingRepository,
		messageSender:     messageSender,
		emailService:      emailService,
		icsGenerator:      email.NewICSGenerator(),
		config:            config,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *MeetingService) ServiceReady() bool {
	return s.meetingRepository != nil &&
		s.messageSender != nil &&
		s.emailService != nil &&
		s.meetingRepository.IsReady()
}

func (s *MeetingService) validateCreateRequest(req *models.CreateMeetingRequest) error {
	if req == nil {
		return domain.NewValidationError("request body is required")
	}
	if req.Title == "" {
		return domain.NewValidationError("title is required")
	}
	if req.MentorID == "" {
		return domain.NewValidationError("mentorId is required")
	}
	if _, err := time.Parse(constants.MeetingDateLayout, req.Date); err != nil {
		return domain.NewValidationError(fmt.Sprintf("date must be in %s format", constants.MeetingDateLayout))
	}
	if req.Time != "" {
		if _, err := time.Parse(constants.MeetingTimeLayout, req.Time); err != nil {
			return domain.NewValidationError(fmt.Sprintf("time must be in %s format", constants.MeetingTimeLayout))
		}
	}
	if req.Duration < 0 || req.Duration > constants.MaxMeetingDurationMinutes {
		return domain.NewValidationError(
			fmt.Sprintf("duration must be between 0 and %d minutes", constants.MaxMeetingDurationMinutes))
	}
	return nil
}

// CreateMeeting schedules a new meeting and fans out invitation emails to
// the invited students. Email failures never fail the create.
func (s *MeetingService) CreateMeeting(ctx context.Context, req *models.CreateMeetingRequest) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	meeting := req.ToMeeting(uuid.New().String(), time.Now().UTC())

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meeting.UID))
	ctx = logging.AppendCtx(ctx, slog.String("mentor_id", meeting.MentorID))

	if err := s.meetingRepository.Create(ctx, meeting); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "created meeting", "invited_count", len(meeting.InvitedStudentIDs))

	if err := s.messageSender.SendIndexMeeting(ctx, models.ActionCreated, *meeting); err != nil {
		slog.ErrorContext(ctx, "failed to send index message for created meeting", logging.ErrKey, err)
	}

	s.sendInvitationEmails(ctx, meeting, req.InvitedStudents)

	return meeting, nil
}

// sendInvitationEmails fans out invitation emails to the invited students
// concurrently. Each email is best-effort: failures are logged per
// recipient and the create is never failed.
func (s *MeetingService) sendInvitationEmails(ctx context.Context, meeting *models.Meeting, students []models.InvitedStudent) {
	start, startErr := meeting.StartsAt(time.UTC)
	if startErr != nil {
		slog.WarnContext(ctx, "meeting has no parseable start time, sending emails without calendar entry",
			logging.ErrKey, startErr)
	}

	tasks := make([]func() error, 0, len(students))
	for _, student := range students {
		student := student
		if student.Email == "" {
			continue
		}
		tasks = append(tasks, func() error {
			return s.emailService.SendInvitation(ctx, domain.EmailInvitation{
				RecipientEmail:  student.Email,
				RecipientName:   student.Name,
				MeetingTitle:    meeting.Title,
				MentorName:      meeting.MentorName,
				StartTime:       start,
				Duration:        meeting.Duration,
				Description:     meeting.Description,
				Purpose:         meeting.Purpose,
				MeetingURL:      meeting.MeetingURL,
				MeetingPassword: meeting.MeetingPassword,
				Attachment:      s.invitationAttachment(ctx, meeting, start, startErr == nil, student.Email),
			})
		})
	}
	if len(tasks) == 0 {
		return
	}

	pool := concurrent.NewWorkerPool(s.config.EmailWorkerCount)
	for _, err := range pool.RunAll(ctx, tasks...) {
		slog.ErrorContext(ctx, "failed to send invitation email", logging.ErrKey, err)
	}
}

// invitationAttachment builds the calendar entry for one recipient. The
// attendee line in the ICS names the recipient, so the entry is generated
// per email rather than shared across the fan-out.
func (s *MeetingService) invitationAttachment(ctx context.Context, meeting *models.Meeting, start time.Time, hasStart bool, recipientEmail string) *domain.EmailAttachment {
	if !hasStart {
		return nil
	}

	icsContent, err := s.icsGenerator.GenerateMeetingInvitationICS(email.ICSMeetingInvitationParams{
		MeetingUID:      meeting.UID,
		MeetingTitle:    meeting.Title,
		Description:     meeting.Description,
		StartTime:       start,
		DurationMinutes: meeting.Duration,
		MentorName:      meeting.MentorName,
		MeetingURL:      meeting.MeetingURL,
		RecipientEmail:  recipientEmail,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to generate calendar entry for invitation email", logging.ErrKey, err)
		return nil
	}

	return &domain.EmailAttachment{
		Filename:    "meeting_invitation.ics",
		ContentType: "text/calendar; method=REQUEST",
		Data:        []byte(icsContent),
	}
}

// sendCancellationEmails notifies the students named in the notice that the
// meeting is off. Best-effort with the same per-recipient error handling as
// the invitation fan-out.
func (s *MeetingService) sendCancellationEmails(ctx context.Context, meeting *models.Meeting, notice *models.CancellationNotice) {
	if notice == nil {
		return
	}

	start, err := meeting.StartsAt(time.UTC)
	if err != nil {
		slog.WarnContext(ctx, "meeting has no parseable start time for cancellation emails", logging.ErrKey, err)
	}

	tasks := make([]func() error, 0, len(notice.Students))
	for _, student := range notice.Students {
		student := student
		if student.Email == "" {
			continue
		}
		tasks = append(tasks, func() error {
			return s.emailService.SendCancellation(ctx, domain.EmailCancellation{
				RecipientEmail: student.Email,
				RecipientName:  student.Name,
				MeetingTitle:   meeting.Title,
				MentorName:     meeting.MentorName,
				StartTime:      start,
				Reason:         notice.Reason,
			})
		})
	}
	if len(tasks) == 0 {
		return
	}

	pool := concurrent.NewWorkerPool(s.config.EmailWorkerCount)
	for _, err := range pool.RunAll(ctx, tasks...) {
		slog.ErrorContext(ctx, "failed to send cancellation email", logging.ErrKey, err)
	}
}

// GetMeeting fetches one meeting; the returned revision doubles as the ETag
// for conditional updates.
func (s *MeetingService) GetMeeting(ctx context.Context, meetingUID string) (*models.Meeting, string, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, "", domain.NewUnavailableError("meeting service is not ready")
	}
	if meetingUID == "" {
		return nil, "", domain.NewValidationError("meeting UID is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, revision, err := s.meetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, "", err
	}

	return meeting, strconv.FormatUint(revision, 10), nil
}

// UpdateMeeting replaces the mentor-mutable fields of a meeting. When an
// If-Match revision is provided it is honored; otherwise the current
// revision is used, unless ETag validation is skipped for local
// development.
func (s *MeetingService) UpdateMeeting(ctx context.Context, meetingUID string, req *models.UpdateMeetingRequest, ifMatch string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}
	if meetingUID == "" {
		return nil, domain.NewValidationError("meeting UID is required")
	}
	if req == nil {
		return nil, domain.NewValidationError("request body is required")
	}
	if req.Date != nil {
		if _, err := time.Parse(constants.MeetingDateLayout, *req.Date); err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("date must be in %s format", constants.MeetingDateLayout))
		}
	}
	if req.Time != nil && *req.Time != "" {
		if _, err := time.Parse(constants.MeetingTimeLayout, *req.Time); err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("time must be in %s format", constants.MeetingTimeLayout))
		}
	}
	if req.Duration != nil && (*req.Duration < 0 || *req.Duration > constants.MaxMeetingDurationMinutes) {
		return nil, domain.NewValidationError(
			fmt.Sprintf("duration must be between 0 and %d minutes", constants.MaxMeetingDurationMinutes))
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, revision, err := s.meetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}
	previousStatus := meeting.Status

	if ifMatch != "" && !s.config.SkipEtagValidation {
		parsed, parseErr := strconv.ParseUint(ifMatch, 10, 64)
		if parseErr != nil {
			return nil, domain.NewValidationError("If-Match header must be a revision number")
		}
		revision = parsed
	}

	req.Apply(meeting)
	now := time.Now().UTC()
	meeting.UpdatedAt = &now

	if err := s.meetingRepository.Update(ctx, meeting, revision); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "updated meeting")

	if err := s.messageSender.SendIndexMeeting(ctx, models.ActionUpdated, *meeting); err != nil {
		slog.ErrorContext(ctx, "failed to send index message for updated meeting", logging.ErrKey, err)
	}

	if meeting.Status == models.MeetingStatusCancelled && previousStatus != models.MeetingStatusCancelled {
		s.sendCancellationEmails(ctx, meeting, req.Cancellation)
	}

	return meeting, nil
}

// DeleteMeeting removes a meeting and publishes the deletion to interested
// consumers. When the notice names students they are emailed that the
// meeting is cancelled.
func (s *MeetingService) DeleteMeeting(ctx context.Context, meetingUID string, ifMatch string, notice *models.CancellationNotice) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("meeting service is not ready")
	}
	if meetingUID == "" {
		return domain.NewValidationError("meeting UID is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, revision, err := s.meetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return err
	}

	if ifMatch != "" && !s.config.SkipEtagValidation {
		parsed, parseErr := strconv.ParseUint(ifMatch, 10, 64)
		if parseErr != nil {
			return domain.NewValidationError("If-Match header must be a revision number")
		}
		revision = parsed
	}

	if err := s.meetingRepository.Delete(ctx, meetingUID, revision); err != nil {
		return err
	}

	slog.InfoContext(ctx, "deleted meeting")

	pool := concurrent.NewWorkerPool(2)
	for _, err := range pool.RunAll(ctx,
		func() error {
			return s.messageSender.SendDeleteIndexMeeting(ctx, meetingUID)
		},
		func() error {
			return s.messageSender.SendMeetingDeleted(ctx, models.MeetingDeletedMessage{MeetingUID: meetingUID})
		},
	) {
		slog.ErrorContext(ctx, "failed to send meeting deletion message", logging.ErrKey, err)
	}

	s.sendCancellationEmails(ctx, meeting, notice)

	return nil
}

// ListMeetings returns meetings filtered by accepted student and/or mentor.
// Both filters present means intersection. With no usable repository or no
// filter at all, the result degrades to an empty list.
func (s *MeetingService) ListMeetings(ctx context.Context, studentID, mentorID string) ([]*models.Meeting, error) {
	if s.meetingRepository == nil || !s.meetingRepository.IsReady() {
		return []*models.Meeting{}, nil
	}

	switch {
	case studentID != "" && mentorID != "":
		meetings, err := s.meetingRepository.ListByAcceptedStudent(ctx, studentID)
		if err != nil {
			return nil, err
		}
		filtered := make([]*models.Meeting, 0, len(meetings))
		for _, meeting := range meetings {
			if meeting.MentorID == mentorID {
				filtered = append(filtered, meeting)
			}
		}
		return filtered, nil
	case studentID != "":
		return s.meetingRepository.ListByAcceptedStudent(ctx, studentID)
	case mentorID != "":
		return s.meetingRepository.ListByMentor(ctx, mentorID)
	default:
		return []*models.Meeting{}, nil
	}
}

// GetTodayMeeting returns the zero-or-one meeting the student should join
// today.
func (s *MeetingService) GetTodayMeeting(ctx context.Context, studentID string, now time.Time) ([]*models.Meeting, error) {
	if studentID == "" || s.meetingRepository == nil || !s.meetingRepository.IsReady() {
		return []*models.Meeting{}, nil
	}

	ctx = logging.AppendCtx(ctx, slog.String("student_id", studentID))

	accepted, err := s.meetingRepository.ListByAcceptedStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	selected := SelectTodayMeeting(accepted, studentID, now)
	if selected == nil {
		return []*models.Meeting{}, nil
	}

	slog.DebugContext(ctx, "selected today's meeting", "meeting_uid", selected.UID)
	return []*models.Meeting{selected}, nil
}
