// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

// Package handlers wires the HTTP surface of the meeting service to the
// service layer.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mentorhub/meeting-service/internal/domain"
	"github.com/mentorhub/meeting-service/internal/domain/models"
	"github.com/mentorhub/meeting-service/internal/logging"
	"github.com/mentorhub/meeting-service/internal/service"
	"github.com/mentorhub/meeting-service/pkg/constants"
)

// MeetingHandlers exposes the meeting and invitation operations over HTTP.
type MeetingHandlers struct {
	meetingService    *service.MeetingService
	invitationService *service.InvitationService
}

// NewMeetingHandlers creates the HTTP handlers for the meeting service.
func NewMeetingHandlers(meetingService *service.MeetingService, invitationService *service.InvitationService) *MeetingHandlers {
	return &MeetingHandlers{
		meetingService:    meetingService,
		invitationService: invitationService,
	}
}

// RegisterRoutes mounts all meeting routes on the router. The fixed-path
// routes are registered before the {uid} route so chi matches them first.
func (h *MeetingHandlers) RegisterRoutes(r chi.Router) {
	r.Post("/meetings/accept", h.AcceptInvitation)
	r.Post("/meetings/reject", h.RejectInvitation)
	r.Get("/meetings/invitations", h.ListInvitations)
	r.Get("/meetings/today", h.TodayMeeting)
	r.Get("/meetings", h.ListMeetings)
	r.Post("/meetings", h.CreateMeeting)
	r.Get("/meetings/{uid}", h.GetMeeting)
	r.Put("/meetings/{uid}", h.UpdateMeeting)
	r.Delete("/meetings/{uid}", h.DeleteMeeting)
}

// invitationResponse is the body of a successful accept/reject call.
type invitationResponse struct {
	Success bool            `json:"success"`
	Meeting *models.Meeting `json:"meeting"`
}

// documentsResponse wraps list results.
type documentsResponse struct {
	Documents []*models.Meeting `json:"documents"`
}

// errorResponse is the generic error body. Internal detail never leaks
// through it.
type errorResponse struct {
	Error string `json:"error"`
}

// AcceptInvitation handles POST /meetings/accept.
func (h *MeetingHandlers) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, domain.NewValidationError("invalid request body"))
		return
	}

	meeting, err := h.invitationService.AcceptInvitation(ctx, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, invitationResponse{Success: true, Meeting: meeting})
}

// RejectInvitation handles POST /meetings/reject.
func (h *MeetingHandlers) RejectInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RejectInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, domain.NewValidationError("invalid request body"))
		return
	}

	meeting, err := h.invitationService.RejectInvitation(ctx, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, invitationResponse{Success: true, Meeting: meeting})
}

// ListInvitations handles GET /meetings/invitations. A missing studentId
// degrades to an empty documents list; store failures return 500 with the
// same empty shape so clients always get a parseable body.
func (h *MeetingHandlers) ListInvitations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := r.URL.Query().Get("studentId")

	meetings, err := h.invitationService.ListPendingInvitations(ctx, studentID)
	if err != nil {
		slog.ErrorContext(ctx, "error listing pending invitations", logging.ErrKey, err)
		writeJSON(ctx, w, http.StatusInternalServerError, documentsResponse{Documents: []*models.Meeting{}})
		return
	}

	writeJSON(ctx, w, http.StatusOK, documentsResponse{Documents: meetings})
}

// ListMeetings handles GET /meetings with studentId/mentorId filters.
func (h *MeetingHandlers) ListMeetings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := r.URL.Query().Get("studentId")
	mentorID := r.URL.Query().Get("mentorId")

	meetings, err := h.meetingService.ListMeetings(ctx, studentID, mentorID)
	if err != nil {
		slog.ErrorContext(ctx, "error listing meetings", logging.ErrKey, err)
		writeJSON(ctx, w, http.StatusInternalServerError, documentsResponse{Documents: []*models.Meeting{}})
		return
	}

	writeJSON(ctx, w, http.StatusOK, documentsResponse{Documents: meetings})
}

// TodayMeeting handles GET /meetings/today.
func (h *MeetingHandlers) TodayMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := r.URL.Query().Get("studentId")

	meetings, err := h.meetingService.GetTodayMeeting(ctx, studentID, time.Now())
	if err != nil {
		slog.ErrorContext(ctx, "error selecting today's meeting", logging.ErrKey, err)
		writeJSON(ctx, w, http.StatusInternalServerError, documentsResponse{Documents: []*models.Meeting{}})
		return
	}

	writeJSON(ctx, w, http.StatusOK, documentsResponse{Documents: meetings})
}

// CreateMeeting handles POST /meetings.
func (h *MeetingHandlers) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, domain.NewValidationError("invalid request body"))
		return
	}

	meeting, err := h.meetingService.CreateMeeting(ctx, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, meeting)
}

// GetMeeting handles GET /meetings/{uid}. The KV revision is surfaced as
// the ETag for conditional updates.
func (h *MeetingHandlers) GetMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")

	meeting, etag, err := h.meetingService.GetMeeting(ctx, uid)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set(constants.EtagHeader, etag)
	writeJSON(ctx, w, http.StatusOK, meeting)
}

// UpdateMeeting handles PUT /meetings/{uid}.
func (h *MeetingHandlers) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")

	var req models.UpdateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, domain.NewValidationError("invalid request body"))
		return
	}

	meeting, err := h.meetingService.UpdateMeeting(ctx, uid, &req, r.Header.Get(constants.IfMatchHeader))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, meeting)
}

// DeleteMeeting handles DELETE /meetings/{uid}. The body is an optional
// cancellation notice naming the students to email.
func (h *MeetingHandlers) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")

	var notice models.CancellationNotice
	if err := json.NewDecoder(r.Body).Decode(&notice); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, domain.NewValidationError("invalid request body"))
		return
	}

	if err := h.meetingService.DeleteMeeting(ctx, uid, r.Header.Get(constants.IfMatchHeader), &notice); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(ctx, "error encoding response body", logging.ErrKey, err)
	}
}

// writeError maps the domain error taxonomy to HTTP statuses. Only the
// domain error's own message is safe to show; wrapped store and transport
// errors stay in the logs.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var status int
	var message string

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		status = http.StatusBadRequest
	case domain.ErrorTypeNotFound:
		status = http.StatusNotFound
	case domain.ErrorTypeConflict:
		status = http.StatusConflict
	case domain.ErrorTypeUnavailable:
		status = http.StatusServiceUnavailable
		message = "service unavailable"
	default:
		status = http.StatusInternalServerError
		message = "internal server error"
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "request failed", logging.ErrKey, err, "status", status)
	} else {
		slog.DebugContext(ctx, "request rejected", logging.ErrKey, err, "status", status)
	}

	writeJSON(ctx, w, status, errorResponse{Error: message})
}
