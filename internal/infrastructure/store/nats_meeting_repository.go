// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

// Package store contains the NATS JetStream key-value storage backends for
// the meeting service.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mentorhub/meeting-service/internal/domain"
	"github.com/mentorhub/meeting-service/internal/domain/models"
	"github.com/mentorhub/meeting-service/internal/logging"
)

// NATS Key-Value store bucket names.
const (
	// KVStoreNameMeetings is the name of the KV store for meetings.
	KVStoreNameMeetings = "meetings"
)

// tracerName is the instrumentation name for the store package.
const tracerName = "github.com/mentorhub/meeting-service/internal/infrastructure/store"

// INatsKeyValue is the NATS KV interface needed by the meeting repository.
// It matches jetstream.KeyValue and allows for mocking in tests.
type INatsKeyValue interface {
	ListKeys(context.Context, ...jetstream.WatchOpt) (jetstream.KeyLister, error)
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(context.Context, string, []byte) (uint64, error)
	Update(context.Context, string, []byte, uint64) (uint64, error)
	Delete(context.Context, string, ...jetstream.KVDeleteOpt) error
}

// NatsMeetingRepository is the NATS KV store repository for meetings.
type NatsMeetingRepository struct {
	Meetings INatsKeyValue
}

// NewNatsMeetingRepository creates a new NATS KV store repository for meetings.
func NewNatsMeetingRepository(meetings INatsKeyValue) *NatsMeetingRepository {
	return &NatsMeetingRepository{
		Meetings: meetings,
	}
}

// IsReady reports whether the repository has a usable KV store behind it.
func (s *NatsMeetingRepository) IsReady() bool {
	return s.Meetings != nil
}

func (s *NatsMeetingRepository) get(ctx context.Context, meetingUID string) (jetstream.KeyValueEntry, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "nats.kv.get",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "nats"),
			attribute.String("db.operation", "get"),
			attribute.String("db.nats.key", meetingUID),
		),
	)
	defer span.End()

	if !s.IsReady() {
		err := domain.NewUnavailableError("meeting repository is not available")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	entry, err := s.Meetings.Get(ctx, meetingUID)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			err = domain.NewNotFoundError(
				fmt.Sprintf("meeting with uid '%s' not found", meetingUID), err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "not found")
			return nil, err
		}
		slog.ErrorContext(ctx, "error getting meeting from NATS KV",
			logging.ErrKey, err, "meeting_uid", meetingUID)
		err = domain.NewInternalError("failed to retrieve meeting from store", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return entry, nil
}

func (s *NatsMeetingRepository) unmarshal(ctx context.Context, entry jetstream.KeyValueEntry) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := json.Unmarshal(entry.Value(), &meeting); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling meeting", logging.ErrKey, err)
		return nil, domain.NewInternalError("failed to unmarshal meeting data", err)
	}
	return &meeting, nil
}

// Get retrieves a meeting by UID.
func (s *NatsMeetingRepository) Get(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	meeting, _, err := s.GetWithRevision(ctx, meetingUID)
	return meeting, err
}

// GetWithRevision retrieves a meeting along with its KV revision, which the
// caller passes back to Update for optimistic concurrency control.
func (s *NatsMeetingRepository) GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error) {
	entry, err := s.get(ctx, meetingUID)
	if err != nil {
		return nil, 0, err
	}

	meeting, err := s.unmarshal(ctx, entry)
	if err != nil {
		return nil, 0, err
	}

	return meeting, entry.Revision(), nil
}

// Exists checks whether a meeting exists in the store.
func (s *NatsMeetingRepository) Exists(ctx context.Context, meetingUID string) (bool, error) {
	_, err := s.get(ctx, meetingUID)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create stores a new meeting document keyed by its UID.
func (s *NatsMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "nats.kv.put",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "nats"),
			attribute.String("db.operation", "put"),
			attribute.String("db.nats.key", meeting.UID),
		),
	)
	defer span.End()

	if !s.IsReady() {
		err := domain.NewUnavailableError("meeting repository is not available")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	data, err := json.Marshal(meeting)
	if err != nil {
		slog.ErrorContext(ctx, "error marshaling meeting", logging.ErrKey, err)
		err = domain.NewInternalError("failed to marshal meeting", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if _, err := s.Meetings.Put(ctx, meeting.UID, data); err != nil {
		slog.ErrorContext(ctx, "error creating meeting in NATS KV",
			logging.ErrKey, err, "meeting_uid", meeting.UID)
		err = domain.NewInternalError("failed to create meeting in store", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Update writes a meeting back with optimistic concurrency control: the
// write succeeds only if the document's revision still matches.
func (s *NatsMeetingRepository) Update(ctx context.Context, meeting *models.Meeting, revision uint64) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "nats.kv.update",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "nats"),
			attribute.String("db.operation", "update"),
			attribute.String("db.nats.key", meeting.UID),
			attribute.Int64("db.nats.revision", int64(revision)),
		),
	)
	defer span.End()

	if !s.IsReady() {
		err := domain.NewUnavailableError("meeting repository is not available")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	data, err := json.Marshal(meeting)
	if err != nil {
		slog.ErrorContext(ctx, "error marshaling meeting", logging.ErrKey, err)
		err = domain.NewInternalError("failed to marshal meeting", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if _, err := s.Meetings.Update(ctx, meeting.UID, data, revision); err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			err = domain.NewNotFoundError("meeting not found", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "not found")
			return err
		}
		if strings.Contains(err.Error(), "wrong last sequence") {
			err = domain.NewConflictError("meeting has been modified", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "conflict")
			return err
		}
		slog.ErrorContext(ctx, "error updating meeting in NATS KV",
			logging.ErrKey, err, "meeting_uid", meeting.UID, "revision", revision)
		err = domain.NewInternalError("failed to update meeting in store", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Delete removes a meeting with optimistic concurrency control.
func (s *NatsMeetingRepository) Delete(ctx context.Context, meetingUID string, revision uint64) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "nats.kv.delete",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "nats"),
			attribute.String("db.operation", "delete"),
			attribute.String("db.nats.key", meetingUID),
			attribute.Int64("db.nats.revision", int64(revision)),
		),
	)
	defer span.End()

	if !s.IsReady() {
		err := domain.NewUnavailableError("meeting repository is not available")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err := s.Meetings.Delete(ctx, meetingUID, jetstream.LastRevision(revision))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			err = domain.NewNotFoundError("meeting not found", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "not found")
			return err
		}
		if strings.Contains(err.Error(), "wrong last sequence") {
			err = domain.NewConflictError("meeting has been modified", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "conflict")
			return err
		}
		slog.ErrorContext(ctx, "error deleting meeting from NATS KV",
			logging.ErrKey, err, "meeting_uid", meetingUID, "revision", revision)
		err = domain.NewInternalError("failed to delete meeting from store", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// ListAll returns every meeting in the bucket.
func (s *NatsMeetingRepository) ListAll(ctx context.Context) ([]*models.Meeting, error) {
	if !s.IsReady() {
		return nil, domain.NewUnavailableError("meeting repository is not available")
	}

	keysLister, err := s.Meetings.ListKeys(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "error listing meeting keys from NATS KV store", logging.ErrKey, err)
		return nil, domain.NewInternalError("failed to list meetings from store", err)
	}

	meetings := []*models.Meeting{}
	for key := range keysLister.Keys() {
		entry, err := s.get(ctx, key)
		if err != nil {
			if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
				// Key deleted between the listing and the get.
				continue
			}
			slog.ErrorContext(ctx, "error getting meeting from NATS KV store",
				logging.ErrKey, err, "meeting_uid", key)
			return nil, err
		}

		meeting, err := s.unmarshal(ctx, entry)
		if err != nil {
			slog.ErrorContext(ctx, "error unmarshaling meeting from NATS KV store",
				logging.ErrKey, err, "meeting_uid", key)
			return nil, err
		}

		meetings = append(meetings, meeting)
	}

	return meetings, nil
}

// listFiltered scans the bucket and keeps the meetings matching the
// predicate. The KV store has no server-side array filter; the per-mentor
// class size keeps the scan bounded.
func (s *NatsMeetingRepository) listFiltered(ctx context.Context, keep func(*models.Meeting) bool) ([]*models.Meeting, error) {
	meetings, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := []*models.Meeting{}
	for _, meeting := range meetings {
		if keep(meeting) {
			filtered = append(filtered, meeting)
		}
	}
	return filtered, nil
}

// ListByMentor returns the meetings owned by the given mentor.
func (s *NatsMeetingRepository) ListByMentor(ctx context.Context, mentorID string) ([]*models.Meeting, error) {
	return s.listFiltered(ctx, func(m *models.Meeting) bool {
		return m.MentorID == mentorID
	})
}

// ListByInvitedStudent returns the meetings whose invited set contains the student.
func (s *NatsMeetingRepository) ListByInvitedStudent(ctx context.Context, studentID string) ([]*models.Meeting, error) {
	return s.listFiltered(ctx, func(m *models.Meeting) bool {
		return m.IsInvited(studentID)
	})
}

// ListByAcceptedStudent returns the meetings whose accepted set contains the student.
func (s *NatsMeetingRepository) ListByAcceptedStudent(ctx context.Context, studentID string) ([]*models.Meeting, error) {
	return s.listFiltered(ctx, func(m *models.Meeting) bool {
		return m.HasAccepted(studentID)
	})
}
