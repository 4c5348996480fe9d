// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/mentorhub/meeting-service/internal/domain/models"
)

// MeetingRepository defines the interface for meeting storage operations.
// This interface can be implemented by different storage backends (NATS KV,
// PostgreSQL, etc.)
type MeetingRepository interface {
	// Meeting full operations
	Create(ctx context.Context, meeting *models.Meeting) error
	Exists(ctx context.Context, meetingUID string) (bool, error)
	Delete(ctx context.Context, meetingUID string, revision uint64) error

	// Meeting base operations
	Get(ctx context.Context, meetingUID string) (*models.Meeting, error)
	GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error)
	Update(ctx context.Context, meeting *models.Meeting, revision uint64) error

	// Filtered listing operations. The store has no server-side array filter,
	// so implementations scan the bucket; the per-mentor class scale keeps
	// this bounded.
	ListAll(ctx context.Context) ([]*models.Meeting, error)
	ListByMentor(ctx context.Context, mentorID string) ([]*models.Meeting, error)
	ListByInvitedStudent(ctx context.Context, studentID string) ([]*models.Meeting, error)
	ListByAcceptedStudent(ctx context.Context, studentID string) ([]*models.Meeting, error)

	// IsReady reports whether the underlying store is configured and usable.
	IsReady() bool
}
