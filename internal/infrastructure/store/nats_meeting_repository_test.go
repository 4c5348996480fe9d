// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/meeting-service/internal/domain"
	"github.com/mentorhub/meeting-service/internal/domain/models"
)

func putMeeting(t *testing.T, kv *mockNatsKeyValue, meeting *models.Meeting) uint64 {
	t.Helper()
	data, err := json.Marshal(meeting)
	require.NoError(t, err)
	revision, err := kv.Put(context.Background(), meeting.UID, data)
	require.NoError(t, err)
	return revision
}

func TestNatsMeetingRepository_GetWithRevision(t *testing.T) {
	ctx := context.Background()
	kv := newMockNatsKeyValue()
	repo := NewNatsMeetingRepository(kv)

	want := &models.Meeting{
		UID:               "meeting-1",
		MentorID:          "F001",
		Title:             "Progress check-in",
		Status:            models.MeetingStatusScheduled,
		InvitedStudentIDs: []string{"S1", "S2"},
	}
	revision := putMeeting(t, kv, want)

	got, gotRevision, err := repo.GetWithRevision(ctx, "meeting-1")
	require.NoError(t, err)
	assert.Equal(t, want.UID, got.UID)
	assert.Equal(t, want.InvitedStudentIDs, got.InvitedStudentIDs)
	assert.Equal(t, revision, gotRevision)
}

func TestNatsMeetingRepository_Get_NotFound(t *testing.T) {
	repo := NewNatsMeetingRepository(newMockNatsKeyValue())

	_, err := repo.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestNatsMeetingRepository_NotReady(t *testing.T) {
	repo := NewNatsMeetingRepository(nil)
	ctx := context.Background()

	assert.False(t, repo.IsReady())

	_, err := repo.Get(ctx, "meeting-1")
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))

	_, err = repo.ListAll(ctx)
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))

	err = repo.Update(ctx, &models.Meeting{UID: "meeting-1"}, 1)
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))
}

func TestNatsMeetingRepository_Update_RevisionConflict(t *testing.T) {
	ctx := context.Background()
	kv := newMockNatsKeyValue()
	repo := NewNatsMeetingRepository(kv)

	meeting := &models.Meeting{UID: "meeting-1", Status: models.MeetingStatusScheduled}
	revision := putMeeting(t, kv, meeting)

	// A write with the current revision succeeds.
	meeting.AcceptedStudents = []string{"S1"}
	require.NoError(t, repo.Update(ctx, meeting, revision))

	// A second write against the stale revision reports a conflict.
	meeting.AcceptedStudents = []string{"S2"}
	err := repo.Update(ctx, meeting, revision)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
}

func TestNatsMeetingRepository_Delete(t *testing.T) {
	ctx := context.Background()
	kv := newMockNatsKeyValue()
	repo := NewNatsMeetingRepository(kv)

	meeting := &models.Meeting{UID: "meeting-1"}
	revision := putMeeting(t, kv, meeting)

	require.NoError(t, repo.Delete(ctx, "meeting-1", revision))

	exists, err := repo.Exists(ctx, "meeting-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNatsMeetingRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	kv := newMockNatsKeyValue()
	repo := NewNatsMeetingRepository(kv)

	putMeeting(t, kv, &models.Meeting{
		UID:               "meeting-1",
		MentorID:          "F001",
		InvitedStudentIDs: []string{"S1", "S2"},
		AcceptedStudents:  []string{"S1"},
	})
	putMeeting(t, kv, &models.Meeting{
		UID:               "meeting-2",
		MentorID:          "F002",
		InvitedStudentIDs: []string{"S2"},
	})

	byMentor, err := repo.ListByMentor(ctx, "F001")
	require.NoError(t, err)
	require.Len(t, byMentor, 1)
	assert.Equal(t, "meeting-1", byMentor[0].UID)

	byInvited, err := repo.ListByInvitedStudent(ctx, "S2")
	require.NoError(t, err)
	assert.Len(t, byInvited, 2)

	byAccepted, err := repo.ListByAcceptedStudent(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, byAccepted, 1)
	assert.Equal(t, "meeting-1", byAccepted[0].UID)

	byAccepted, err = repo.ListByAcceptedStudent(ctx, "S2")
	require.NoError(t, err)
	assert.Empty(t, byAccepted)
}
