// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/mentorhub/meeting-service/internal/logging"
	"github.com/mentorhub/meeting-service/pkg/constants"
)

var (
	errRejectionReasonRequired = errors.New("rejection reason is required")
	errRejectionReasonTooLong  = fmt.Errorf("rejection reason must be %d characters or less", constants.MaxRejectionReasonLength)
)

// AcceptInvitationRequest is a request by a student to accept a meeting
// invitation.
type AcceptInvitationRequest struct {
	MeetingUID string `json:"meetingId"`
	StudentID  string `json:"studentId"`
}

// RejectInvitationRequest is a request by a student to decline a meeting
// invitation with a reason.
type RejectInvitationRequest struct {
	MeetingUID string `json:"meetingId"`
	StudentID  string `json:"studentId"`
	Reason     string `json:"reason"`
}

// sanitizeMembership drops null-ish entries (empty strings) left behind by
// corrupted prior writes and removes duplicates, preserving order of first
// appearance. A nil input is treated as an empty set.
func sanitizeMembership(members []string) []string {
	sanitized := make([]string, 0, len(members))
	for _, id := range members {
		if id == "" {
			continue
		}
		if !slices.Contains(sanitized, id) {
			sanitized = append(sanitized, id)
		}
	}
	return sanitized
}

// AddAcceptedStudent records the student's acceptance on the meeting.
// The accepted set is sanitized and deduplicated before the append, so the
// operation is idempotent: accepting twice yields the same set as once.
// It returns true when the membership actually changed.
func (m *Meeting) AddAcceptedStudent(studentID string) bool {
	accepted := sanitizeMembership(m.AcceptedStudents)
	changed := !slices.Equal(accepted, m.AcceptedStudents)

	if studentID != "" && !slices.Contains(accepted, studentID) {
		accepted = append(accepted, studentID)
		changed = true
	}

	m.AcceptedStudents = accepted
	return changed
}

// AddRejectedStudent records the student's rejection and their reason on the
// meeting. Set semantics match AddAcceptedStudent; the reason map uses
// overwrite semantics, so the last rejection reason wins when a student
// rejects twice. It returns true when the document changed.
//
// The reason must already be validated with [ValidateRejectionReason].
func (m *Meeting) AddRejectedStudent(ctx context.Context, studentID, reason string) bool {
	rejected := sanitizeMembership(m.RejectedStudents)
	changed := !slices.Equal(rejected, m.RejectedStudents)

	if studentID != "" && !slices.Contains(rejected, studentID) {
		rejected = append(rejected, studentID)
		changed = true
	}
	m.RejectedStudents = rejected

	reasons := ParseRejectionReasons(ctx, m.RejectionReasons)
	if reasons[studentID] != reason {
		reasons[studentID] = reason
		changed = true
	}
	m.RejectionReasons = reasons.Encode()

	return changed
}

// ValidateRejectionReason checks the free-text rejection reason: non-empty
// after trimming and at most the maximum length.
func ValidateRejectionReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errRejectionReasonRequired
	}
	if utf8.RuneCountInString(reason) > constants.MaxRejectionReasonLength {
		return errRejectionReasonTooLong
	}
	return nil
}

// RejectionReasons is the mapping from student ID to their rejection reason.
// The flat document schema stores it as a JSON-encoded string field; this
// type centralizes the serialize/deserialize contract.
type RejectionReasons map[string]string

// ParseRejectionReasons decodes the stored rejection reasons field. A
// missing or unparseable value recovers to an empty map with a warn log
// rather than failing the request.
func ParseRejectionReasons(ctx context.Context, encoded string) RejectionReasons {
	reasons := RejectionReasons{}
	if encoded == "" {
		return reasons
	}
	if err := json.Unmarshal([]byte(encoded), &reasons); err != nil {
		slog.WarnContext(ctx, "error parsing stored rejection reasons, treating as empty",
			logging.ErrKey, err)
		return RejectionReasons{}
	}
	return reasons
}

// Encode serializes the mapping back into the stored string form.
func (r RejectionReasons) Encode() string {
	if len(r) == 0 && r != nil {
		// Keep an explicit empty object so a later parse round-trips cleanly.
		return "{}"
	}
	data, err := json.Marshal(r)
	if err != nil {
		// map[string]string cannot fail to marshal; keep the document usable.
		return "{}"
	}
	return string(data)
}
