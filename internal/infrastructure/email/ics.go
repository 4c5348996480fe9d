// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package email

import (
	"fmt"
	"strings"
	"time"
)

// ICS constants for consistent values across all generated ICS files
const (
	ICSProdID   = "-//MentorHub//Meeting Service//EN"
	ICALVersion = "2.0"
	ICALScale   = "GREGORIAN"
)

// ICSMeetingInvitationParams contains the information needed to generate an
// ICS file for a meeting invitation
type ICSMeetingInvitationParams struct {
	MeetingUID      string // Unique meeting identifier for consistent ICS UID
	MeetingTitle    string
	Description     string
	StartTime       time.Time
	DurationMinutes int
	MentorName      string
	MeetingURL      string
	RecipientEmail  string
}

// ICSGenerator generates ICS (iCalendar) files for meeting invitations
type ICSGenerator struct{}

// NewICSGenerator creates a new ICS generator
func NewICSGenerator() *ICSGenerator {
	return &ICSGenerator{}
}

// GenerateMeetingInvitationICS generates ICS file content for a meeting invitation
func (g *ICSGenerator) GenerateMeetingInvitationICS(param ICSMeetingInvitationParams) (string, error) {
	if param.MeetingUID == "" {
		return "", fmt.Errorf("meeting UID is required")
	}
	if param.StartTime.IsZero() {
		return "", fmt.Errorf("meeting start time is required")
	}

	dtstamp := time.Now().UTC().Format("20060102T150405Z")
	start := param.StartTime.UTC()
	end := start.Add(time.Duration(param.DurationMinutes) * time.Minute)

	var ics strings.Builder

	// Calendar header
	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString(fmt.Sprintf("VERSION:%s\r\n", ICALVersion))
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", ICSProdID))
	ics.WriteString(fmt.Sprintf("CALSCALE:%s\r\n", ICALScale))
	ics.WriteString("METHOD:REQUEST\r\n")

	// Event
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s\r\n", param.MeetingUID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", dtstamp))
	if param.MentorName != "" {
		ics.WriteString(fmt.Sprintf("ORGANIZER;CN=%s:mailto:no-reply@mentorhub.dev\r\n", escapeICSText(param.MentorName)))
	}
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", start.Format("20060102T150405Z")))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", end.Format("20060102T150405Z")))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICSText(param.MeetingTitle)))
	if param.Description != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICSText(param.Description)))
	}
	if param.MeetingURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", param.MeetingURL))
	}
	if param.RecipientEmail != "" {
		ics.WriteString(fmt.Sprintf("ATTENDEE;ROLE=REQ-PARTICIPANT:mailto:%s\r\n", param.RecipientEmail))
	}
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String(), nil
}

// escapeICSText escapes special characters per RFC 5545
func escapeICSText(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, ";", "\\;")
	text = strings.ReplaceAll(text, ",", "\\,")
	text = strings.ReplaceAll(text, "\n", "\\n")
	return text
}
