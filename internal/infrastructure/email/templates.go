// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package email

import (
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

// TemplateSet holds the HTML and text variants of an email template.
type TemplateSet struct {
	HTML *template.Template
	Text *texttemplate.Template
}

// Templates holds all the email templates used by the SMTP service.
type Templates struct {
	Invitation   TemplateSet
	Cancellation TemplateSet
}

var templateFuncs = template.FuncMap{
	"formatTime":     formatTime,
	"formatDuration": formatDuration,
}

var textTemplateFuncs = texttemplate.FuncMap{
	"formatTime":     formatTime,
	"formatDuration": formatDuration,
}

// loadTemplates parses the built-in invitation and cancellation templates.
func loadTemplates() (Templates, error) {
	invitationHTML, err := template.New("invitation.html").Funcs(templateFuncs).Parse(invitationHTMLTemplate)
	if err != nil {
		return Templates{}, fmt.Errorf("failed to parse invitation HTML template: %w", err)
	}
	invitationText, err := texttemplate.New("invitation.txt").Funcs(textTemplateFuncs).Parse(invitationTextTemplate)
	if err != nil {
		return Templates{}, fmt.Errorf("failed to parse invitation text template: %w", err)
	}
	cancellationHTML, err := template.New("cancellation.html").Funcs(templateFuncs).Parse(cancellationHTMLTemplate)
	if err != nil {
		return Templates{}, fmt.Errorf("failed to parse cancellation HTML template: %w", err)
	}
	cancellationText, err := texttemplate.New("cancellation.txt").Funcs(textTemplateFuncs).Parse(cancellationTextTemplate)
	if err != nil {
		return Templates{}, fmt.Errorf("failed to parse cancellation text template: %w", err)
	}

	return Templates{
		Invitation:   TemplateSet{HTML: invitationHTML, Text: invitationText},
		Cancellation: TemplateSet{HTML: cancellationHTML, Text: cancellationText},
	}, nil
}

// renderHTML renders an HTML template with the given data.
func renderHTML(tmpl *template.Template, data any) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

// renderText renders a text template with the given data.
func renderText(tmpl *texttemplate.Template, data any) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

// formatTime formats a meeting start time for display in emails.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "TBD"
	}
	return t.Format("Monday, January 2, 2006 at 3:04 PM MST")
}

// formatDuration formats a duration in minutes for display in emails.
func formatDuration(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d minutes", mins)
	case mins == 0 && hours == 1:
		return "1 hour"
	case mins == 0:
		return fmt.Sprintf("%d hours", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}

const invitationHTMLTemplate = `<html>
<body>
<p>Hi{{if .RecipientName}} {{.RecipientName}}{{end}},</p>
<p>{{.MentorName}} has invited you to the meeting <strong>{{.MeetingTitle}}</strong>.</p>
<ul>
<li><strong>When:</strong> {{formatTime .StartTime}}</li>
{{if .Duration}}<li><strong>Duration:</strong> {{formatDuration .Duration}}</li>{{end}}
{{if .Purpose}}<li><strong>Purpose:</strong> {{.Purpose}}</li>{{end}}
{{if .MeetingURL}}<li><strong>Join link:</strong> <a href="{{.MeetingURL}}">{{.MeetingURL}}</a></li>{{end}}
{{if .MeetingPassword}}<li><strong>Password:</strong> {{.MeetingPassword}}</li>{{end}}
</ul>
{{if .Description}}<p>{{.Description}}</p>{{end}}
<p>Please accept or decline the invitation from your MentorHub dashboard.</p>
</body>
</html>
`

const invitationTextTemplate = `Hi{{if .RecipientName}} {{.RecipientName}}{{end}},

{{.MentorName}} has invited you to the meeting "{{.MeetingTitle}}".

When: {{formatTime .StartTime}}
{{if .Duration}}Duration: {{formatDuration .Duration}}
{{end}}{{if .Purpose}}Purpose: {{.Purpose}}
{{end}}{{if .MeetingURL}}Join link: {{.MeetingURL}}
{{end}}{{if .MeetingPassword}}Password: {{.MeetingPassword}}
{{end}}
{{if .Description}}{{.Description}}

{{end}}Please accept or decline the invitation from your MentorHub dashboard.
`

const cancellationHTMLTemplate = `<html>
<body>
<p>Hi{{if .RecipientName}} {{.RecipientName}}{{end}},</p>
<p>The meeting <strong>{{.MeetingTitle}}</strong> scheduled for {{formatTime .StartTime}} has been cancelled by {{.MentorName}}.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
</body>
</html>
`

const cancellationTextTemplate = `Hi{{if .RecipientName}} {{.RecipientName}}{{end}},

The meeting "{{.MeetingTitle}}" scheduled for {{formatTime .StartTime}} has been cancelled by {{.MentorName}}.
{{if .Reason}}
Reason: {{.Reason}}
{{end}}`
