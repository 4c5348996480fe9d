// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package email

import (
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/mentorhub/meeting-service/internal/domain"
)

// buildEmailMessage builds the complete email message with headers and
// multipart content. When an attachment is present the alternative part is
// wrapped in a multipart/mixed envelope.
func buildEmailMessage(recipient, subject, htmlContent, textContent string, attachment *domain.EmailAttachment, config SMTPConfig) string {
	altBoundary := "===============1234567890123456789=="
	mixedBoundary := "===============9876543210987654321=="

	var message strings.Builder

	// Email headers
	message.WriteString(fmt.Sprintf("From: %s\r\n", config.From))
	message.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")

	if attachment != nil {
		message.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", mixedBoundary))
		message.WriteString("\r\n")
		message.WriteString(fmt.Sprintf("--%s\r\n", mixedBoundary))
	}

	message.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", altBoundary))
	message.WriteString("\r\n")

	// Plain text part
	message.WriteString(fmt.Sprintf("--%s\r\n", altBoundary))
	message.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	message.WriteString("\r\n")
	message.WriteString(textContent)
	message.WriteString("\r\n")

	// HTML part
	message.WriteString(fmt.Sprintf("--%s\r\n", altBoundary))
	message.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	message.WriteString("\r\n")
	message.WriteString(htmlContent)
	message.WriteString("\r\n")

	// End of alternative part
	message.WriteString(fmt.Sprintf("--%s--\r\n", altBoundary))

	if attachment != nil {
		message.WriteString(fmt.Sprintf("--%s\r\n", mixedBoundary))
		message.WriteString(fmt.Sprintf("Content-Type: %s; name=\"%s\"\r\n", attachment.ContentType, attachment.Filename))
		message.WriteString("Content-Transfer-Encoding: base64\r\n")
		message.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n", attachment.Filename))
		message.WriteString("\r\n")
		message.WriteString(wrapBase64(base64.StdEncoding.EncodeToString(attachment.Data)))
		message.WriteString("\r\n")
		message.WriteString(fmt.Sprintf("--%s--\r\n", mixedBoundary))
	}

	return message.String()
}

// wrapBase64 wraps base64 content at 76 characters per RFC 2045
func wrapBase64(encoded string) string {
	const lineLength = 76

	var wrapped strings.Builder
	for i := 0; i < len(encoded); i += lineLength {
		end := i + lineLength
		if end > len(encoded) {
			end = len(encoded)
		}
		wrapped.WriteString(encoded[i:end])
		wrapped.WriteString("\r\n")
	}
	return wrapped.String()
}

// sendEmailMessage sends a pre-built email message via SMTP
func sendEmailMessage(recipient, message string, config SMTPConfig) error {
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	err := smtp.SendMail(addr, auth, config.From, []string{recipient}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
