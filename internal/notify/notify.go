// Package notify sends formatted notification email on behalf of the
// assistant, optionally with a stored document attached.
package notify

import (
	"context"
	"fmt"
	"strings"
)

// Attachment is an optional file carried by a notification.
type Attachment struct {
	Filename string
	Data     []byte
}

// Message is one outbound notification.
type Message struct {
	To            string
	Subject       string
	Body          string
	DocumentTitle string
	Attachment    *Attachment
}

// Notifier delivers notification messages and returns the provider's
// message ID.
type Notifier interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ComposeDefaults produces a plain subject and body when the caller supplies
// neither: a short, clean message the agent can enhance on its own side.
func ComposeDefaults(emailContext, documentTitle, senderName string) (subject, body string) {
	if emailContext == "" {
		emailContext = "document review"
	}
	if senderName == "" {
		senderName = "Legal Team"
	}

	if documentTitle != "" {
		subject = fmt.Sprintf("Re: %s", documentTitle)
		body = fmt.Sprintf("Dear Sir/Madam,\n\nRegarding %s - %s.\n\nBest regards,\n%s",
			documentTitle, emailContext, senderName)
		return subject, body
	}

	subject = fmt.Sprintf("Legal Document - %s", titleCase(emailContext))
	body = fmt.Sprintf("Dear Sir/Madam,\n\n%s.\n\nBest regards,\n%s",
		capitalize(emailContext), senderName)
	return subject, body
}

// htmlBody wraps the plain body in the fixed notification layout.
func htmlBody(body, documentTitle string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h3>Legal Document Notification</h3>")
	b.WriteString("<p>" + strings.ReplaceAll(body, "\n", "<br>") + "</p>")
	if documentTitle != "" {
		b.WriteString("<p><strong>Document:</strong> " + documentTitle + "</p>")
	}
	b.WriteString("<p><em>This email was sent via Legal CRM Assistant</em></p>")
	b.WriteString("</body></html>")
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
