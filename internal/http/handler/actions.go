package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"legalapi/internal/action"
	"legalapi/internal/analysis"
	"legalapi/internal/docstore"
	"legalapi/internal/notify"
	"legalapi/internal/tasks"
)

func (h *InvokeHandler) saveDocument(ctx context.Context, cmd *action.Command) (string, error) {
	doc, err := h.store.Save(ctx, docstore.SaveRequest{
		Name:     cmd.Arg("documentName"),
		Content:  cmd.Arg("documentContent"),
		Type:     cmd.Arg("documentType"),
		Analysis: cmd.Arg("analysisResults"),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Document %q saved successfully with ID: %s", doc.Name, doc.ID), nil
}

func (h *InvokeHandler) getDocument(ctx context.Context, cmd *action.Command) (string, error) {
	id := cmd.Arg("documentId")
	if id == "" {
		return "", action.Validationf("documentId is required")
	}

	res, err := h.store.Get(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Sprintf("Document with ID %s not found", id), nil
	}
	if err != nil {
		return "", err
	}

	if res.FileMissing {
		return fmt.Sprintf("Document metadata found but file missing at %s", res.Doc.FilePath), nil
	}
	return formatDocument(res), nil
}

// formatDocument renders the get response. The populated content locator
// decides the layout: inline records show the full upload timestamp and a
// plain Content line, file-backed records add size in MB and, for the
// filesystem backend, the path.
func formatDocument(res *docstore.GetResult) string {
	doc := res.Doc

	ellipsis := ""
	if res.Truncated {
		ellipsis = "..."
	}

	var b strings.Builder
	b.WriteString("Document Found:\n")
	fmt.Fprintf(&b, "Name: %s\n", doc.Name)
	fmt.Fprintf(&b, "Type: %s\n", doc.Type)

	switch {
	case doc.FilePath != "":
		fmt.Fprintf(&b, "Upload Date: %s\n", doc.UploadDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "File Size: %.2f MB\n", sizeMB(doc.ContentSize))
		fmt.Fprintf(&b, "File Path: %s\n", doc.FilePath)
		fmt.Fprintf(&b, "Analysis: %s\n", doc.AnalysisResults)
		fmt.Fprintf(&b, "Content Preview: %s%s", res.Preview, ellipsis)
	case doc.BlobKey != "":
		fmt.Fprintf(&b, "Upload Date: %s\n", doc.UploadDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "File Size: %.2f MB\n", sizeMB(doc.ContentSize))
		fmt.Fprintf(&b, "Analysis: %s\n", doc.AnalysisResults)
		fmt.Fprintf(&b, "Content Preview: %s%s", res.Preview, ellipsis)
	default:
		fmt.Fprintf(&b, "Upload Date: %s\n", doc.UploadDate.Format("2006-01-02T15:04:05Z07:00"))
		fmt.Fprintf(&b, "Analysis: %s\n", doc.AnalysisResults)
		fmt.Fprintf(&b, "Content: %s%s", res.Preview, ellipsis)
	}

	return b.String()
}

func (h *InvokeHandler) listDocuments(ctx context.Context, cmd *action.Command) (string, error) {
	res, err := h.store.List(ctx, cmd.Arg("documentType"))
	if err != nil {
		return "", err
	}
	if res.Total == 0 {
		return "No documents found matching the criteria", nil
	}

	lines := make([]string, 0, len(res.Entries))
	for _, entry := range res.Entries {
		lines = append(lines, formatListEntry(entry))
	}
	return fmt.Sprintf("Found %d document(s):\n%s", res.Total, strings.Join(lines, "\n")), nil
}

func formatListEntry(entry docstore.ListEntry) string {
	doc := entry.Doc
	date := doc.UploadDate.Format("2006-01-02")

	if entry.FileExists != nil {
		marker := "✅"
		if !*entry.FileExists {
			marker = "❌"
		}
		return fmt.Sprintf("%s %s (%s) - %s - %.2fMB", marker, doc.Name, doc.Type, date, sizeMB(doc.ContentSize))
	}
	if doc.BlobKey != "" {
		return fmt.Sprintf("• %s (%s) - %s - %.2fMB", doc.Name, doc.Type, date, sizeMB(doc.ContentSize))
	}
	return fmt.Sprintf("• %s (%s) - %s", doc.Name, doc.Type, date)
}

func (h *InvokeHandler) addTask(ctx context.Context, cmd *action.Command) (string, error) {
	_, err := h.register.Add(ctx, tasks.AddRequest{
		EmailAddress:    cmd.Arg("emailAddress"),
		TaskDescription: cmd.Arg("taskDescription"),
		EmailContext:    cmd.Arg("emailContext"),
		DocumentTitle:   cmd.Arg("documentTitle"),
		Status:          cmd.Arg("status"),
	})
	if err != nil {
		return "", err
	}
	return "Task added to the to-do list", nil
}

func (h *InvokeHandler) listTasks(ctx context.Context) (string, error) {
	items, err := h.register.List(ctx)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "No tasks found", nil
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("• [%s] %s - %s (%s)",
			item.Status, item.TaskDescription, item.DocumentTitle, item.EmailAddress))
	}
	return fmt.Sprintf("Found %d task(s):\n%s", len(items), strings.Join(lines, "\n")), nil
}

func (h *InvokeHandler) sendEmail(ctx context.Context, cmd *action.Command) (string, error) {
	recipient := cmd.Arg("recipientEmail")
	if recipient == "" {
		return "", action.Validationf("recipientEmail is required")
	}

	subject := cmd.Arg("subject")
	body := cmd.Arg("body")
	documentTitle := cmd.Arg("documentTitle")
	if subject == "" || body == "" {
		defSubject, defBody := notify.ComposeDefaults(cmd.Arg("emailContext"), documentTitle, "")
		if subject == "" {
			subject = defSubject
		}
		if body == "" {
			body = defBody
		}
	}

	msg := notify.Message{
		To:            recipient,
		Subject:       subject,
		Body:          body,
		DocumentTitle: documentTitle,
	}

	// Attachment failures are reported in the log, not to the caller; the
	// message is still sent without the file.
	attachmentInfo := ""
	if parseBool(cmd.Arg("attachDocument")) && documentTitle != "" {
		if att := h.fetchAttachment(ctx, documentTitle); att != nil {
			msg.Attachment = att
			attachmentInfo = fmt.Sprintf(" with attachment %s", att.Filename)
		}
	}

	messageID, err := h.notifier.Send(ctx, msg)
	if err != nil {
		return "", err
	}
	log.Printf("email sent to %s, message id %s", recipient, messageID)

	return fmt.Sprintf("Email sent successfully to %s%s", recipient, attachmentInfo), nil
}

// fetchAttachment resolves a document by title and loads its full content.
func (h *InvokeHandler) fetchAttachment(ctx context.Context, title string) *notify.Attachment {
	doc, err := h.docs.FindByName(ctx, title)
	if errors.Is(err, sql.ErrNoRows) {
		log.Printf("attachment: no document named %q", title)
		return nil
	}
	if err != nil {
		log.Printf("attachment: lookup %q failed: %v", title, err)
		return nil
	}

	_, data, err := h.store.Fetch(ctx, doc.ID)
	if err != nil {
		log.Printf("attachment: fetch %q failed: %v", title, err)
		return nil
	}
	return &notify.Attachment{Filename: doc.Name, Data: data}
}

func (h *InvokeHandler) analyzeDocument(ctx context.Context, cmd *action.Command) (string, error) {
	return h.analyzer.Analyze(ctx,
		cmd.Arg("documentText"),
		cmd.Arg("documentTitle"),
		cmd.Arg("analysisType"))
}

func (h *InvokeHandler) generateRiskReport(ctx context.Context, cmd *action.Command) (string, error) {
	id := cmd.Arg("documentId")
	report, err := h.analyzer.RiskReport(ctx, id)
	if errors.Is(err, analysis.ErrNotFound) {
		return fmt.Sprintf("Analysis with ID %s not found", id), nil
	}
	if err != nil {
		return "", err
	}
	return report, nil
}

func sizeMB(size int64) float64 {
	return float64(size) / (1024 * 1024)
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	}
	return false
}
