package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"legalapi/internal/model"
)

// Cell widths of the risk table columns.
const (
	clauseWidth        = 15
	descriptionWidth   = 20
	justificationWidth = 25
)

// formatReport renders the agent-facing analysis summary.
func formatReport(result Result, documentTitle string, analyzedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\nLEGAL DOCUMENT ANALYSIS REPORT\n")
	fmt.Fprintf(&b, "Document: %s\n", documentTitle)
	fmt.Fprintf(&b, "Analysis Date: %s UTC\n\n", analyzedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "OVERALL RISK LEVEL: %s\n\n", strings.ToUpper(result.OverallRisk))

	fmt.Fprintf(&b, "CLAUSES IDENTIFIED (%d):\n", len(result.Clauses))
	for i, clause := range result.Clauses {
		fmt.Fprintf(&b, "%d. %s\n", i+1, clause)
	}

	fmt.Fprintf(&b, "\nRISK ANALYSIS (%d issues identified):\n", len(result.Risks))
	rule := "+" + strings.Repeat("-", 70) + "+\n"
	b.WriteString(rule)
	b.WriteString("| Clause/Issue | Risk Level | Description | Justification |\n")
	b.WriteString(rule)
	for _, risk := range result.Risks {
		fmt.Fprintf(&b, "| %-*s | %-10s | %-*s | %-*s |\n",
			clauseWidth, clip(risk.Clause, clauseWidth),
			risk.RiskLevel,
			descriptionWidth, clip(risk.Description, descriptionWidth),
			justificationWidth, clip(risk.Justification, justificationWidth))
	}
	b.WriteString(rule)

	fmt.Fprintf(&b, "\nRECOMMENDATIONS (%d):\n", len(result.Suggestions))
	for i, suggestion := range result.Suggestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, suggestion)
	}

	b.WriteString("\nWould you like me to save this analysis to your document library?")
	return b.String()
}

// formatDetailedReport renders a stored analysis as the long-form risk report.
func formatDetailedReport(record *model.Analysis) string {
	risks, _ := json.MarshalIndent(record.Risks, "", "  ")
	suggestions, _ := json.MarshalIndent(record.Suggestions, "", "  ")

	return fmt.Sprintf(`
DETAILED RISK REPORT
Document: %s
Analysis Date: %s
Overall Risk Level: %s

EXECUTIVE SUMMARY:
This document contains %d identified risk areas requiring attention.

DETAILED RISK BREAKDOWN:
%s

RECOMMENDATIONS:
%s
`,
		record.DocumentTitle,
		record.AnalysisDate.Format(time.RFC3339),
		record.RiskLevel,
		len(record.Risks),
		risks,
		suggestions)
}

// clip shortens s to fit a table cell, marking the cut with an ellipsis.
func clip(s string, width int) string {
	if len(s) > width {
		return s[:width] + "..."
	}
	return s
}
