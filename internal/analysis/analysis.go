// Package analysis produces placeholder legal analysis records and formatted
// risk reports. The calling agent performs the real legal reasoning; this
// package only provides the framework it populates and the persisted record.
package analysis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"legalapi/internal/action"
	"legalapi/internal/model"
	"legalapi/internal/repository"
)

// ErrNotFound reports a missing analysis record.
var ErrNotFound = errors.New("analysis not found")

const (
	defaultTitle = "Untitled Document"
	defaultKind  = "comprehensive"

	// Stored document text is an excerpt only.
	excerptLimit = 1000
)

// Result is the fixed-shape analysis output.
type Result struct {
	Clauses     []string
	Risks       []model.Risk
	Suggestions []string
	OverallRisk string
}

// Analyzer defines the analysis use cases.
type Analyzer interface {
	// Analyze persists a placeholder analysis for the given text and returns
	// the formatted report. documentTitle and kind are optional.
	Analyze(ctx context.Context, documentText, documentTitle, kind string) (string, error)

	// RiskReport renders the detailed report for a stored analysis.
	RiskReport(ctx context.Context, analysisID string) (string, error)
}

type analyzer struct {
	repo repository.AnalysisRepository
}

// New constructs an Analyzer backed by the given repository.
func New(repo repository.AnalysisRepository) Analyzer {
	return &analyzer{repo: repo}
}

func (a *analyzer) Analyze(ctx context.Context, documentText, documentTitle, kind string) (string, error) {
	if documentText == "" {
		return "", action.Validationf("documentText is required for analysis")
	}
	if documentTitle == "" {
		documentTitle = defaultTitle
	}
	if kind == "" {
		kind = defaultKind
	}

	result := framework()
	record := &model.Analysis{
		ID:            uuid.NewString(),
		DocumentTitle: documentTitle,
		AnalysisType:  kind,
		AnalysisDate:  time.Now().UTC(),
		DocumentText:  excerpt(documentText),
		Clauses:       result.Clauses,
		Risks:         result.Risks,
		Suggestions:   result.Suggestions,
		RiskLevel:     result.OverallRisk,
		Status:        "completed",
	}

	if err := a.repo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("saving analysis: %w", err)
	}

	return formatReport(result, documentTitle, record.AnalysisDate), nil
}

func (a *analyzer) RiskReport(ctx context.Context, analysisID string) (string, error) {
	if analysisID == "" {
		return "", action.Validationf("documentId is required for risk report")
	}

	record, err := a.repo.FindByID(ctx, analysisID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("generating risk report: %w", err)
	}

	return formatDetailedReport(record), nil
}

// framework returns the fixed placeholder result the agent is expected to
// override with its own reasoning.
func framework() Result {
	return Result{
		Clauses: []string{
			"Document requires AI agent analysis",
			"Please analyze this document for legal clauses",
			"Common areas: Termination, Liability, Payment, Confidentiality, Governing Law",
		},
		Risks: []model.Risk{
			{
				Clause:        "Analysis Needed",
				RiskLevel:     "Medium",
				Description:   "Document requires comprehensive legal review",
				Justification: "AI agent should analyze document for specific legal risks and compliance issues",
			},
		},
		Suggestions: []string{
			"Have legal expert review the analysis results",
			"Consider specific legal requirements for your jurisdiction",
			"Ensure all critical clauses are properly addressed",
		},
		OverallRisk: "Medium",
	}
}

func excerpt(text string) string {
	if len(text) > excerptLimit {
		return text[:excerptLimit] + "..."
	}
	return text
}
