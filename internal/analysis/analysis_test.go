package analysis

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"legalapi/internal/action"
	"legalapi/internal/model"
	repoMocks "legalapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePersistsRecordAndFormatsReport(t *testing.T) {
	repo := new(repoMocks.MockAnalysisRepository)
	var saved *model.Analysis
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Analysis) bool {
		saved = a
		return a.ID != "" && a.Status == "completed"
	})).Return(nil)

	report, err := New(repo).Analyze(context.Background(), "Parties agree...", "nda.txt", "")

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "nda.txt", saved.DocumentTitle)
	assert.Equal(t, "comprehensive", saved.AnalysisType)
	assert.Equal(t, "Medium", saved.RiskLevel)
	assert.Equal(t, "Parties agree...", saved.DocumentText)
	assert.Len(t, saved.Clauses, 3)
	assert.Len(t, saved.Risks, 1)
	assert.Len(t, saved.Suggestions, 3)

	assert.Contains(t, report, "LEGAL DOCUMENT ANALYSIS REPORT")
	assert.Contains(t, report, "Document: nda.txt")
	assert.Contains(t, report, "OVERALL RISK LEVEL: MEDIUM")
	assert.Contains(t, report, "CLAUSES IDENTIFIED (3):")
	assert.Contains(t, report, "RISK ANALYSIS (1 issues identified):")
	assert.Contains(t, report, "RECOMMENDATIONS (3):")
	assert.Contains(t, report, "Would you like me to save this analysis to your document library?")
	repo.AssertExpectations(t)
}

func TestAnalyzeDefaultsTitle(t *testing.T) {
	repo := new(repoMocks.MockAnalysisRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Analysis) bool {
		return a.DocumentTitle == "Untitled Document"
	})).Return(nil)

	report, err := New(repo).Analyze(context.Background(), "some text", "", "")

	require.NoError(t, err)
	assert.Contains(t, report, "Document: Untitled Document")
}

func TestAnalyzeStoresExcerptOnly(t *testing.T) {
	repo := new(repoMocks.MockAnalysisRepository)
	var saved *model.Analysis
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Analysis) bool {
		saved = a
		return true
	})).Return(nil)

	long := strings.Repeat("a", 5000)
	_, err := New(repo).Analyze(context.Background(), long, "big.txt", "comprehensive")

	require.NoError(t, err)
	assert.Len(t, saved.DocumentText, 1003)
	assert.True(t, strings.HasSuffix(saved.DocumentText, "..."))
}

func TestAnalyzeMissingTextIsValidation(t *testing.T) {
	repo := new(repoMocks.MockAnalysisRepository)

	_, err := New(repo).Analyze(context.Background(), "", "nda.txt", "")

	require.Error(t, err)
	assert.True(t, action.IsValidation(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnalyzeRepoErrorWrapped(t *testing.T) {
	repo := new(repoMocks.MockAnalysisRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	_, err := New(repo).Analyze(context.Background(), "text", "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving analysis")
}

func TestRiskReport(t *testing.T) {
	repo := new(repoMocks.MockAnalysisRepository)
	repo.On("FindByID", mock.Anything, "an-1").Return(&model.Analysis{
		ID:            "an-1",
		DocumentTitle: "nda.txt",
		AnalysisDate:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Risks: []model.Risk{
			{Clause: "Liability", RiskLevel: "High", Description: "Uncapped", Justification: "No limitation clause"},
		},
		Suggestions: []string{"Add a liability cap"},
		RiskLevel:   "High",
	}, nil)

	report, err := New(repo).RiskReport(context.Background(), "an-1")

	require.NoError(t, err)
	assert.Contains(t, report, "DETAILED RISK REPORT")
	assert.Contains(t, report, "Document: nda.txt")
	assert.Contains(t, report, "Overall Risk Level: High")
	assert.Contains(t, report, "This document contains 1 identified risk areas requiring attention.")
	assert.Contains(t, report, `"clause": "Liability"`)
	assert.Contains(t, report, "Add a liability cap")
}

func TestRiskReportNotFound(t *testing.T) {
	repo := new(repoMocks.MockAnalysisRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows)

	_, err := New(repo).RiskReport(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRiskReportMissingIDIsValidation(t *testing.T) {
	repo := new(repoMocks.MockAnalysisRepository)

	_, err := New(repo).RiskReport(context.Background(), "")

	require.Error(t, err)
	assert.True(t, action.IsValidation(err))
}
