package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"legalapi/internal/model"
	"legalapi/internal/repository"
)

// AnalysisPostgres is a PostgreSQL implementation of repository.AnalysisRepository.
// Clauses, risks and suggestions are stored as JSONB columns.
type AnalysisPostgres struct {
	db *sql.DB
}

// NewAnalysisPostgres creates a new AnalysisPostgres repository.
func NewAnalysisPostgres(db *sql.DB) *AnalysisPostgres {
	return &AnalysisPostgres{db: db}
}

var _ repository.AnalysisRepository = (*AnalysisPostgres)(nil)

// Create inserts a new analysis row.
func (r *AnalysisPostgres) Create(ctx context.Context, a *model.Analysis) error {
	clauses, err := json.Marshal(a.Clauses)
	if err != nil {
		return fmt.Errorf("marshal clauses: %w", err)
	}
	risks, err := json.Marshal(a.Risks)
	if err != nil {
		return fmt.Errorf("marshal risks: %w", err)
	}
	suggestions, err := json.Marshal(a.Suggestions)
	if err != nil {
		return fmt.Errorf("marshal suggestions: %w", err)
	}

	const q = `
		INSERT INTO analyses (analysis_id, document_title, analysis_type, analysis_date,
			document_text, clauses, risks, suggestions, risk_level, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.db.ExecContext(ctx, q,
		a.ID,
		a.DocumentTitle,
		a.AnalysisType,
		a.AnalysisDate,
		a.DocumentText,
		clauses,
		risks,
		suggestions,
		a.RiskLevel,
		a.Status,
	)
	return err
}

// FindByID fetches a single analysis by its ID.
func (r *AnalysisPostgres) FindByID(ctx context.Context, id string) (*model.Analysis, error) {
	const q = `
		SELECT analysis_id, document_title, analysis_type, analysis_date,
			document_text, clauses, risks, suggestions, risk_level, status
		FROM analyses
		WHERE analysis_id = $1
	`
	var (
		a           model.Analysis
		clauses     []byte
		risks       []byte
		suggestions []byte
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID,
		&a.DocumentTitle,
		&a.AnalysisType,
		&a.AnalysisDate,
		&a.DocumentText,
		&clauses,
		&risks,
		&suggestions,
		&a.RiskLevel,
		&a.Status,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(clauses, &a.Clauses); err != nil {
		return nil, fmt.Errorf("unmarshal clauses: %w", err)
	}
	if err := json.Unmarshal(risks, &a.Risks); err != nil {
		return nil, fmt.Errorf("unmarshal risks: %w", err)
	}
	if err := json.Unmarshal(suggestions, &a.Suggestions); err != nil {
		return nil, fmt.Errorf("unmarshal suggestions: %w", err)
	}
	return &a, nil
}
