package repository

import (
	"context"

	"legalapi/internal/model"
)

// AnalysisRepository persists legal analysis records.
type AnalysisRepository interface {
	// Create inserts a new analysis record.
	Create(ctx context.Context, a *model.Analysis) error

	// FindByID returns an analysis by its ID, or sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.Analysis, error)
}
