package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, documentText, documentTitle, kind string) (string, error) {
	args := m.Called(ctx, documentText, documentTitle, kind)
	return args.String(0), args.Error(1)
}

func (m *MockAnalyzer) RiskReport(ctx context.Context, analysisID string) (string, error) {
	args := m.Called(ctx, analysisID)
	return args.String(0), args.Error(1)
}
