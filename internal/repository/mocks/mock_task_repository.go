package mocks

import (
	"context"

	"legalapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Append(ctx context.Context, item *model.TodoItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTaskRepository) ListAll(ctx context.Context) ([]model.TodoItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TodoItem), args.Error(1)
}
