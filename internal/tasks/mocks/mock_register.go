package mocks

import (
	"context"

	"legalapi/internal/model"
	"legalapi/internal/tasks"

	"github.com/stretchr/testify/mock"
)

type MockRegister struct {
	mock.Mock
}

func (m *MockRegister) Add(ctx context.Context, req tasks.AddRequest) (*model.TodoItem, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TodoItem), args.Error(1)
}

func (m *MockRegister) List(ctx context.Context) ([]model.TodoItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TodoItem), args.Error(1)
}
