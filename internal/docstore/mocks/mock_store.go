package mocks

import (
	"context"

	"legalapi/internal/docstore"
	"legalapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, req docstore.SaveRequest) (*model.Document, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, id string) (*docstore.GetResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docstore.GetResult), args.Error(1)
}

func (m *MockStore) List(ctx context.Context, typeFilter string) (*docstore.ListResult, error) {
	args := m.Called(ctx, typeFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docstore.ListResult), args.Error(1)
}

func (m *MockStore) Fetch(ctx context.Context, id string) (*model.Document, []byte, error) {
	args := m.Called(ctx, id)
	var doc *model.Document
	if args.Get(0) != nil {
		doc = args.Get(0).(*model.Document)
	}
	var data []byte
	if args.Get(1) != nil {
		data = args.Get(1).([]byte)
	}
	return doc, data, args.Error(2)
}
