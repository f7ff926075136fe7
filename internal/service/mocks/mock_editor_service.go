package mocks

import (
	"context"

	"esignapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockEditorService struct {
	mock.Mock
}

func (m *MockEditorService) ListFields(ctx context.Context, documentID string) ([]model.Field, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Field), args.Error(1)
}

func (m *MockEditorService) SaveFields(ctx context.Context, documentID string, batch model.FieldBatch) error {
	args := m.Called(ctx, documentID, batch)
	return args.Error(0)
}

func (m *MockEditorService) Send(ctx context.Context, documentID string) (*model.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}
