package mocks

import (
	"context"

	"esignapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockFieldRepository struct {
	mock.Mock
}

func (m *MockFieldRepository) ListByDocument(ctx context.Context, documentID string) ([]model.Field, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Field), args.Error(1)
}

func (m *MockFieldRepository) ListByRecipient(ctx context.Context, documentID, recipientID string) ([]model.Field, error) {
	args := m.Called(ctx, documentID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Field), args.Error(1)
}

func (m *MockFieldRepository) BatchApply(ctx context.Context, documentID string, batch model.FieldBatch) error {
	args := m.Called(ctx, documentID, batch)
	return args.Error(0)
}
