package mocks

import (
	"context"

	"esignapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockRecipientRepository struct {
	mock.Mock
}

func (m *MockRecipientRepository) CreateBatch(ctx context.Context, recipients []model.Recipient) error {
	args := m.Called(ctx, recipients)
	return args.Error(0)
}

func (m *MockRecipientRepository) ListByDocument(ctx context.Context, documentID string) ([]model.Recipient, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipient), args.Error(1)
}

func (m *MockRecipientRepository) FindByDocumentAndToken(ctx context.Context, documentID, tok string) (*model.Recipient, error) {
	args := m.Called(ctx, documentID, tok)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipient), args.Error(1)
}

func (m *MockRecipientRepository) MarkDeclined(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
