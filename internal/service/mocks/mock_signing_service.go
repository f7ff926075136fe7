package mocks

import (
	"context"

	"esignapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockSigningService struct {
	mock.Mock
}

func (m *MockSigningService) Resolve(ctx context.Context, documentID, tok string) (*service.SessionView, error) {
	args := m.Called(ctx, documentID, tok)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockSigningService) Submit(ctx context.Context, documentID, tok string, values map[string]string) (*service.SubmitOutcome, error) {
	args := m.Called(ctx, documentID, tok, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitOutcome), args.Error(1)
}

func (m *MockSigningService) Decline(ctx context.Context, documentID, tok, reason string) error {
	args := m.Called(ctx, documentID, tok, reason)
	return args.Error(0)
}
