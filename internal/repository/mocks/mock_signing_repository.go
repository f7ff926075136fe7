package mocks

import (
	"context"
	"time"

	"esignapi/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockSigningRepository struct {
	mock.Mock
}

func (m *MockSigningRepository) Submit(ctx context.Context, documentID, recipientID string, values map[string]string, now time.Time) (*repository.SubmitResult, error) {
	args := m.Called(ctx, documentID, recipientID, values, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SubmitResult), args.Error(1)
}
