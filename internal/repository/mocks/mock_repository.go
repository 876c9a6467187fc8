package mocks

import (
	"context"

	"cardsapi/internal/model"
	"cardsapi/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) First(ctx context.Context) (model.Visit, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Visit), args.Bool(1), args.Error(2)
}

func (m *MockVisitRepository) Create(ctx context.Context, v *model.Visit) (*model.Visit, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Visit), args.Error(1)
}

func (m *MockVisitRepository) List(ctx context.Context) ([]model.Visit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Visit), args.Error(1)
}

// InTx records the call and then runs fn against the mock itself,
// unless an error was configured for it.
func (m *MockVisitRepository) InTx(ctx context.Context, fn func(repository.VisitRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, r *model.Review) (*model.Review, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) List(ctx context.Context) ([]model.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}
