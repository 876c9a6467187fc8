package mocks

import (
	"context"

	"cardsapi/internal/model"
	"cardsapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockVisitService struct {
	mock.Mock
}

func (m *MockVisitService) Enter(ctx context.Context, in service.EnterInput) (*service.EnterResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EnterResult), args.Error(1)
}

func (m *MockVisitService) List(ctx context.Context) ([]model.Visit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Visit), args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, in service.CreateReviewInput) (*model.Review, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) List(ctx context.Context) ([]model.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}
