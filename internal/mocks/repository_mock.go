package mocks

import (
	"context"

	"triptacticx/internal/messaging"
	"triptacticx/internal/models"
	"triptacticx/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPlanRepository is a mock type for the repository.PlanRepository type
type MockPlanRepository struct {
	mock.Mock
}

// Save provides a mock function with given fields: ctx, record
func (_m *MockPlanRepository) Save(ctx context.Context, record *models.PlanRecord) error {
	ret := _m.Called(ctx, record)

	if rf, ok := ret.Get(0).(func(context.Context, *models.PlanRecord) error); ok {
		return rf(ctx, record)
	}
	return ret.Error(0)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PlanRecord, error) {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*models.PlanRecord, error)); ok {
		return rf(ctx, id)
	}

	var r0 *models.PlanRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PlanRecord)
	}
	return r0, ret.Error(1)
}

// NewMockPlanRepository creates a new instance of MockPlanRepository.
func NewMockPlanRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPlanRepository {
	m := &MockPlanRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ repository.PlanRepository = (*MockPlanRepository)(nil)

// MockPlanEventPublisher is a mock type for the messaging.PlanEventPublisher type
type MockPlanEventPublisher struct {
	mock.Mock
}

// PublishPlanGenerated provides a mock function with given fields: ctx, event
func (_m *MockPlanEventPublisher) PublishPlanGenerated(ctx context.Context, event models.PlanGeneratedEvent) error {
	ret := _m.Called(ctx, event)

	if rf, ok := ret.Get(0).(func(context.Context, models.PlanGeneratedEvent) error); ok {
		return rf(ctx, event)
	}
	return ret.Error(0)
}

// NewMockPlanEventPublisher creates a new instance of MockPlanEventPublisher.
func NewMockPlanEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPlanEventPublisher {
	m := &MockPlanEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ messaging.PlanEventPublisher = (*MockPlanEventPublisher)(nil)
