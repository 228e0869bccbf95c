package mocks

import (
	"context"

	"triptacticx/internal/models"
	"triptacticx/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRenderer is a mock type for the service.Renderer type
type MockRenderer struct {
	mock.Mock
}

// Render provides a mock function with given fields: result
func (_m *MockRenderer) Render(result *models.PlanningResult) ([]byte, error) {
	ret := _m.Called(result)

	if rf, ok := ret.Get(0).(func(*models.PlanningResult) ([]byte, error)); ok {
		return rf(result)
	}

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// NewMockRenderer creates a new instance of MockRenderer.
func NewMockRenderer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRenderer {
	m := &MockRenderer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ service.Renderer = (*MockRenderer)(nil)

// MockTripService is a mock type for the service.TripService type
type MockTripService struct {
	mock.Mock
}

// PlanTrip provides a mock function with given fields: ctx, req
func (_m *MockTripService) PlanTrip(ctx context.Context, req models.TripRequest) (*models.PlanTripResult, error) {
	ret := _m.Called(ctx, req)

	if rf, ok := ret.Get(0).(func(context.Context, models.TripRequest) (*models.PlanTripResult, error)); ok {
		return rf(ctx, req)
	}

	var r0 *models.PlanTripResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PlanTripResult)
	}
	return r0, ret.Error(1)
}

// RenderPlan provides a mock function with given fields: ctx, result
func (_m *MockTripService) RenderPlan(ctx context.Context, result *models.PlanningResult) ([]byte, error) {
	ret := _m.Called(ctx, result)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// GetPlan provides a mock function with given fields: ctx, id
func (_m *MockTripService) GetPlan(ctx context.Context, id uuid.UUID) (*models.PlanRecord, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.PlanRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PlanRecord)
	}
	return r0, ret.Error(1)
}

// GetPlanPDF provides a mock function with given fields: ctx, id
func (_m *MockTripService) GetPlanPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	ret := _m.Called(ctx, id)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// NewMockTripService creates a new instance of MockTripService.
func NewMockTripService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTripService {
	m := &MockTripService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ service.TripService = (*MockTripService)(nil)
