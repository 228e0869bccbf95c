package mocks

import (
	"context"

	"triptacticx/internal/models"
	"triptacticx/internal/planner"

	"github.com/stretchr/testify/mock"
)

// MockAIClient is a mock type for the planner.AIClient type
type MockAIClient struct {
	mock.Mock
}

// GenerateText provides a mock function with given fields: ctx, agent, systemPrompt, userInput, params
func (_m *MockAIClient) GenerateText(ctx context.Context, agent string, systemPrompt string, userInput string, params planner.GenerationParams) (string, planner.UsageInfo, error) {
	ret := _m.Called(ctx, agent, systemPrompt, userInput, params)

	if rf, ok := ret.Get(0).(func(context.Context, string, string, string, planner.GenerationParams) (string, planner.UsageInfo, error)); ok {
		return rf(ctx, agent, systemPrompt, userInput, params)
	}

	r0 := ret.String(0)

	var r1 planner.UsageInfo
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(planner.UsageInfo)
	}

	return r0, r1, ret.Error(2)
}

// NewMockAIClient creates a new instance of MockAIClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAIClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAIClient {
	m := &MockAIClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ planner.AIClient = (*MockAIClient)(nil)

// MockPlanner is a mock type for the planner.Planner type
type MockPlanner struct {
	mock.Mock
}

// Plan provides a mock function with given fields: ctx, input
func (_m *MockPlanner) Plan(ctx context.Context, input models.TripInput) (*models.PlanningResult, error) {
	ret := _m.Called(ctx, input)

	if rf, ok := ret.Get(0).(func(context.Context, models.TripInput) (*models.PlanningResult, error)); ok {
		return rf(ctx, input)
	}

	var r0 *models.PlanningResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PlanningResult)
	}

	return r0, ret.Error(1)
}

// NewMockPlanner creates a new instance of MockPlanner.
func NewMockPlanner(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPlanner {
	m := &MockPlanner{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ planner.Planner = (*MockPlanner)(nil)
