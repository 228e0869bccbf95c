package mocks

import (
	"context"

	"triptacticx/internal/delivery"

	"github.com/stretchr/testify/mock"
	"github.com/wneessen/go-mail"
)

// MockTransport is a mock type for the delivery.Transport type
type MockTransport struct {
	mock.Mock
}

// Send provides a mock function with given fields: ctx, msg
func (_m *MockTransport) Send(ctx context.Context, msg *mail.Msg) error {
	ret := _m.Called(ctx, msg)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *mail.Msg) error); ok {
		r0 = rf(ctx, msg)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockTransport creates a new instance of MockTransport. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTransport(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransport {
	m := &MockTransport{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ delivery.Transport = (*MockTransport)(nil)

// MockDeliverer is a mock type for the delivery.Deliverer type
type MockDeliverer struct {
	mock.Mock
}

// Deliver provides a mock function with given fields: ctx, name, email, pdf
func (_m *MockDeliverer) Deliver(ctx context.Context, name string, email string, pdf []byte) bool {
	ret := _m.Called(ctx, name, email, pdf)

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, string, string, []byte) bool); ok {
		r0 = rf(ctx, name, email, pdf)
	} else {
		r0 = ret.Bool(0)
	}

	return r0
}

// NewMockDeliverer creates a new instance of MockDeliverer.
func NewMockDeliverer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDeliverer {
	m := &MockDeliverer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ delivery.Deliverer = (*MockDeliverer)(nil)
