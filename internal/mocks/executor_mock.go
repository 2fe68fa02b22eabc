package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stadium-designer/internal/analysis"
)

// MockExecutor is a mock type for the analysis.Executor type
type MockExecutor struct {
	mock.Mock
}

// Execute provides a mock function with given fields: ctx, job
func (_m *MockExecutor) Execute(ctx context.Context, job analysis.Job) (*analysis.Result, error) {
	ret := _m.Called(ctx, job)

	var r0 *analysis.Result
	if rf, ok := ret.Get(0).(func(context.Context, analysis.Job) *analysis.Result); ok {
		r0 = rf(ctx, job)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*analysis.Result)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, analysis.Job) error); ok {
		r1 = rf(ctx, job)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockExecutor creates a new instance of MockExecutor. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockExecutor(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockExecutor {
	m := &MockExecutor{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ analysis.Executor = (*MockExecutor)(nil)
