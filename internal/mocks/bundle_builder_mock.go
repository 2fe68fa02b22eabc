package mocks

import (
	"github.com/stretchr/testify/mock"

	"stadium-designer/internal/models"
	"stadium-designer/internal/request"
	"stadium-designer/internal/service"
)

// MockBundleBuilder is a mock type for the service.BundleBuilder type
type MockBundleBuilder struct {
	mock.Mock
}

// Build provides a mock function with given fields: p
func (_m *MockBundleBuilder) Build(p models.DesignParameters) (request.Bundle, error) {
	ret := _m.Called(p)

	var r0 request.Bundle
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(request.Bundle)
	}
	return r0, ret.Error(1)
}

// NewMockBundleBuilder creates a new instance of MockBundleBuilder.
func NewMockBundleBuilder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBundleBuilder {
	m := &MockBundleBuilder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.BundleBuilder = (*MockBundleBuilder)(nil)
