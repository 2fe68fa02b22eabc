package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stadium-designer/internal/models"
	"stadium-designer/internal/scene"
	"stadium-designer/internal/service"
)

// MockVisualizationService is a mock type for the service.VisualizationService type
type MockVisualizationService struct {
	mock.Mock
}

// Visualize provides a mock function with given fields: ctx, params
func (_m *MockVisualizationService) Visualize(ctx context.Context, params models.DesignParameters) (*scene.Result, error) {
	ret := _m.Called(ctx, params)

	var r0 *scene.Result
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*scene.Result)
	}
	return r0, ret.Error(1)
}

// NewMockVisualizationService creates a new instance of MockVisualizationService.
func NewMockVisualizationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVisualizationService {
	m := &MockVisualizationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.VisualizationService = (*MockVisualizationService)(nil)
