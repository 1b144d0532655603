package search

import (
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

// FindAll provides a mock function with given fields: line, query.
func (_m *MockProvider) FindAll(line, query string) []Match {
	ret := _m.Called(line, query)

	if rf, ok := ret.Get(0).(func(string, string) []Match); ok {
		return rf(line, query)
	}
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).([]Match)
}

// Name provides a mock function with given fields: .
func (_m *MockProvider) Name() string {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() string); ok {
		return rf()
	}
	return ret.Get(0).(string)
}
