package mocks

import (
	mock "github.com/stretchr/testify/mock"

	analysis "github.com/stackb/sigh-scope/pkg/analysis"
)

// Reporter is a mock type for the analysis.Reporter type
type Reporter struct {
	mock.Mock
}

// Report provides a mock function with given fields: d
func (_m *Reporter) Report(d analysis.Diagnostic) {
	_m.Called(d)
}

// NewReporter creates a new instance of Reporter. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewReporter(t interface {
	mock.TestingT
	Cleanup(func())
}) *Reporter {
	m := &Reporter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
