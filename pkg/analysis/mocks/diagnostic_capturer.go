package mocks

import (
	"testing"

	mock "github.com/stretchr/testify/mock"

	analysis "github.com/stackb/sigh-scope/pkg/analysis"
)

type DiagnosticCapturer struct {
	Reporter *Reporter
	Got      []analysis.Diagnostic
}

func (c *DiagnosticCapturer) capture(d analysis.Diagnostic) bool {
	c.Got = append(c.Got, d)
	return true
}

func NewDiagnosticCapturer(t *testing.T) *DiagnosticCapturer {
	c := &DiagnosticCapturer{
		Reporter: NewReporter(t),
	}

	c.Reporter.
		On("Report", mock.MatchedBy(c.capture)).
		Maybe()

	return c
}
