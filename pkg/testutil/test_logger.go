package testutil

import (
	"testing"

	"github.com/rs/zerolog"
)

// Logger returns a debug-level logger that writes to the test log, so output
// is only shown for failing or verbose tests.
func Logger(t *testing.T) zerolog.Logger {
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
}
