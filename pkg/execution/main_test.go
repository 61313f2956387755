package execution

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package.
// This catches workers that were never joined by Shutdown or Close.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
