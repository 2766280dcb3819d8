package utils

import (
	"testing"

	"go.viam.com/test"

	"github.com/blowekamp/itkBinaryMorphologyPerformance/logging"
)

func TestGetDefaultWorkers(t *testing.T) {
	logger := logging.NewTestLogger(t)

	t.Setenv(WorkersEnvVar, "")
	test.That(t, GetDefaultWorkers(logger), test.ShouldEqual, ParallelFactor)

	t.Setenv(WorkersEnvVar, "3")
	test.That(t, GetDefaultWorkers(logger), test.ShouldEqual, 3)

	t.Setenv(WorkersEnvVar, "-2")
	test.That(t, GetDefaultWorkers(logger), test.ShouldEqual, ParallelFactor)

	t.Setenv(WorkersEnvVar, "many")
	test.That(t, GetDefaultWorkers(logger), test.ShouldEqual, ParallelFactor)
}

func TestDebugFromEnv(t *testing.T) {
	t.Setenv(DebugEnvVar, "yes")
	test.That(t, DebugFromEnv(), test.ShouldBeTrue)
	t.Setenv(DebugEnvVar, "no")
	test.That(t, DebugFromEnv(), test.ShouldBeFalse)
}
