package utils

import (
	"os"
	"slices"
	"strconv"

	"github.com/blowekamp/itkBinaryMorphologyPerformance/logging"
)

const (
	// WorkersEnvVar is the environment variable that can be set to override ParallelFactor as
	// the default number of workers used by a filter.
	WorkersEnvVar = "MORPH_WORKERS"

	// DebugEnvVar turns on debug logging for the command line tools when set to a true value.
	DebugEnvVar = "MORPH_DEBUG"
)

// EnvTrueValues contains strings that we interpret as boolean true in env vars.
var EnvTrueValues = []string{"true", "yes", "1", "TRUE", "YES"}

// GetDefaultWorkers returns the worker count from WorkersEnvVar if it is set to a positive
// integer, ParallelFactor otherwise.
func GetDefaultWorkers(logger logging.Logger) int {
	workersVal := os.Getenv(WorkersEnvVar)
	if workersVal == "" {
		return ParallelFactor
	}
	workers, err := strconv.Atoi(workersVal)
	if err != nil || workers <= 0 {
		logger.Warnf("Failed to parse %s env var %q, falling back to default of %d workers",
			WorkersEnvVar, workersVal, ParallelFactor)
		return ParallelFactor
	}
	return workers
}

// DebugFromEnv reports whether DebugEnvVar holds one of EnvTrueValues.
func DebugFromEnv() bool {
	return slices.Contains(EnvTrueValues, os.Getenv(DebugEnvVar))
}
