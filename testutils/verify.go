// Package testutils holds helpers shared by package tests.
package testutils

import (
	"go.uber.org/goleak"
)

// VerifyTestMain runs the package tests and fails if any goroutine is still running once they
// finish, such as a worker left behind by a parallel pass.
func VerifyTestMain(m goleak.TestingM, opts ...goleak.Option) {
	opts = append(opts,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
		goleak.IgnoreTopFunction("github.com/desertbit/timer.timerRoutine"),
		goleak.IgnoreTopFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
	)
	goleak.VerifyTestMain(m, opts...)
}
