package logging

import (
	"context"

	"go.viam.com/utils"
)

type debugKey struct{}

// EnableDebugMode marks ctx so that CDebugw lines are written at any logger level. name labels
// the debug session; an empty name gets a random one.
func EnableDebugMode(ctx context.Context, name string) context.Context {
	if name == "" {
		name = utils.RandomAlphaString(6)
	}
	return context.WithValue(ctx, debugKey{}, name)
}

// IsDebugMode reports whether ctx was marked by EnableDebugMode.
func IsDebugMode(ctx context.Context) bool {
	return DebugName(ctx) != ""
}

// DebugName returns the label given to EnableDebugMode, or "" when ctx is not in debug mode.
func DebugName(ctx context.Context) string {
	name, _ := ctx.Value(debugKey{}).(string)
	return name
}
