package logging

import "context"

type debugLogKeyType int

const debugLogKey debugLogKeyType = iota

// EnableDebugMode returns a new context with debug logging state attached. Loggers that see this
// context via the `CDebug*` methods log regardless of their level.
func EnableDebugMode(ctx context.Context) context.Context {
	return context.WithValue(ctx, debugLogKey, true)
}

// IsDebugMode returns whether the input context has debug logging enabled.
func IsDebugMode(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	enabled, _ := ctx.Value(debugLogKey).(bool)
	return enabled
}
