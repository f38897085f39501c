package logging

import "context"

// Logger is a leveled, structured logger. Key/value pairs follow the zap SugaredLogger convention.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// CDebugw logs at debug level when either the logger is at DEBUG or the context was marked
	// with EnableDebugMode.
	CDebugw(ctx context.Context, msg string, keysAndValues ...interface{})

	SetLevel(level Level)
	GetLevel() Level
	Sublogger(subname string) Logger
	AddAppender(appender Appender)
	Sync() error
}
