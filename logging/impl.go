package logging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errUnpairedKey = errors.New("unpaired log key")

type impl struct {
	name      string
	level     AtomicLevel
	inUTC     bool
	appenders []Appender
}

func (imp *impl) AddAppender(appender Appender) {
	imp.appenders = append(imp.appenders, appender)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
}

func (imp *impl) GetLevel() Level {
	return imp.level.Get()
}

// Sublogger shares the appenders of its parent but gets its own level, starting at the parent's.
func (imp *impl) Sublogger(subname string) Logger {
	name := subname
	if imp.name != "" {
		name = imp.name + "." + subname
	}
	return &impl{
		name:      name,
		level:     NewAtomicLevelAt(imp.level.Get()),
		inUTC:     imp.inUTC,
		appenders: imp.appenders,
	}
}

func (imp *impl) Sync() error {
	var err error
	for _, appender := range imp.appenders {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.write(DEBUG, false, msg, keysAndValues)
}

func (imp *impl) CDebugw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	imp.write(DEBUG, IsDebugMode(ctx), msg, keysAndValues)
}

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.write(INFO, false, msg, keysAndValues)
}

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.write(WARN, false, msg, keysAndValues)
}

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.write(ERROR, false, msg, keysAndValues)
}

// write must be called directly from the exported logging methods; the caller lookup depends on it.
func (imp *impl) write(level Level, force bool, msg string, keysAndValues []interface{}) {
	if !force && level < imp.level.Get() {
		return
	}
	entry := zapcore.Entry{
		LoggerName: imp.name,
		Level:      level.AsZap(),
		Time:       time.Now(),
		Message:    msg,
		Caller:     callerOfLogMethod(),
	}
	if imp.inUTC {
		entry.Time = entry.Time.UTC()
	}
	fields := pairsToFields(keysAndValues)
	for _, appender := range imp.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// pairsToFields reads keysAndValues as alternating keys and values. A trailing key without a
// value is kept, with an error as its value.
func pairsToFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.Any(key, errUnpairedKey))
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

// callerOfLogMethod skips itself, write and the exported logging method.
func callerOfLogMethod() zapcore.EntryCaller {
	const skip = 3
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return zapcore.EntryCaller{}
	}
	caller := zapcore.EntryCaller{Defined: true, PC: pc, File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		caller.Function = fn.Name()
	}
	return caller
}
