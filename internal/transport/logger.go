package transport

import (
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// LeveledLogger routes retryablehttp's logs into zerolog.
type LeveledLogger struct {
	logger *zerolog.Logger
}

var _ retryablehttp.LeveledLogger = (*LeveledLogger)(nil)

// NewLeveledLogger wraps a zerolog logger.
func NewLeveledLogger(logger *zerolog.Logger) *LeveledLogger {
	return &LeveledLogger{logger: logger}
}

// Error logs at error level.
func (l *LeveledLogger) Error(msg string, keysAndValues ...any) {
	l.log(l.logger.Error(), msg, keysAndValues)
}

// Warn logs at warn level.
func (l *LeveledLogger) Warn(msg string, keysAndValues ...any) {
	l.log(l.logger.Warn(), msg, keysAndValues)
}

// Info logs retryablehttp's per-request chatter at debug level.
func (l *LeveledLogger) Info(msg string, keysAndValues ...any) {
	l.log(l.logger.Debug(), msg, keysAndValues)
}

// Debug logs at debug level.
func (l *LeveledLogger) Debug(msg string, keysAndValues ...any) {
	l.log(l.logger.Debug(), msg, keysAndValues)
}

func (l *LeveledLogger) log(e *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		e = e.Str(fmt.Sprint(kv[i]), fmt.Sprint(kv[i+1]))
	}
	e.Msg(msg)
}
