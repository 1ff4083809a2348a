package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the gfagraph logger: timestamped ("15:04:05.00"),
// writing to w and filtering below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// timer measures one CLI step and reports it at debug level, so --verbose
// shows where time goes when reading or drawing large graphs.
type timer struct {
	logger *log.Logger
	start  time.Time
}

func startTimer(l *log.Logger) timer {
	return timer{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time, e.g.
// "read graph source=x.gfa records=42 elapsed=12ms".
func (t timer) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(t.start).Round(time.Millisecond))
	t.logger.Debug(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command. Code
// running outside a command, such as tests, gets a logger that discards.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return discardLogger
}

var discardLogger = log.New(io.Discard)
