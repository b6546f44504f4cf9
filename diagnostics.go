package logplugin

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// diagnostics is the error channel: the facility's own warnings and failures.
// It never writes to the configured log file.
type diagnostics struct {
	logger zerolog.Logger
	file   *lumberjack.Logger
}

func newDiagnostics(out io.Writer, cfg Config) *diagnostics {
	if out == nil {
		out = os.Stderr
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339},
	}

	var file *lumberjack.Logger
	if cfg.DiagnosticsFile != emptyString {
		file = initializeRollingFileLogger(cfg)
		writers = append(writers, file)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().
		Timestamp().
		Str("component", "logplugin")
	if cfg.AppName != emptyString {
		ctx = ctx.Str("app", cfg.AppName)
	}

	return &diagnostics{logger: ctx.Logger().Level(zerolog.WarnLevel), file: file}
}

func initializeRollingFileLogger(cfg Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.DiagnosticsFile,
		MaxSize:    cfg.DiagnosticsMaxSizeMB,
		MaxBackups: cfg.DiagnosticsMaxBackups,
	}
}

func (d *diagnostics) warn(err error, msg string) {
	withErrorChain(d.logger.Warn(), err).Msg(msg)
}

func (d *diagnostics) error(err error, msg string) {
	withErrorChain(d.logger.Error(), err).Msg(msg)
}

func (d *diagnostics) close() error {
	if d == nil || d.file == nil {
		return nil
	}
	return d.file.Close()
}

// withErrorChain attaches err plus its cause chain, so a DetailedError
// wrapping an *os.PathError shows both the operation and the syscall failure.
func withErrorChain(e *zerolog.Event, err error) *zerolog.Event {
	if err == nil {
		return e
	}
	e = e.Err(err)

	links := causeChain(err)
	root := links[len(links)-1]
	e = e.Str("error_root", root.msg)
	if root.op != emptyString {
		e = e.Str("error_root_op", root.op)
	}
	if len(links) == 1 {
		return e
	}

	msgs := make([]string, len(links))
	ops := make([]string, len(links))
	withOps := false
	for i, l := range links {
		msgs[i], ops[i] = l.msg, l.op
		withOps = withOps || l.op != emptyString
	}
	e = e.Strs("error_chain", msgs).Str("error_history", strings.Join(msgs, appPathSeparator))
	if withOps {
		e = e.Strs("error_ops", ops)
	}
	return e
}
