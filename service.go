package logplugin

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Station-Manager/errors"
	"go.uber.org/atomic"
)

// Service is the emit pipeline together with the state it owns. The zero
// value is usable and behaves like a Service that has been shut down: Emit
// succeeds and writes nothing until Configure is called.
type Service struct {
	// Console receives decorated lines. Defaults to os.Stdout.
	Console io.Writer
	// ErrorOutput receives diagnostics. Defaults to os.Stderr.
	ErrorOutput io.Writer
	// Clock stamps lines and archive names. Defaults to time.Now.
	Clock func() time.Time
	// ShutdownTimeout bounds how long Shutdown waits for in-flight emits.
	ShutdownTimeout time.Duration

	store Store
	gen   atomic.Pointer[generation]

	// mu orders Configure/Shutdown against the snapshot read and in-flight
	// registration at the start of Emit.
	mu sync.RWMutex

	consoleMu sync.Mutex
	// fileMu spans rotate, open and append.
	fileMu sync.Mutex
}

// NewService returns a Service writing to stdout and stderr.
func NewService() *Service {
	return &Service{
		Console:         os.Stdout,
		ErrorOutput:     os.Stderr,
		Clock:           time.Now,
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

// Configure validates cfg and makes it the active snapshot. On error the
// previous snapshot stays in place.
func (s *Service) Configure(cfg Config) error {
	const op errors.Op = "logplugin.Service.Configure"
	if s == nil {
		return errors.New(op).Msg(errMsgNilService)
	}

	if err := validateConfig(&cfg); err != nil {
		return err
	}

	d := newDiagnostics(s.ErrorOutput, cfg)

	s.mu.Lock()
	s.store.Replace(cfg)
	prev := s.gen.Swap(newGeneration(d))
	s.mu.Unlock()

	// Emits still running under prev keep their diagnostics until they leave.
	prev.retire(s.reportCloseError)

	return nil
}

// Configured reports whether a configuration is active.
func (s *Service) Configured() bool {
	return s != nil && s.store.Configured()
}

// Config returns the active snapshot.
func (s *Service) Config() Config {
	if s == nil {
		return resetConfig()
	}
	return s.store.Load()
}

// Emit writes rec to the enabled outputs. A record below the minimum level
// is dropped and nil is returned. Only a failure to append to the log file is
// returned as an error; console and rotation failures go to diagnostics.
func (s *Service) Emit(rec Record) error {
	const op errors.Op = "logplugin.Service.Emit"
	if s == nil {
		return errors.New(op).Msg(errMsgNilService)
	}
	if !rec.Level.Valid() {
		return errors.New(op).Err(&ParseError{Value: rec.Level.String()}).Msg("Record level is invalid.")
	}

	s.mu.RLock()
	cfg := s.store.Load()
	g := s.current()
	g.enter()
	s.mu.RUnlock()
	defer g.leave()

	if rec.Level < cfg.MinimumLevel {
		return nil
	}
	if !cfg.LogToConsole && !cfg.LogToFile {
		return nil
	}

	now := s.now()
	line := Line{
		Time:    now,
		Level:   rec.Level,
		App:     resolveAppName(cfg.AppName, rec),
		Message: rec.Message,
	}
	decorated := line.Decorated()

	if cfg.LogToConsole {
		s.writeConsole(g.diag, decorated)
	}

	if cfg.LogToFile {
		text := line.Plain()
		if cfg.FileOutputColored {
			text = decorated
		}
		if err := s.appendToFile(g.diag, cfg, now, text); err != nil {
			g.diag.error(err, "log record dropped")
			return err
		}
	}

	return nil
}

// Shutdown resets the configuration, waits up to ShutdownTimeout for
// in-flight emits and releases the diagnostics file. It always returns nil
// and may be called any number of times.
func (s *Service) Shutdown() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	s.store.Reset()
	prev := s.gen.Swap(newGeneration(newDiagnostics(s.ErrorOutput, resetConfig())))
	s.mu.Unlock()

	if prev == nil {
		return nil
	}
	// On timeout the diagnostics file is closed later, by the last emit out.
	if !waitFor(prev.retire(s.reportCloseError), s.shutdownTimeout()) {
		s.withDiagnostics(func(d *diagnostics) {
			d.logger.Warn().
				Int32("active_ops", prev.active.Load()).
				Msg("shutdown timed out waiting for in-flight emits")
		})
	}

	return nil
}

func (s *Service) writeConsole(d *diagnostics, text string) {
	s.consoleMu.Lock()
	defer s.consoleMu.Unlock()

	if _, err := io.WriteString(s.console(), text+"\n"); err != nil {
		d.warn(err, "console write failed")
	}
}

// appendToFile rotates if needed, then appends text as one line. The file is
// opened per call so a rename by rotation is picked up by the next write.
func (s *Service) appendToFile(d *diagnostics, cfg Config, now time.Time, text string) error {
	const op errors.Op = "logplugin.Service.appendToFile"

	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	rotateLogFile(cfg, now, d.warn)

	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, logDirPerm); err != nil {
			return errors.New(op).Err(err).Msg(errMsgCreateLogDir)
		}
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePerm)
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgOpenLogFile)
	}

	_, err = f.WriteString(text + "\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgWriteLogFile)
	}

	return nil
}

// current returns the active generation, creating a reset one for a zero
// value Service.
func (s *Service) current() *generation {
	if g := s.gen.Load(); g != nil {
		return g
	}
	g := newGeneration(newDiagnostics(s.ErrorOutput, resetConfig()))
	if s.gen.CompareAndSwap(nil, g) {
		return g
	}
	return s.gen.Load()
}

// withDiagnostics runs fn against the current diagnostics, holding the
// generation open so its file cannot be closed underneath fn.
func (s *Service) withDiagnostics(fn func(d *diagnostics)) {
	s.mu.RLock()
	g := s.current()
	g.enter()
	s.mu.RUnlock()
	defer g.leave()

	fn(g.diag)
}

func (s *Service) reportCloseError(err error) {
	s.withDiagnostics(func(d *diagnostics) {
		d.warn(err, "failed to close diagnostics file")
	})
}

func (s *Service) console() io.Writer {
	if s.Console == nil {
		return os.Stdout
	}
	return s.Console
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock().UTC()
}

func (s *Service) shutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return defaultShutdownTimeout
	}
	return s.ShutdownTimeout
}
