package logplugin

// Status codes returned across the host boundary.
const (
	StatusOK             int32 = 0
	StatusWriteFailed    int32 = -1
	StatusInvalidPayload int32 = -2
	StatusInternal       int32 = -3
)

// std backs the package-level entry points used by C hosts.
var std = NewService()

// Default returns the process-wide Service behind Configure, Emit and
// Shutdown.
func Default() *Service {
	return std
}

// Configure parses a JSON configuration payload and applies it to the
// process-wide Service.
func Configure(payload string) int32 {
	return std.ConfigureJSON([]byte(payload))
}

// Emit parses a JSON record payload and emits it through the process-wide
// Service.
func Emit(payload string) int32 {
	return std.EmitJSON([]byte(payload))
}

// Shutdown resets the process-wide Service. It always returns StatusOK.
func Shutdown() int32 {
	return std.ShutdownStatus()
}

// ConfigureJSON is Configure with the payload decoded at the boundary.
// Returns StatusInvalidPayload for malformed or invalid configuration, in
// which case the active configuration is unchanged.
func (s *Service) ConfigureJSON(payload []byte) (status int32) {
	if s == nil {
		return StatusInternal
	}
	defer s.recoverStatus("configure", &status)

	cfg, err := ParseConfig(payload)
	if err != nil {
		s.withDiagnostics(func(d *diagnostics) { d.warn(err, "configuration rejected") })
		return StatusInvalidPayload
	}
	if err := s.Configure(cfg); err != nil {
		s.withDiagnostics(func(d *diagnostics) { d.warn(err, "configuration rejected") })
		return StatusInvalidPayload
	}
	return StatusOK
}

// EmitJSON is Emit with the payload decoded at the boundary. A record below
// the minimum level yields StatusOK. Records with an unknown level are
// rejected by ParseRecord, so StatusWriteFailed only ever means the log file
// could not be written.
func (s *Service) EmitJSON(payload []byte) (status int32) {
	if s == nil {
		return StatusInternal
	}
	defer s.recoverStatus("emit", &status)

	rec, err := ParseRecord(payload)
	if err != nil {
		s.withDiagnostics(func(d *diagnostics) { d.warn(err, "record rejected") })
		return StatusInvalidPayload
	}
	if !rec.Level.Valid() {
		return StatusInvalidPayload
	}
	if err := s.Emit(rec); err != nil {
		return StatusWriteFailed
	}
	return StatusOK
}

// ShutdownStatus is Shutdown for the boundary.
func (s *Service) ShutdownStatus() (status int32) {
	if s == nil {
		return StatusOK
	}
	defer s.recoverStatus("shutdown", &status)

	_ = s.Shutdown()
	return StatusOK
}

// recoverStatus keeps a panic from crossing into the host.
func (s *Service) recoverStatus(entryPoint string, status *int32) {
	if r := recover(); r != nil {
		s.withDiagnostics(func(d *diagnostics) {
			d.logger.Error().
				Str("entry_point", entryPoint).
				Interface("panic", r).
				Msg("recovered panic")
		})
		*status = StatusInternal
	}
}
