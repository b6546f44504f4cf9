package logplugin

// Emitter is the typed lifecycle of the logging pipeline. Hosts that do not
// need the JSON boundary program against this.
type Emitter interface {
	Configure(cfg Config) error
	Emit(rec Record) error
	Shutdown() error
}

var _ Emitter = (*Service)(nil)
