package logplugin

import "go.uber.org/atomic"

// Store holds one immutable Config snapshot. Readers get a copy of whatever
// snapshot was current, never a mix of two.
type Store struct {
	current atomic.Pointer[Config]
}

// Load returns the current snapshot, or the reset state if nothing has been
// stored yet.
func (s *Store) Load() Config {
	if cfg := s.current.Load(); cfg != nil {
		return *cfg
	}
	return resetConfig()
}

// Replace swaps in cfg and returns the snapshot it replaced.
func (s *Store) Replace(cfg Config) Config {
	prev := s.current.Swap(&cfg)
	if prev == nil {
		return resetConfig()
	}
	return *prev
}

// Reset puts the store back into the reset state.
func (s *Store) Reset() {
	s.current.Store(nil)
}

// Configured reports whether a snapshot has been stored since the last Reset.
func (s *Store) Configured() bool {
	return s.current.Load() != nil
}
