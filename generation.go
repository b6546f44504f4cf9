package logplugin

import (
	"sync"

	"go.uber.org/atomic"
)

// generation is the span between one Configure (or Shutdown) and the next.
// It owns the diagnostics built for that span and tracks the emits that
// started under it. Emits only enter the generation that is current while
// Service.mu is read-locked, so once a generation has been swapped out under
// the write lock its WaitGroup only ever counts down.
type generation struct {
	diag   *diagnostics
	wg     sync.WaitGroup
	active atomic.Int32
}

func newGeneration(d *diagnostics) *generation {
	return &generation{diag: d}
}

func (g *generation) enter() {
	g.active.Add(1)
	g.wg.Add(1)
}

func (g *generation) leave() {
	g.active.Add(-1)
	g.wg.Done()
}

// retire closes the diagnostics of a swapped-out generation once its last
// emit has left. The returned channel is closed when that has happened.
// report receives a close failure; it may be nil.
func (g *generation) retire(report func(error)) <-chan struct{} {
	done := make(chan struct{})
	if g == nil {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		g.wg.Wait()
		if err := g.diag.close(); err != nil && report != nil {
			report(err)
		}
	}()
	return done
}
