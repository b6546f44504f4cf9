package logplugin

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	t.Run("zero value reads as reset state", func(t *testing.T) {
		var s Store
		assert.False(t, s.Configured())
		assert.Equal(t, resetConfig(), s.Load())
	})

	t.Run("replace returns previous snapshot", func(t *testing.T) {
		var s Store
		first := DefaultConfig("one")
		second := DefaultConfig("two")

		assert.Equal(t, resetConfig(), s.Replace(first))
		assert.Equal(t, first, s.Replace(second))
		assert.Equal(t, second, s.Load())
		assert.True(t, s.Configured())
	})

	t.Run("load returns a copy", func(t *testing.T) {
		var s Store
		s.Replace(DefaultConfig("svc"))

		cfg := s.Load()
		cfg.AppName = "mutated"
		assert.Equal(t, "svc", s.Load().AppName)
	})

	t.Run("reset", func(t *testing.T) {
		var s Store
		s.Replace(DefaultConfig("svc"))
		s.Reset()
		assert.False(t, s.Configured())
		assert.Equal(t, resetConfig(), s.Load())
	})
}

// Every snapshot a reader sees must be one that was written whole.
func TestStore_NoTornReads(t *testing.T) {
	var s Store
	a := DefaultConfig("a")
	a.LogFile = "a.log"
	a.MinimumLevel = LevelDebug
	b := DefaultConfig("b")
	b.LogFile = "b.log"
	b.MinimumLevel = LevelError
	s.Replace(a)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if i%2 == 0 {
				s.Replace(a)
			} else {
				s.Replace(b)
			}
		}
	}()

	for i := 0; i < 10000; i++ {
		cfg := s.Load()
		switch cfg.AppName {
		case "a":
			assert.Equal(t, a, cfg)
		case "b":
			assert.Equal(t, b, cfg)
		default:
			t.Fatalf("unexpected snapshot %+v", cfg)
		}
	}
	close(stop)
	wg.Wait()
}
