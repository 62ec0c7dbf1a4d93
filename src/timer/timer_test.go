package timer

import (
	"testing"
	"time"
)

func TestPacer(t *testing.T) {
	t.Run("zero interval returns immediately", func(t *testing.T) {
		p := NewPacer(0)
		start := time.Now()
		for i := 0; i < 100; i++ {
			p.Wait()
		}
		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Errorf("100 zero-interval ticks took %v", elapsed)
		}
	})

	t.Run("interval paces each tick", func(t *testing.T) {
		p := NewPacer(20 * time.Millisecond)
		start := time.Now()
		p.Wait()
		if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
			t.Errorf("tick returned after %v; want at least 20ms", elapsed)
		}
	})
}
