package timer

import "time"

// Pacer spaces out floor-to-floor movement steps. The elevator worker
// calls Wait once per tick before stepping one floor.
type Pacer interface {
	Wait()
}

type intervalPacer struct {
	interval time.Duration
}

// NewPacer returns a Pacer that sleeps for the given interval per tick.
// A zero interval returns immediately, which tests use to run movement
// without wall-clock pacing.
func NewPacer(interval time.Duration) Pacer {
	return intervalPacer{interval: interval}
}

func (p intervalPacer) Wait() {
	if p.interval > 0 {
		time.Sleep(p.interval)
	}
}
