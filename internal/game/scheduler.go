package game

import (
	"sync"
	"time"
)

// roundTimer drives one session's per-second ticks while it is fighting.
// halt is idempotent and may race the tick goroutine; after the stop channel
// closes no further ticks fire.
type roundTimer struct {
	stop chan struct{}
	once sync.Once
}

func startRoundTimer(interval time.Duration, tick func()) *roundTimer {
	t := &roundTimer{stop: make(chan struct{})}
	go func() {
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-tk.C:
				tick()
			}
		}
	}()
	return t
}

func (t *roundTimer) halt() {
	t.once.Do(func() { close(t.stop) })
}
