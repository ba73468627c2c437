package simulation

import (
	"sync"
	"time"
)

// countdown fires tick every interval until stopped. Stop never waits for
// the goroutine, so it may be called while holding the lock that tick
// takes; a tick already in flight is recognised as stale by its timer id.
type countdown struct {
	stop chan struct{}
	once sync.Once
}

func startCountdown(interval time.Duration, tick func()) *countdown {
	c := &countdown{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				tick()
			}
		}
	}()
	return c
}

func (c *countdown) Stop() {
	c.once.Do(func() { close(c.stop) })
}
