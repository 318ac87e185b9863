package playback

import (
	"sync"
	"time"
)

// Clock schedules repeating callbacks. Every must return a stop function that is safe to call
// more than once and that never blocks waiting for an in-flight callback.
type Clock interface {
	Every(d time.Duration, fn func()) (stop func())
}

// TickerClock is the wall-clock [Clock] backed by [time.Ticker].
type TickerClock struct{}

// Every runs fn on its own goroutine every d until stop is called.
func (TickerClock) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
