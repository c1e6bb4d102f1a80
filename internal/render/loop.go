package render

import (
	"sync"
	"sync/atomic"
	"time"
)

// Ticker delivers frame ticks. *time.Ticker satisfies it through
// NewTimeTicker; tests drive frames by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

// NewTimeTicker returns a wall-clock Ticker firing every d.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// Loop is a repeating frame task with a cancellation handle. The armed flag
// is checked at the top of every callback so a tick that races with Cancel
// never reaches step.
type Loop struct {
	armed  atomic.Bool
	ticker Ticker
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// startLoop arms a loop that calls step once per tick until cancelled.
// step runs on the loop's goroutine and must not call Cancel.
func startLoop(ticker Ticker, step func()) *Loop {
	l := &Loop{
		ticker: ticker,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	l.armed.Store(true)

	go func() {
		defer close(l.done)
		for {
			select {
			case <-l.stop:
				return
			case <-ticker.C():
				if !l.armed.Load() {
					return
				}
				step()
			}
		}
	}()
	return l
}

// Armed reports whether the loop will still run frame callbacks.
func (l *Loop) Armed() bool {
	return l.armed.Load()
}

// Cancel disarms the loop, stops its ticker and waits for an in-flight
// callback to return. It is idempotent.
func (l *Loop) Cancel() {
	l.once.Do(func() {
		l.armed.Store(false)
		close(l.stop)
		l.ticker.Stop()
	})
	<-l.done
}
