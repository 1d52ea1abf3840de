package session

import "time"

// Ticker is the repeating one-second clock driving a running session.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

// NewTimeTicker is the wall clock TickerFactory.
func NewTimeTicker(d time.Duration) Ticker {
	return &timeTicker{t: time.NewTicker(d)}
}

func (t *timeTicker) C() <-chan time.Time {
	return t.t.C
}

func (t *timeTicker) Stop() {
	t.t.Stop()
}
