package dashboard

import "github.com/jonboulle/clockwork"

// clock is the time source for computed_at stamps and refresh scheduling.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
