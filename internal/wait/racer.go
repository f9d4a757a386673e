package wait

import "time"

// Racer is the timeout side of a wait. Fired is polled without blocking
// once per tick and stays true once it has returned true.
type Racer interface {
	Fired() bool
	Stop()
}

// TimerRacer delivers at most one notification through a one-slot
// channel. The send never blocks, so a timer that fires after the loop
// has stopped polling is simply dropped.
type TimerRacer struct {
	c     chan struct{}
	timer *time.Timer
	fired bool
}

var _ Racer = (*TimerRacer)(nil)

// StartTimer starts a racer for timeout. A nil timeout never fires; a
// zero timeout has already fired when StartTimer returns.
func StartTimer(timeout *time.Duration) *TimerRacer {
	r := &TimerRacer{}
	if timeout == nil {
		return r
	}
	r.c = make(chan struct{}, 1)
	if *timeout <= 0 {
		r.notify()
		return r
	}
	r.timer = time.AfterFunc(*timeout, r.notify)
	return r
}

func (r *TimerRacer) notify() {
	select {
	case r.c <- struct{}{}:
	default:
	}
}

// Fired reports whether the timeout has elapsed.
func (r *TimerRacer) Fired() bool {
	if r.fired {
		return true
	}
	select {
	case <-r.c:
		r.fired = true
	default:
	}
	return r.fired
}

// Stop abandons a pending timeout.
func (r *TimerRacer) Stop() {
	if r.timer != nil {
		r.timer.Stop()
	}
}
