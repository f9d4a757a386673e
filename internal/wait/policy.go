// Package wait decides when a sleep block ends.
//
// A Policy polls process liveness at a fixed interval while racing an
// optional timeout. Each tick checks the timeout first, so a timeout and a
// satisfied process condition observed in the same tick resolve to
// TimedOut.
package wait

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mbrock/blocksleep/internal/errs"
	"github.com/mbrock/blocksleep/internal/proc"
)

// DefaultInterval is the polling granularity.
const DefaultInterval = time.Second

// Outcome is the state a wait finished in.
type Outcome int

const (
	StillWaiting Outcome = iota
	ConditionSatisfied
	TimedOut
	// Interrupted means the context was cancelled, e.g. by Ctrl+C.
	Interrupted
)

func (o Outcome) String() string {
	switch o {
	case StillWaiting:
		return "waiting"
	case ConditionSatisfied:
		return "satisfied"
	case TimedOut:
		return "timed out"
	case Interrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result describes how a wait ended.
type Result struct {
	Outcome Outcome
	// PID is the process whose exit satisfied a pid or first wait.
	PID proc.PID
	// Ticks counts polling iterations, starting at 1.
	Ticks int
}

// Policy runs waits. The zero value polls real processes once a second
// with a real timer.
type Policy struct {
	Running    proc.Oracle
	Interval   time.Duration
	StartRacer func(timeout *time.Duration) Racer
	Logger     *slog.Logger
}

func (p *Policy) running(pid proc.PID) bool {
	if p.Running == nil {
		return proc.IsRunning(pid)
	}
	return p.Running(pid)
}

func (p *Policy) interval() time.Duration {
	if p.Interval <= 0 {
		return DefaultInterval
	}
	return p.Interval
}

func (p *Policy) startRacer(timeout *time.Duration) Racer {
	if p.StartRacer == nil {
		return StartTimer(timeout)
	}
	return p.StartRacer(timeout)
}

func (p *Policy) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// Check verifies the entry conditions of m. For pid and first waits a
// process that is not running is a precondition error. For all waits it
// is only a warning, since that process has already done its part.
func (p *Policy) Check(m Mode) (warnings []string, err error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	for _, pid := range m.PIDs {
		if p.running(pid) {
			continue
		}
		if m.Kind == AllOfSet {
			warnings = append(warnings, fmt.Sprintf("No such process with pid %d was running. Continuing.", pid))
			continue
		}
		return nil, errs.Errorf(errs.Precondition, "No such process with pid %d was running", pid)
	}
	return warnings, nil
}

// Wait blocks until m is satisfied, its timeout fires, or ctx is done.
// Wait does not repeat Check; callers run it first.
func (p *Policy) Wait(ctx context.Context, m Mode) (Result, error) {
	if err := m.validate(); err != nil {
		return Result{}, err
	}
	log := p.logger().With("mode", m.Kind.String())

	if m.Kind == Indefinite {
		<-ctx.Done()
		log.Debug("wait interrupted", "err", ctx.Err())
		return Result{Outcome: Interrupted}, nil
	}

	racer := p.startRacer(m.Timeout)
	defer racer.Stop()

	ticker := time.NewTicker(p.interval())
	defer ticker.Stop()

	for tick := 1; ; tick++ {
		if racer.Fired() {
			log.Debug("timeout reached", "tick", tick)
			return Result{Outcome: TimedOut, Ticks: tick}, nil
		}
		if pid, ok := p.satisfied(m); ok {
			log.Debug("condition satisfied", "tick", tick, "pid", int(pid))
			return Result{Outcome: ConditionSatisfied, PID: pid, Ticks: tick}, nil
		}

		select {
		case <-ctx.Done():
			log.Debug("wait interrupted", "tick", tick, "err", ctx.Err())
			return Result{Outcome: Interrupted, Ticks: tick}, nil
		case <-ticker.C:
		}
	}
}

// satisfied evaluates the process condition for one tick.
func (p *Policy) satisfied(m Mode) (proc.PID, bool) {
	switch m.Kind {
	case SingleProcess, AnyOfSet:
		for _, pid := range m.PIDs {
			if !p.running(pid) {
				return pid, true
			}
		}
	case AllOfSet:
		for _, pid := range m.PIDs {
			if p.running(pid) {
				return 0, false
			}
		}
		return 0, true
	}
	return 0, false
}
