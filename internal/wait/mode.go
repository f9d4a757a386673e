package wait

import (
	"fmt"
	"time"

	"github.com/mbrock/blocksleep/internal/errs"
	"github.com/mbrock/blocksleep/internal/proc"
)

// Kind selects what a wait is waiting for.
type Kind int

const (
	// Indefinite never ends on its own.
	Indefinite Kind = iota
	// SingleProcess ends when one process exits.
	SingleProcess
	// AnyOfSet ends when the first of several processes exits.
	AnyOfSet
	// AllOfSet ends when every one of several processes has exited.
	AllOfSet
	// DurationOnly ends when the timeout elapses.
	DurationOnly
)

func (k Kind) String() string {
	switch k {
	case Indefinite:
		return "indefinite"
	case SingleProcess:
		return "pid"
	case AnyOfSet:
		return "first"
	case AllOfSet:
		return "all"
	case DurationOnly:
		return "time"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Mode is the immutable description of one wait. Timeout, when set,
// bounds every kind except Indefinite.
type Mode struct {
	Kind    Kind
	PIDs    []proc.PID
	Timeout *time.Duration
}

// Config is the raw selection made on the command line. At most one of
// PID, First and All may be set.
type Config struct {
	PID     *proc.PID
	First   []proc.PID
	All     []proc.PID
	Timeout *time.Duration
}

// ModeFromConfig builds the one Mode that cfg selects.
func ModeFromConfig(cfg Config) (Mode, error) {
	groups := 0
	if cfg.PID != nil {
		groups++
	}
	if cfg.First != nil {
		groups++
	}
	if cfg.All != nil {
		groups++
	}
	if groups > 1 {
		return Mode{}, errs.New(errs.Configuration,
			"only one of --pid, --first and --all may be given")
	}

	var m Mode
	switch {
	case cfg.PID != nil:
		m = Mode{Kind: SingleProcess, PIDs: []proc.PID{*cfg.PID}}
	case cfg.First != nil:
		m = Mode{Kind: AnyOfSet, PIDs: cfg.First}
	case cfg.All != nil:
		m = Mode{Kind: AllOfSet, PIDs: cfg.All}
	case cfg.Timeout != nil:
		m = Mode{Kind: DurationOnly}
	default:
		return Mode{Kind: Indefinite}, nil
	}
	m.Timeout = cfg.Timeout
	return m, m.validate()
}

func (m Mode) validate() error {
	switch m.Kind {
	case SingleProcess:
		if len(m.PIDs) != 1 {
			return errs.New(errs.Configuration, "--pid takes exactly one PID")
		}
	case AnyOfSet, AllOfSet:
		if len(m.PIDs) == 0 {
			return errs.Errorf(errs.Configuration, "--%s needs at least one PID", m.Kind)
		}
	case DurationOnly:
		if m.Timeout == nil {
			return errs.New(errs.Configuration, "waiting for a duration requires --time")
		}
	}
	if m.Timeout != nil && *m.Timeout < 0 {
		return errs.New(errs.Configuration, "TIME value cannot be negative.")
	}
	for _, pid := range m.PIDs {
		if pid <= 0 {
			return errs.Errorf(errs.Configuration, "invalid PID %d: must be positive", int(pid))
		}
	}
	return nil
}

func (m Mode) watchesProcesses() bool {
	return m.Kind == SingleProcess || m.Kind == AnyOfSet || m.Kind == AllOfSet
}
