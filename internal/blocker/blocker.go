// Package blocker runs one sleep block: it checks that the watched
// processes exist, takes an inhibitor lease, waits, and releases the lease
// on every way out of Run.
//
// A lease is not released if the program is killed outright (SIGKILL).
// The GNOME session manager drops the inhibitor when our bus connection
// closes, which covers that case in practice.
package blocker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mbrock/blocksleep/internal/inhibit"
	"github.com/mbrock/blocksleep/internal/wait"
)

// Config configures a Blocker.
type Config struct {
	// Inhibit is passed to Open. Kind must already be decided.
	Inhibit inhibit.Config

	// Policy runs the wait. Nil means a default Policy.
	Policy *wait.Policy

	// Open acquires the lease. Defaults to inhibit.Open.
	Open func(ctx context.Context, cfg inhibit.Config) (inhibit.Lease, error)

	// Stdout receives progress messages. Defaults to os.Stdout.
	Stdout io.Writer
	// Warn receives non-fatal warnings. Defaults to writing to Stdout.
	Warn func(msg string)

	Logger *slog.Logger
}

// Blocker blocks sleep for the duration of one wait.
type Blocker struct {
	cfg Config
}

// New returns a Blocker with defaults filled in.
func New(cfg Config) *Blocker {
	if cfg.Policy == nil {
		cfg.Policy = &wait.Policy{}
	}
	if cfg.Open == nil {
		cfg.Open = inhibit.Open
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Warn == nil {
		out := cfg.Stdout
		cfg.Warn = func(msg string) { fmt.Fprintln(out, "warn: "+msg) }
	}
	if cfg.Policy.Logger == nil {
		cfg.Policy.Logger = cfg.Logger
	}
	if cfg.Inhibit.Logger == nil {
		cfg.Inhibit.Logger = cfg.Logger
	}
	return &Blocker{cfg: cfg}
}

// Run blocks sleep until m ends. Precondition failures return before a
// lease is taken.
func (b *Blocker) Run(ctx context.Context, m wait.Mode) (wait.Result, error) {
	warnings, err := b.cfg.Policy.Check(m)
	if err != nil {
		return wait.Result{}, err
	}
	for _, w := range warnings {
		b.cfg.Warn(w)
	}

	lease, err := b.cfg.Open(ctx, b.cfg.Inhibit)
	if err != nil {
		return wait.Result{}, err
	}
	defer func() {
		if err := lease.Release(); err != nil {
			b.cfg.Logger.Debug("releasing inhibitor lease", "err", err)
		}
	}()

	fmt.Fprintln(b.cfg.Stdout, m.StartMessage())

	res, err := b.cfg.Policy.Wait(ctx, m)
	if err != nil {
		return res, err
	}
	if msg := res.Message(m); msg != "" {
		fmt.Fprintln(b.cfg.Stdout, msg)
	}
	return res, nil
}
