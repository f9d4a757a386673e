package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/mbrock/blocksleep/internal/duration"
	"github.com/mbrock/blocksleep/internal/errs"
	"github.com/mbrock/blocksleep/internal/inhibit"
	"github.com/mbrock/blocksleep/internal/proc"
	"github.com/mbrock/blocksleep/internal/wait"
)

// options is everything parsed from the command line and environment.
type options struct {
	wait    wait.Config
	backend inhibit.Kind // empty means detect
	reason  string
	verbose bool
	help    bool
	version bool
}

const usageHeader = `block-sleep - Block your system from sleeping for an amount of time,
or until a certain process exits.

Usage:
  block-sleep                        Block sleep until interrupted
  block-sleep -t <TIME>              Block sleep for TIME
  block-sleep -p <PID> [-t <TIME>]   Block sleep until PID exits
  block-sleep -f <PID>... [-t TIME]  Block sleep until the first PID exits
  block-sleep -a <PID>... [-t TIME]  Block sleep until all PIDs exit

TIME is a number with an optional unit: s, m, h or d (default s).

Flags:
`

// parseArgs parses args (without the program name). getenv supplies
// defaults from the environment.
func parseArgs(args []string, getenv func(string) string, stderr io.Writer) (options, error) {
	var (
		opts    options
		pidStr  string
		first   []string
		all     []string
		timeStr string
		backend string
	)

	fs := flag.NewFlagSet("block-sleep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&pidStr, "pid", "p", "", "The process id to wait on. Sleep is blocked until it exits")
	fs.StringSliceVarP(&first, "first", "f", nil, "Block sleep until the first of these processes has exited")
	fs.StringSliceVarP(&all, "all", "a", nil, "Block sleep until all of these processes have exited")
	fs.StringVarP(&timeStr, "time", "t", "", "The amount of time to block sleep for")
	fs.StringVar(&backend, "backend", getenv("BLOCK_SLEEP_BACKEND"), "Backend: gnome, systemd-inhibit, systemd-mask, macos (overrides BLOCK_SLEEP_BACKEND)")
	fs.StringVar(&opts.reason, "reason", inhibit.DefaultReason, "Reason shown by the session manager")
	fs.BoolVarP(&opts.verbose, "verbose", "v", getenv("BLOCK_SLEEP_DEBUG") != "", "Log debug information to stderr")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprint(stderr, usageHeader)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			opts.help = true
			return opts, nil
		}
		return opts, errs.Wrap(errs.Configuration, err)
	}
	if opts.help || opts.version {
		return opts, nil
	}

	var groups []string
	for _, name := range []string{"pid", "first", "all"} {
		if fs.Changed(name) {
			groups = append(groups, "--"+name)
		}
	}
	if len(groups) > 1 {
		return opts, errs.Errorf(errs.Configuration, "the argument '%s' cannot be used with '%s'", groups[0], groups[1])
	}

	// Trailing PIDs belong to --first or --all, so "-f 1 2 3" works.
	rest := fs.Args()
	switch {
	case fs.Changed("first"):
		first = append(first, rest...)
	case fs.Changed("all"):
		all = append(all, rest...)
	case len(rest) > 0:
		return opts, errs.Errorf(errs.Configuration, "unexpected argument '%s'", rest[0])
	}

	var err error
	if fs.Changed("pid") {
		pid, err := proc.ParsePID(pidStr)
		if err != nil {
			return opts, errs.Wrap(errs.Configuration, err)
		}
		opts.wait.PID = &pid
	}
	if fs.Changed("first") {
		if opts.wait.First, err = parsePIDs(first); err != nil {
			return opts, err
		}
	}
	if fs.Changed("all") {
		if opts.wait.All, err = parsePIDs(all); err != nil {
			return opts, err
		}
	}
	if fs.Changed("time") {
		var d time.Duration
		if d, err = duration.Parse(timeStr); err != nil {
			return opts, err
		}
		opts.wait.Timeout = &d
	}
	if backend != "" {
		if opts.backend, err = inhibit.ParseKind(backend); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func parsePIDs(ss []string) ([]proc.PID, error) {
	pids := make([]proc.PID, 0, len(ss))
	for _, s := range ss {
		pid, err := proc.ParsePID(s)
		if err != nil {
			return nil, errs.Wrap(errs.Configuration, err)
		}
		pids = append(pids, pid)
	}
	return pids, nil
}
