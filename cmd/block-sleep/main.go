// block-sleep - Block your system from sleeping
//
// Usage:
//
//	block-sleep                        Block sleep until interrupted
//	block-sleep -t 2h                  Block sleep for two hours
//	block-sleep -p 1234                Block sleep until pid 1234 exits
//	block-sleep -f 1234 5678 -t 1d     Until the first exits, at most a day
//	block-sleep -a 1234 5678           Until both have exited
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/mbrock/blocksleep/internal/blocker"
	"github.com/mbrock/blocksleep/internal/inhibit"
	"github.com/mbrock/blocksleep/internal/wait"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, paint(os.Stderr, "1;31", "error:"), err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseArgs(args, os.Getenv, os.Stderr)
	if err != nil {
		return err
	}
	if opts.help {
		return nil
	}
	if opts.version {
		fmt.Println("block-sleep", version)
		return nil
	}

	logLevel := slog.LevelWarn
	if opts.verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	mode, err := wait.ModeFromConfig(opts.wait)
	if err != nil {
		return err
	}

	kind := opts.backend
	if kind == "" {
		host := inhibit.HostFromEnv()
		if kind, err = inhibit.Detect(host); err != nil {
			return err
		}
		slog.Debug("detected backend", "backend", string(kind), "os", host.GOOS,
			"xdg_current_desktop", host.XDGCurrentDesktop, "desktop_session", host.DesktopSession)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := blocker.New(blocker.Config{
		Inhibit: inhibit.Config{Kind: kind, Reason: opts.reason},
		Warn: func(msg string) {
			fmt.Fprintln(os.Stdout, paint(os.Stdout, "1;33", "warn:"), msg)
		},
	})
	_, err = b.Run(ctx, mode)
	return err
}

// paint wraps s in an SGR sequence when w is a terminal.
func paint(w io.Writer, sgr, s string) string {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(f.Fd())) {
		return s
	}
	return "\x1b[" + sgr + "m" + s + "\x1b[0m"
}
