// Package inhibit selects a sleep-inhibition backend for the host and
// acquires leases from it.
package inhibit

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/mbrock/blocksleep/internal/errs"
)

// Kind identifies a backend implementation.
type Kind string

const (
	// KindGnome uses org.gnome.SessionManager.Inhibit. GNOME ignores
	// logind inhibitors, so it needs its own backend.
	KindGnome Kind = "gnome"
	// KindSystemdInhibit uses org.freedesktop.login1.Manager.Inhibit.
	KindSystemdInhibit Kind = "systemd-inhibit"
	// KindSystemdMask masks the sleep, suspend and hibernate targets.
	// Works on any systemd host but needs root.
	KindSystemdMask Kind = "systemd-mask"
	// KindMacOS uses IOKit power assertions.
	KindMacOS Kind = "macos"
)

var kinds = []Kind{KindGnome, KindSystemdInhibit, KindSystemdMask, KindMacOS}

// ParseKind validates a backend name given by the user.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return "", errs.Errorf(errs.Configuration, "unknown backend %q (want one of: %s)", s, strings.Join(names, ", "))
}

// DefaultReason is shown by the session manager next to the inhibitor.
const DefaultReason = "Sleep block manually requested"

// DefaultAppID names the inhibiting application.
const DefaultAppID = "block-sleep"

// Config configures a lease.
type Config struct {
	Kind   Kind
	AppID  string
	Reason string
	Logger *slog.Logger
}

func withDefaults(cfg Config) Config {
	if cfg.AppID == "" {
		cfg.AppID = DefaultAppID
	}
	if cfg.Reason == "" {
		cfg.Reason = DefaultReason
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

// Lease keeps sleep inhibited until it is released. Release is safe to
// call more than once; only the first call does anything.
type Lease interface {
	Release() error
}

type opener func(ctx context.Context, cfg Config) (Lease, error)

var openers = map[Kind]opener{}

// Register makes a backend implementation available to Open.
// Implementations call this from init().
func Register(kind Kind, o opener) {
	if kind == "" {
		panic("inhibit: register with empty kind")
	}
	if o == nil {
		panic("inhibit: register with nil opener")
	}
	if _, exists := openers[kind]; exists {
		panic("inhibit: duplicate register for kind " + string(kind))
	}
	openers[kind] = o
}

// Implemented lists the kinds Open can acquire a lease from.
func Implemented() []Kind {
	out := make([]Kind, 0, len(openers))
	for k := range openers {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Open acquires a lease from the backend cfg.Kind names.
func Open(ctx context.Context, cfg Config) (Lease, error) {
	cfg = withDefaults(cfg)
	o, ok := openers[cfg.Kind]
	if !ok {
		return nil, errs.Errorf(errs.UnsupportedBackend, "backend %q is not implemented", cfg.Kind)
	}
	lease, err := o(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("inhibitor lease acquired", "backend", string(cfg.Kind))
	return lease, nil
}

// Flags are the inhibition bits of org.gnome.SessionManager.Inhibit.
type Flags uint32

const (
	LogOut     Flags = 1
	SwitchUser Flags = 2
	Suspend    Flags = 4
	Idle       Flags = 8
	AutoMount  Flags = 16
)

func (f Flags) String() string {
	names := []struct {
		bit  Flags
		name string
	}{
		{LogOut, "logout"},
		{SwitchUser, "switch-user"},
		{Suspend, "suspend"},
		{Idle, "idle"},
		{AutoMount, "automount"},
	}
	var parts []string
	rest := f
	for _, n := range names {
		if f&n.bit != 0 {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
