package inhibit

import (
	"os"
	"runtime"
	"strings"

	"github.com/coreos/go-systemd/v22/util"

	"github.com/mbrock/blocksleep/internal/errs"
)

// Host is the snapshot of host facts backend detection depends on. It is
// captured once at startup and never consulted again.
type Host struct {
	GOOS string

	// SystemdInit reports whether systemd is the init system.
	SystemdInit bool
	// InitName is the command name of pid 1, used in error messages.
	InitName string

	XDGCurrentDesktop string
	DesktopSession    string
}

// HostFromEnv probes the running host.
func HostFromEnv() Host {
	h := Host{
		GOOS:              runtime.GOOS,
		XDGCurrentDesktop: os.Getenv("XDG_CURRENT_DESKTOP"),
		DesktopSession:    os.Getenv("DESKTOP_SESSION"),
	}
	if h.GOOS == "linux" {
		h.SystemdInit = util.IsRunningSystemd()
		h.InitName = initName()
	}
	return h
}

func initName() string {
	b, err := os.ReadFile("/proc/1/comm")
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(b))
}

// Detect picks the backend for h.
func Detect(h Host) (Kind, error) {
	switch h.GOOS {
	case "darwin":
		return KindMacOS, nil
	case "linux":
	default:
		return "", errs.New(errs.Configuration, "Only Linux and MacOS are supported")
	}

	if !h.SystemdInit && h.InitName != "systemd" {
		name := h.InitName
		if name == "" {
			name = "unknown"
		}
		return "", errs.Errorf(errs.Configuration,
			"Only Linux systems using systemd are supported, found %q", name)
	}

	if isGnome(h) {
		return KindGnome, nil
	}
	return KindSystemdInhibit, nil
}

// isGnome accepts XDG_CURRENT_DESKTOP lists such as "ubuntu:GNOME".
func isGnome(h Host) bool {
	for _, d := range strings.Split(h.XDGCurrentDesktop, ":") {
		if d == "GNOME" {
			return true
		}
	}
	return h.DesktopSession == "gnome"
}
