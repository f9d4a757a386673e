package inhibit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrock/blocksleep/internal/errs"
)

func TestDetect(t *testing.T) {
	systemd := Host{GOOS: "linux", SystemdInit: true, InitName: "systemd"}

	tests := []struct {
		name string
		host Host
		want Kind
	}{
		{"macos", Host{GOOS: "darwin"}, KindMacOS},
		{"no desktop", systemd, KindSystemdInhibit},
		{"gnome desktop", with(systemd, "GNOME", ""), KindGnome},
		{"gnome session", with(systemd, "", "gnome"), KindGnome},
		{"ubuntu gnome", with(systemd, "ubuntu:GNOME", "ubuntu"), KindGnome},
		{"kde", with(systemd, "KDE", "plasma"), KindSystemdInhibit},
		{"kde with gnome session", with(systemd, "KDE", "gnome"), KindGnome},
		{"lowercase desktop", with(systemd, "gnome", ""), KindSystemdInhibit},
		{"init named systemd", Host{GOOS: "linux", InitName: "systemd"}, KindSystemdInhibit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.host)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func with(h Host, xdg, session string) Host {
	h.XDGCurrentDesktop = xdg
	h.DesktopSession = session
	return h
}

func TestDetectNonSystemdLinux(t *testing.T) {
	_, err := Detect(Host{GOOS: "linux", InitName: "runit"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Configuration)
	assert.Equal(t, `Only Linux systems using systemd are supported, found "runit"`, err.Error())
}

func TestDetectUnsupportedOS(t *testing.T) {
	_, err := Detect(Host{GOOS: "windows"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Configuration)
	assert.Equal(t, "Only Linux and MacOS are supported", err.Error())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("systemd-inhibit")
	require.NoError(t, err)
	assert.Equal(t, KindSystemdInhibit, k)

	_, err = ParseKind("upower")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Configuration)
}

func TestOpenUnimplementedBackends(t *testing.T) {
	for _, k := range []Kind{KindSystemdInhibit, KindSystemdMask, KindMacOS} {
		t.Run(string(k), func(t *testing.T) {
			_, err := Open(context.Background(), Config{Kind: k})
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.UnsupportedBackend)
		})
	}
}

func TestImplemented(t *testing.T) {
	assert.Equal(t, []Kind{KindGnome}, Implemented())
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() { Register(KindGnome, openGnome) })
	assert.Panics(t, func() { Register("", openGnome) })
	assert.Panics(t, func() { Register("other", nil) })
}

func TestFlags(t *testing.T) {
	assert.Equal(t, Flags(12), Suspend|Idle)
	assert.Equal(t, "suspend|idle", (Suspend | Idle).String())
	assert.Equal(t, "none", Flags(0).String())
	assert.Equal(t, "logout|0x40", (LogOut | 64).String())
}
