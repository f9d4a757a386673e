package inhibit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrock/blocksleep/internal/errs"
)

type recordedCall struct {
	method string
	args   []any
}

type fakeSessionManager struct {
	calls      []recordedCall
	inhibitErr error
	cookie     uint32
	closed     int
}

func (f *fakeSessionManager) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...any) *dbus.Call {
	f.calls = append(f.calls, recordedCall{method: method, args: args})
	switch method {
	case gnomeInterface + ".Inhibit":
		if f.inhibitErr != nil {
			return &dbus.Call{Err: f.inhibitErr}
		}
		return &dbus.Call{Body: []any{f.cookie}}
	default:
		return &dbus.Call{}
	}
}

func (f *fakeSessionManager) Close() error {
	f.closed++
	return nil
}

func testConfig() Config {
	return withDefaults(Config{Kind: KindGnome, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

func TestGnomeLeaseInhibitArgs(t *testing.T) {
	sm := &fakeSessionManager{cookie: 99}
	lease, err := newGnomeLease(context.Background(), sm, sm, testConfig())
	require.NoError(t, err)
	assert.Equal(t, uint32(99), lease.cookie)

	require.Len(t, sm.calls, 1)
	assert.Equal(t, "org.gnome.SessionManager.Inhibit", sm.calls[0].method)
	assert.Equal(t, []any{"block-sleep", uint32(0), DefaultReason, uint32(12)}, sm.calls[0].args)
}

func TestGnomeLeaseReleaseOnce(t *testing.T) {
	sm := &fakeSessionManager{cookie: 5}
	lease, err := newGnomeLease(context.Background(), sm, sm, testConfig())
	require.NoError(t, err)

	require.NoError(t, lease.Release())
	require.NoError(t, lease.Release())

	assert.Equal(t, 1, sm.closed)
	require.Len(t, sm.calls, 2)
	assert.Equal(t, "org.gnome.SessionManager.Uninhibit", sm.calls[1].method)
	assert.Equal(t, []any{uint32(5)}, sm.calls[1].args)
}

func TestGnomeLeaseInhibitFailure(t *testing.T) {
	sm := &fakeSessionManager{inhibitErr: errors.New("org.freedesktop.DBus.Error.ServiceUnknown")}
	_, err := newGnomeLease(context.Background(), sm, sm, testConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ResourceAcquisition)
	assert.Contains(t, err.Error(), "Failed to block sleep using the Gnome session manager")
	assert.Contains(t, err.Error(), "ServiceUnknown")
}
