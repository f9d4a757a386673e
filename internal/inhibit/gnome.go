package inhibit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/mbrock/blocksleep/internal/errs"
)

const (
	gnomeBusName   = "org.gnome.SessionManager"
	gnomePath      = dbus.ObjectPath("/org/gnome/SessionManager")
	gnomeInterface = "org.gnome.SessionManager"

	// gnomeFlags is what a sleep block inhibits.
	gnomeFlags = Suspend | Idle

	releaseTimeout = 5 * time.Second
)

func init() {
	Register(KindGnome, openGnome)
}

// busObject is the part of dbus.BusObject a GNOME lease uses.
type busObject interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...any) *dbus.Call
}

// gnomeLease holds a GNOME session manager inhibitor. The session manager
// drops the inhibitor when our bus connection goes away, so closing the
// connection is enough to release it even if Uninhibit fails.
type gnomeLease struct {
	obj    busObject
	conn   io.Closer
	cookie uint32
	log    *slog.Logger

	once sync.Once
	err  error
}

func openGnome(ctx context.Context, cfg Config) (Lease, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return nil, gnomeError(fmt.Errorf("connecting to session bus: %w", err))
	}
	lease, err := newGnomeLease(ctx, conn.Object(gnomeBusName, gnomePath), conn, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return lease, nil
}

func newGnomeLease(ctx context.Context, obj busObject, conn io.Closer, cfg Config) (*gnomeLease, error) {
	// in: app_id, toplevel_xid, reason, flags; out: inhibit_cookie
	var cookie uint32
	err := obj.CallWithContext(ctx, gnomeInterface+".Inhibit", 0,
		cfg.AppID, uint32(0), cfg.Reason, uint32(gnomeFlags)).Store(&cookie)
	if err != nil {
		return nil, gnomeError(fmt.Errorf("calling Inhibit: %w", err))
	}
	cfg.Logger.Debug("gnome inhibitor registered", "cookie", cookie, "flags", gnomeFlags.String())
	return &gnomeLease{obj: obj, conn: conn, cookie: cookie, log: cfg.Logger}, nil
}

func gnomeError(err error) error {
	return errs.Errorf(errs.ResourceAcquisition,
		"Failed to block sleep using the Gnome session manager: %w", err)
}

func (l *gnomeLease) Release() error {
	l.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()

		var uninhibitErr error
		if call := l.obj.CallWithContext(ctx, gnomeInterface+".Uninhibit", 0, l.cookie); call.Err != nil {
			uninhibitErr = fmt.Errorf("calling Uninhibit: %w", call.Err)
		}
		var closeErr error
		if l.conn != nil {
			if err := l.conn.Close(); err != nil {
				closeErr = fmt.Errorf("closing session bus: %w", err)
			}
		}
		l.err = errors.Join(uninhibitErr, closeErr)
		l.log.Debug("gnome inhibitor released", "cookie", l.cookie, "err", l.err)
	})
	return l.err
}
