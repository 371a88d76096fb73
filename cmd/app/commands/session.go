package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	"github.com/allisson/deliverydash/internal/config"
	"github.com/allisson/deliverydash/internal/httputil"
	"github.com/allisson/deliverydash/internal/kvstore"
	"github.com/allisson/deliverydash/internal/session"
	"github.com/allisson/deliverydash/internal/widgetsync"
)

// clientTimeout bounds each call the CLI makes to the dashboard API.
const clientTimeout = 30 * time.Second

// Session is the part of session.AuthContext the client commands use.
type Session interface {
	Login(ctx context.Context, username, password string) bool
	Logout(ctx context.Context)
	State() session.State
	User() (authDomain.User, bool)
	Do(ctx context.Context, method, path string, in, out any) error
}

// OpenSession restores the CLI session stored at cfg.SessionDBPath. The returned
// function stops the expiry loop and closes the store.
func OpenSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*session.AuthContext, func(), error) {
	kv, err := kvstore.OpenSQLiteStore(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}

	api := session.NewHTTPAuthAPI(cfg.DashboardURL, httputil.NewHTTPClient(clientTimeout, nil))
	authContext := session.NewAuthContext(
		session.NewStoreWithClock(kv, cfg.SessionTTL, time.Now),
		api,
		logger,
		session.WithStateListener(func(state session.State) {
			logger.Debug("session state changed", slog.String("state", state.String()))
		}),
	)

	if err := authContext.Init(ctx); err != nil {
		logger.Warn("session storage problem", slog.Any("error", err))
	}

	closeFn := func() {
		authContext.Teardown()
		if err := kv.Close(); err != nil {
			logger.Error("failed to close session store", slog.Any("error", err))
		}
	}
	return authContext, closeFn, nil
}

// dashboardPusher pushes through the dashboard's /api/user/sync endpoint, so the
// widget worker URL only has to be known by the server.
type dashboardPusher struct {
	session Session
}

// NewDashboardPusher returns a widgetsync.Pusher that relays through the dashboard.
func NewDashboardPusher(s Session) widgetsync.Pusher {
	return &dashboardPusher{session: s}
}

func (p *dashboardPusher) Push(ctx context.Context, payload widgetsync.Payload) error {
	body := map[string]any{"data": payload.Config}
	return p.session.Do(ctx, http.MethodPost, "/api/user/sync", body, nil)
}

// requireUser returns the logged in user or an error telling how to log in.
func requireUser(s Session) (authDomain.User, error) {
	user, ok := s.User()
	if !ok {
		return authDomain.User{}, fmt.Errorf("not logged in, run the login command first")
	}
	return user, nil
}
