package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	apperrors "github.com/allisson/deliverydash/internal/errors"
)

// CheckInterval is how often the background loop looks for an expired session.
const CheckInterval = 5 * time.Minute

// State is the AuthContext lifecycle state.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AuthContext owns the client session: it restores it from the Store, logs in and
// out through the AuthAPI, keeps the activity timestamp fresh and logs out once the
// session expires.
//
// Requests already in flight when Logout runs are not cancelled.
type AuthContext struct {
	store    *Store
	api      AuthAPI
	throttle *Throttle
	logger   *slog.Logger
	interval time.Duration

	mu       sync.RWMutex
	state    State
	token    string
	user     authDomain.User
	onChange func(State)

	loopMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures an AuthContext.
type Option func(*AuthContext)

// WithCheckInterval overrides CheckInterval.
func WithCheckInterval(d time.Duration) Option {
	return func(a *AuthContext) { a.interval = d }
}

// WithThrottle overrides the activity throttle.
func WithThrottle(t *Throttle) Option {
	return func(a *AuthContext) { a.throttle = t }
}

// WithStateListener registers fn to be called after every state change.
func WithStateListener(fn func(State)) Option {
	return func(a *AuthContext) { a.onChange = fn }
}

// NewAuthContext creates an AuthContext in StateLoading.
func NewAuthContext(store *Store, api AuthAPI, logger *slog.Logger, opts ...Option) *AuthContext {
	a := &AuthContext{
		store:    store,
		api:      api,
		throttle: NewThrottle(ActivityInterval),
		logger:   logger,
		interval: CheckInterval,
		state:    StateLoading,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init restores a stored, unexpired session or clears storage, then starts the
// background expiry check. The returned error only reports storage problems; the
// resulting state is always usable.
func (a *AuthContext) Init(ctx context.Context) error {
	var initErr error

	snapshot, err := a.store.Load(ctx)
	if err == nil && !a.store.IsExpired(ctx) {
		initErr = a.store.Refresh(ctx)
		a.setAuthenticated(snapshot.Token, snapshot.User)
	} else {
		if err != nil && !apperrors.Is(err, ErrNoSession) {
			a.logger.WarnContext(ctx, "stored session unreadable", slog.Any("error", err))
		}
		initErr = a.store.Clear(ctx)
		a.setUnauthenticated()
	}

	a.startLoop()
	return initErr
}

// Login authenticates against the backend. It never returns an error: failures are
// logged and reported as false.
func (a *AuthContext) Login(ctx context.Context, username, password string) bool {
	result, err := a.api.Login(ctx, username, password)
	if err != nil {
		a.logger.InfoContext(ctx, "login failed", slog.String("username", username), slog.Any("error", err))
		return false
	}

	if err := a.store.Save(ctx, result.Token, result.User); err != nil {
		a.logger.ErrorContext(ctx, "failed to persist session", slog.Any("error", err))
		return false
	}

	a.setAuthenticated(result.Token, result.User)
	return true
}

// Logout notifies the backend (best effort), clears storage and moves to
// StateUnauthenticated. Calling it repeatedly is safe.
func (a *AuthContext) Logout(ctx context.Context) {
	a.mu.RLock()
	token := a.token
	a.mu.RUnlock()

	if token != "" {
		if err := a.api.Logout(ctx, token); err != nil {
			a.logger.WarnContext(ctx, "server logout failed", slog.Any("error", err))
		}
	}

	if err := a.store.Clear(ctx); err != nil {
		a.logger.WarnContext(ctx, "failed to clear stored session", slog.Any("error", err))
	}
	a.setUnauthenticated()
}

// RecordActivity refreshes the session timestamp at most once per throttle interval.
func (a *AuthContext) RecordActivity(ctx context.Context) {
	if a.State() != StateAuthenticated || !a.throttle.Allow() {
		return
	}
	if err := a.store.Refresh(ctx); err != nil {
		a.logger.WarnContext(ctx, "failed to refresh session", slog.Any("error", err))
	}
}

// OnAuthenticatedResponse refreshes the session after a successful authenticated call.
func (a *AuthContext) OnAuthenticatedResponse(ctx context.Context) {
	if a.State() != StateAuthenticated {
		return
	}
	if err := a.store.Refresh(ctx); err != nil {
		a.logger.WarnContext(ctx, "failed to refresh session", slog.Any("error", err))
	}
}

// Do performs an authenticated API call. A 401 answer logs the session out; any
// success refreshes it.
func (a *AuthContext) Do(ctx context.Context, method, path string, in, out any) error {
	token := a.Token()
	if token == "" {
		return authDomain.ErrNoToken
	}

	err := a.api.Call(ctx, method, path, token, in, out)
	switch {
	case err == nil:
		a.OnAuthenticatedResponse(ctx)
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		a.Logout(ctx)
	}
	return err
}

// CheckExpiry logs out when the stored session has expired. The background loop
// calls it every interval.
func (a *AuthContext) CheckExpiry(ctx context.Context) {
	if a.State() == StateAuthenticated && a.store.IsExpired(ctx) {
		a.logger.InfoContext(ctx, "session expired")
		a.Logout(ctx)
	}
}

// Teardown stops the background loop and waits for it to exit.
func (a *AuthContext) Teardown() {
	a.loopMu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.loopMu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// State returns the current state.
func (a *AuthContext) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Token returns the current token or "".
func (a *AuthContext) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// User returns the current user and whether one is logged in.
func (a *AuthContext) User() (authDomain.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user, a.state == StateAuthenticated
}

func (a *AuthContext) startLoop() {
	a.loopMu.Lock()
	defer a.loopMu.Unlock()

	if a.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	a.cancel, a.done = cancel, done

	go func() {
		defer close(done)

		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.CheckExpiry(ctx)
			}
		}
	}()
}

func (a *AuthContext) setAuthenticated(token string, user authDomain.User) {
	a.transition(StateAuthenticated, token, user)
}

func (a *AuthContext) setUnauthenticated() {
	a.transition(StateUnauthenticated, "", authDomain.User{})
}

func (a *AuthContext) transition(state State, token string, user authDomain.User) {
	a.mu.Lock()
	changed := a.state != state
	a.state, a.token, a.user = state, token, user
	listener := a.onChange
	a.mu.Unlock()

	if changed && listener != nil {
		listener(state)
	}
}
