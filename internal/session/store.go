// Package session holds the client side of a dashboard login: the persisted session,
// the activity throttle and the AuthContext state machine used by the CLI.
package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	apperrors "github.com/allisson/deliverydash/internal/errors"
	"github.com/allisson/deliverydash/internal/kvstore"
)

// Storage keys.
const (
	KeyToken     = "auth_token"
	KeyUser      = "auth_user"
	KeyTimestamp = "auth_timestamp"
)

// ErrNoSession is returned by Load when nothing usable is stored.
var ErrNoSession = apperrors.Wrap(apperrors.ErrNotFound, "no stored session")

// Snapshot is a stored session.
type Snapshot struct {
	Token     string
	User      authDomain.User
	Timestamp time.Time
}

// Store persists the session in a key-value store. The timestamp records the last
// activity, not the login, so an active session keeps sliding forward.
type Store struct {
	kv     kvstore.Store
	maxAge time.Duration
	now    func() time.Time
}

// NewStore creates a Store with the default seven day lifetime.
func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv, maxAge: authDomain.SessionTTL, now: time.Now}
}

// NewStoreWithClock creates a Store with an explicit lifetime and clock.
func NewStoreWithClock(kv kvstore.Store, maxAge time.Duration, now func() time.Time) *Store {
	return &Store{kv: kv, maxAge: maxAge, now: now}
}

// Save writes token, user and the current timestamp.
func (s *Store) Save(ctx context.Context, token string, user authDomain.User) error {
	if err := s.kv.Put(ctx, KeyToken, []byte(token)); err != nil {
		return apperrors.Wrap(err, "failed to store token")
	}
	if err := kvstore.PutJSON(ctx, s.kv, KeyUser, user); err != nil {
		return apperrors.Wrap(err, "failed to store user")
	}
	return s.Refresh(ctx)
}

// Load returns the stored session or ErrNoSession when any part is missing or corrupt.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	token, err := s.kv.Get(ctx, KeyToken)
	if err != nil || len(token) == 0 {
		return nil, s.missing(err)
	}

	var user authDomain.User
	if err := kvstore.GetJSON(ctx, s.kv, KeyUser, &user); err != nil {
		return nil, s.missing(err)
	}

	ts, err := s.timestamp(ctx)
	if err != nil {
		return nil, s.missing(err)
	}

	return &Snapshot{Token: string(token), User: user, Timestamp: ts}, nil
}

// Refresh moves the activity timestamp to now.
func (s *Store) Refresh(ctx context.Context) error {
	millis := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.kv.Put(ctx, KeyTimestamp, []byte(millis)); err != nil {
		return apperrors.Wrap(err, "failed to store session timestamp")
	}
	return nil
}

// IsExpired reports whether the session is missing or its timestamp is more than the
// maximum age in the past.
func (s *Store) IsExpired(ctx context.Context) bool {
	ts, err := s.timestamp(ctx)
	if err != nil {
		return true
	}
	return s.now().Sub(ts) > s.maxAge
}

// Clear removes every session key.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{KeyToken, KeyUser, KeyTimestamp} {
		if err := s.kv.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) timestamp(ctx context.Context) (time.Time, error) {
	raw, err := s.kv.Get(ctx, KeyTimestamp)
	if err != nil {
		return time.Time{}, err
	}
	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, apperrors.Wrap(err, "corrupt session timestamp")
	}
	return time.UnixMilli(millis), nil
}

func (s *Store) missing(err error) error {
	if err == nil || errors.Is(err, kvstore.ErrNotFound) {
		return ErrNoSession
	}
	return errors.Join(ErrNoSession, err)
}
