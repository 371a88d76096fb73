// Package autosave debounces snapshot changes into saves.
//
// A Manager receives snapshots through Update and saves the latest one once input has
// been quiet for the configured delay. At most one save runs at a time; intermediate
// snapshots may be skipped but the last one always wins. Failures mark the manager
// dirty again and are reported to OnError; nothing is retried automatically.
package autosave

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"time"

	apperrors "github.com/allisson/deliverydash/internal/errors"
	"github.com/allisson/deliverydash/internal/scheduler"
)

// DefaultDelay is the quiet period before an automatic save.
const DefaultDelay = 2 * time.Second

// ErrSaveInProgress is returned by SaveNow while another save runs.
var ErrSaveInProgress = apperrors.New("save already in progress")

// ErrClosed is returned by SaveNow after Close.
var ErrClosed = apperrors.New("autosave manager closed")

// SaveFunc persists a snapshot.
type SaveFunc[T any] func(ctx context.Context, snapshot T) error

// State is the externally visible save status.
type State struct {
	Saving            bool
	HasUnsavedChanges bool
	LastSaved         time.Time
	LastError         error
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	delay   time.Duration
	onError func(error)
	onSaved func(time.Time)
	logger  *slog.Logger
	now     func() time.Time
}

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithErrorHandler registers fn to receive save failures.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}

// WithSavedHandler registers fn to be called with the completion time of every
// successful save.
func WithSavedHandler(fn func(time.Time)) Option {
	return func(o *options) { o.onSaved = fn }
}

// WithLogger sets the logger used for save outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Manager debounces snapshots of type T. Snapshots are compared with deep equality,
// so callers must not mutate a value after passing it to Update.
type Manager[T any] struct {
	save SaveFunc[T]
	opts options
	task *scheduler.Task

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	current     T
	lastSaved   T
	inflight    T
	dirty       bool
	saving      bool
	lastSavedAt time.Time
	lastErr     error
	closed      bool
}

// NewManager creates a Manager whose last saved snapshot is initial. Timer driven
// saves run with a context derived from ctx.
func NewManager[T any](ctx context.Context, initial T, save SaveFunc[T], opts ...Option) *Manager[T] {
	o := options{
		delay:  DefaultDelay,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager[T]{
		save:      save,
		opts:      o,
		current:   initial,
		lastSaved: initial,
	}
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.task = scheduler.NewTask(m.flush)
	return m
}

// Update records snapshot. A snapshot deep-equal to the last saved one (or, while a
// save runs, to the snapshot being saved) clears the dirty flag and cancels the
// pending save; anything else (re)starts the delay.
func (m *Manager[T]) Update(snapshot T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	m.current = snapshot
	baseline := m.lastSaved
	if m.saving {
		baseline = m.inflight
	}
	if reflect.DeepEqual(snapshot, baseline) {
		m.dirty = false
		if !m.saving {
			m.task.Cancel()
		}
		return
	}

	m.dirty = true
	m.task.Schedule(m.opts.delay)
}

// SaveNow cancels the pending timer and saves the current snapshot synchronously.
// It returns nil without saving when nothing changed, and ErrSaveInProgress (after
// re-arming the timer) when a save is already running.
func (m *Manager[T]) SaveNow(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.saving {
		m.task.Schedule(m.opts.delay)
		m.mu.Unlock()
		return ErrSaveInProgress
	}
	m.task.Cancel()
	if !m.dirty {
		m.mu.Unlock()
		return nil
	}
	snapshot := m.begin()
	m.mu.Unlock()

	return m.run(ctx, snapshot)
}

// State returns the current save status.
func (m *Manager[T]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return State{
		Saving:            m.saving,
		HasUnsavedChanges: m.dirty,
		LastSaved:         m.lastSavedAt,
		LastError:         m.lastErr,
	}
}

// Close cancels the pending save and the context of a timer driven save in progress,
// waits for it and disables the manager. Unsaved changes are dropped; call SaveNow
// first to keep them.
func (m *Manager[T]) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.cancel()
	m.task.Stop()
}

// flush is the timer callback.
func (m *Manager[T]) flush() {
	m.mu.Lock()
	if m.closed || !m.dirty {
		m.mu.Unlock()
		return
	}
	if m.saving {
		// Try again on the next cycle; the running save may already cover it.
		m.task.Schedule(m.opts.delay)
		m.mu.Unlock()
		return
	}
	snapshot := m.begin()
	m.mu.Unlock()

	_ = m.run(m.ctx, snapshot)
}

// begin marks a save in flight and returns the snapshot to save. Caller holds mu.
func (m *Manager[T]) begin() T {
	m.saving = true
	m.inflight = m.current
	return m.current
}

func (m *Manager[T]) run(ctx context.Context, snapshot T) error {
	err := m.save(ctx, snapshot)

	m.mu.Lock()
	m.saving = false
	var savedAt time.Time
	if err == nil {
		savedAt = m.opts.now()
		m.lastSaved = snapshot
		m.lastSavedAt = savedAt
		m.lastErr = nil
		m.dirty = !reflect.DeepEqual(m.current, snapshot)
		if m.dirty && !m.closed {
			m.task.Schedule(m.opts.delay)
		}
	} else {
		m.lastErr = err
		m.dirty = true
	}
	m.mu.Unlock()

	if err != nil {
		m.opts.logger.Warn("autosave failed", slog.Any("error", err))
		if m.opts.onError != nil {
			m.opts.onError(err)
		}
		return err
	}

	m.opts.logger.Debug("autosave completed", slog.Time("saved_at", savedAt))
	if m.opts.onSaved != nil {
		m.opts.onSaved(savedAt)
	}
	return nil
}
