package widgetsync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/allisson/deliverydash/internal/scheduler"
)

// DefaultDebounce is the quiet period before a triggered push runs.
const DefaultDebounce = time.Second

// Syncer debounces Trigger calls into a single Push of the latest payload.
type Syncer struct {
	pusher   Pusher
	logger   *slog.Logger
	debounce time.Duration
	timeout  time.Duration
	onResult func(error)
	task     *scheduler.Task

	mu      sync.Mutex
	pending *Payload
}

// SyncerOption configures a Syncer.
type SyncerOption func(*Syncer)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) SyncerOption {
	return func(s *Syncer) { s.debounce = d }
}

// WithTimeout bounds each push. Zero means no bound beyond the HTTP client's.
func WithTimeout(d time.Duration) SyncerOption {
	return func(s *Syncer) { s.timeout = d }
}

// WithResultHandler registers fn to receive the outcome of every push.
func WithResultHandler(fn func(error)) SyncerOption {
	return func(s *Syncer) { s.onResult = fn }
}

// NewSyncer creates a Syncer on pusher.
func NewSyncer(pusher Pusher, logger *slog.Logger, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		pusher:   pusher,
		logger:   logger,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.task = scheduler.NewTask(s.run)
	return s
}

// Trigger schedules a push of payload, replacing any payload not yet pushed.
func (s *Syncer) Trigger(payload Payload) {
	s.mu.Lock()
	s.pending = &payload
	s.mu.Unlock()

	s.task.Schedule(s.debounce)
}

// Flush runs a pending push now, on the calling goroutine.
func (s *Syncer) Flush() {
	if s.task.Cancel() {
		s.run()
	}
}

// Close drops a pending push and waits for one in progress.
func (s *Syncer) Close() {
	s.task.Stop()
}

func (s *Syncer) run() {
	s.mu.Lock()
	payload := s.pending
	s.pending = nil
	s.mu.Unlock()

	if payload == nil {
		return
	}

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := s.pusher.Push(ctx, *payload)
	if err != nil {
		s.logger.Warn("widget sync failed", slog.String("user_id", payload.UserID), slog.Any("error", err))
	} else {
		s.logger.Info("widget sync completed", slog.String("user_id", payload.UserID))
	}

	if s.onResult != nil {
		s.onResult(err)
	}
}
