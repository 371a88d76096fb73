package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	"github.com/allisson/deliverydash/internal/autosave"
	"github.com/allisson/deliverydash/internal/delivery"
	"github.com/allisson/deliverydash/internal/widgetsync"
)

// DefaultPollInterval is how often watch-config rereads the file.
const DefaultPollInterval = 500 * time.Millisecond

// finalSaveTimeout bounds the save issued when watch-config stops.
const finalSaveTimeout = 10 * time.Second

// WatchOptions configures RunWatchConfig.
type WatchOptions struct {
	Path         string
	Delay        time.Duration
	PollInterval time.Duration
}

// RunWatchConfig edits the stored delivery configuration from a local file. Each file
// change is autosaved to the dashboard after opts.Delay of quiet; each successful save
// triggers a debounced widget sync through syncer (when not nil). On ctx cancellation
// pending changes are saved and synced once more before returning.
func RunWatchConfig(
	ctx context.Context,
	s Session,
	syncer *widgetsync.Syncer,
	logger *slog.Logger,
	ioTuple IOTuple,
	opts WatchOptions,
) error {
	user, err := requireUser(s)
	if err != nil {
		return err
	}
	userID := authDomain.UserID(user.Username)

	if _, err := os.Stat(opts.Path); err != nil {
		return fmt.Errorf("failed to watch config file: %w", err)
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	var stored struct {
		Data delivery.Config `json:"data"`
	}
	if err := s.Do(ctx, http.MethodGet, "/api/user/data", nil, &stored); err != nil {
		return fmt.Errorf("failed to load stored config: %w", err)
	}
	stored.Data.Normalize()

	save := func(ctx context.Context, cfg delivery.Config) error {
		if err := s.Do(ctx, http.MethodPost, "/api/user/data", cfg, nil); err != nil {
			return err
		}
		if syncer != nil {
			syncer.Trigger(widgetsync.Payload{UserID: userID, Config: cfg})
		}
		return nil
	}

	manager := autosave.NewManager(ctx, stored.Data, save,
		autosave.WithDelay(opts.Delay),
		autosave.WithLogger(logger),
		autosave.WithSavedHandler(func(at time.Time) {
			_, _ = fmt.Fprintf(ioTuple.Writer, "Saved at %s\n", at.Format(time.TimeOnly))
		}),
		autosave.WithErrorHandler(func(err error) {
			_, _ = fmt.Fprintf(ioTuple.Writer, "Save failed: %v\n", err)
		}),
	)
	defer manager.Close()

	_, _ = fmt.Fprintf(ioTuple.Writer, "Watching %s\n", opts.Path)

	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	var lastRaw []byte
	for {
		cfg, raw, readErr := readConfigFile(opts.Path)
		switch {
		case readErr != nil && !bytes.Equal(raw, lastRaw):
			logger.Warn("ignoring config file", slog.Any("error", readErr))
			lastRaw = raw
		case readErr == nil && !bytes.Equal(raw, lastRaw):
			manager.Update(cfg)
			lastRaw = raw
		}

		select {
		case <-ctx.Done():
			err := finishWatch(manager, logger)
			if syncer != nil {
				syncer.Flush()
			}
			return err
		case <-ticker.C:
		}
	}
}

// finishWatch flushes pending changes with a fresh context, ctx being already done.
func finishWatch(manager *autosave.Manager[delivery.Config], logger *slog.Logger) error {
	saveCtx, cancel := context.WithTimeout(context.Background(), finalSaveTimeout)
	defer cancel()

	err := manager.SaveNow(saveCtx)
	if errors.Is(err, autosave.ErrSaveInProgress) {
		logger.Warn("save still in progress on exit, latest changes may be lost")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to save pending changes: %w", err)
	}
	return nil
}
