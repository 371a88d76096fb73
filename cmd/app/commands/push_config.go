package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// RunPushConfig asks the dashboard to push a configuration to the widget worker.
// With an empty path the stored configuration is pushed; otherwise the file's
// content is pushed without being saved.
func RunPushConfig(ctx context.Context, s Session, logger *slog.Logger, ioTuple IOTuple, path string) error {
	if _, err := requireUser(s); err != nil {
		return err
	}

	var body any
	if path != "" {
		cfg, _, err := readConfigFile(path)
		if err != nil {
			return err
		}
		body = map[string]any{"data": cfg}
	}

	if err := s.Do(ctx, http.MethodPost, "/api/user/sync", body, nil); err != nil {
		return fmt.Errorf("failed to sync widget: %w", err)
	}

	logger.Info("widget synced", slog.String("source", sourceName(path)))
	_, err := fmt.Fprintln(ioTuple.Writer, "Widget synced")
	return err
}

func sourceName(path string) string {
	if path == "" {
		return "stored"
	}
	return path
}
