package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/deliverydash/internal/app"
	"github.com/allisson/deliverydash/internal/config"
	"github.com/allisson/deliverydash/internal/http"
)

// shutdownTimeout bounds the graceful stop of both servers.
const shutdownTimeout = 15 * time.Second

// RunServer starts the dashboard API and, when metrics are enabled, the metrics
// server. Blocks until SIGINT/SIGTERM or until one server fails, then stops both.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting server",
		slog.String("version", version),
		slog.String("db_driver", cfg.DBDriver),
	)

	defer closeContainer(container, logger)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}
	authHandler, err := container.AuthHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize auth handler: %w", err)
	}
	authUseCase, err := container.AuthUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize auth use case: %w", err)
	}
	shopifyHandler, err := container.ShopifyHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize shopify handler: %w", err)
	}
	userHandler, err := container.UserHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize user handler: %w", err)
	}
	metricsProvider, err := container.MetricsProvider()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics provider: %w", err)
	}

	server.SetupRouter(ctx, cfg, authHandler, authUseCase, shopifyHandler, userHandler, metricsProvider)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Start(gctx); err != nil {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	var metricsServer *http.MetricsServer
	if metricsProvider != nil {
		metricsServer, err = container.MetricsServer()
		if err != nil {
			return fmt.Errorf("failed to initialize metrics server: %w", err)
		}
		g.Go(func() error {
			if err := metricsServer.Start(gctx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	// Stops both servers on a signal or on the first server failure.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		var shutdownErrors []error
		if err := server.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
			}
		}
		return errors.Join(shutdownErrors...)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
