package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/allisson/deliverydash/cmd/app/commands"
	"github.com/allisson/deliverydash/internal/app"
	"github.com/allisson/deliverydash/internal/config"
	"github.com/allisson/deliverydash/internal/session"
	"github.com/allisson/deliverydash/internal/widgetsync"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

// withSession runs fn with the CLI session restored from disk.
func withSession(
	ctx context.Context,
	fn func(cfg *config.Config, container *app.Container, s *session.AuthContext) error,
) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	s, closeSession, err := commands.OpenSession(ctx, cfg, container.Logger())
	if err != nil {
		return err
	}
	defer closeSession()

	return fn(cfg, container, s)
}

func getClientCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "login",
			Usage: "Log in to the dashboard and store the session",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Dashboard username",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Dashboard password (omit to read it from stdin)",
					Sources: cli.EnvVars("DASHBOARD_PASSWORD"),
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSession(ctx, func(_ *config.Config, container *app.Container, s *session.AuthContext) error {
					return commands.RunLogin(
						ctx,
						s,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("username"),
						cmd.String("password"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "logout",
			Usage: "Log out and clear the stored session",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSession(ctx, func(_ *config.Config, _ *app.Container, s *session.AuthContext) error {
					return commands.RunLogout(ctx, s, commands.DefaultIO())
				})
			},
		},
		{
			Name:  "status",
			Usage: "Show the stored session",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSession(ctx, func(_ *config.Config, _ *app.Container, s *session.AuthContext) error {
					return commands.RunStatus(s, commands.DefaultIO(), cmd.String("format"))
				})
			},
		},
		{
			Name:  "push-config",
			Usage: "Push the delivery configuration to the storefront widget",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "file",
					Aliases: []string{"c"},
					Usage:   "Configuration file to push instead of the stored one",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSession(ctx, func(_ *config.Config, container *app.Container, s *session.AuthContext) error {
					return commands.RunPushConfig(ctx, s, container.Logger(), commands.DefaultIO(), cmd.String("file"))
				})
			},
		},
		{
			Name:  "watch-config",
			Usage: "Autosave a local delivery configuration file to the dashboard",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Configuration file to watch",
				},
				&cli.DurationFlag{
					Name:  "poll-interval",
					Value: commands.DefaultPollInterval,
					Usage: "How often the file is reread",
				},
				&cli.BoolFlag{
					Name:  "sync",
					Value: true,
					Usage: "Push every saved configuration to the storefront widget",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer cancel()

				return withSession(ctx, func(cfg *config.Config, container *app.Container, s *session.AuthContext) error {
					var syncer *widgetsync.Syncer
					if cmd.Bool("sync") {
						syncer = widgetsync.NewSyncer(
							commands.NewDashboardPusher(s),
							container.Logger(),
							widgetsync.WithTimeout(cfg.WidgetSyncTimeout),
						)
						defer syncer.Close()
					}

					return commands.RunWatchConfig(ctx, s, syncer, container.Logger(), commands.DefaultIO(), commands.WatchOptions{
						Path:         cmd.String("file"),
						Delay:        cfg.AutoSaveDelay,
						PollInterval: cmd.Duration("poll-interval"),
					})
				})
			},
		},
	}
}
