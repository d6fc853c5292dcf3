package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/billingcat/invoicedesk/model"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const defaultConfigFile = "config.toml"

// newLogger follows the mode: text and debug while developing, JSON and
// info otherwise.
func newLogger(cfg *model.Config) *slog.Logger {
	if cfg.Mode == "development" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func loadConfig(c *cli.Context) (*model.Config, error) {
	cfg, err := model.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("mode") {
		cfg.Mode = c.String("mode")
	}
	return cfg, nil
}

// workspaceAction opens the configured store for the duration of one
// command.
func workspaceAction(run func(c *cli.Context, ws *model.Workspace) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)
		kv, err := model.OpenKV(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := model.CloseKV(kv); err != nil {
				logger.Warn("cannot close store", "error", err)
			}
		}()
		ws, err := model.OpenWorkspace(model.NewStorage(kv), model.WithLogger(logger))
		if err != nil {
			return err
		}
		return run(c, ws)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "invoicedesk",
		Usage: "create, track and export invoices",
		// descriptions of line items may contain commas
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   defaultConfigFile,
				EnvVars: []string{"INVOICEDESK_CONFIG"},
				Usage:   "path of the TOML configuration",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "configuration section to use (development, production, ...)",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			invoiceCommand(),
			itemCommand(),
			clientCommand(),
			businessCommand(),
			exportCommand(),
			statsCommand(),
			clearCommand(),
			migrateCommand(),
		},
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "cannot read .env:", err)
	}
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("invoicedesk failed", "error", err)
		os.Exit(1)
	}
}
