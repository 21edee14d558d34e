package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/mnightingale/htmlstrip/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logger.Logger.Fatal("htmlstrip failed", "err", err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "htmlstrip",
		Usage: "Remove insignificant whitespace from HTML",
		Flags: globalFlags,
		Before: func(c *cli.Context) error {
			level, err := logger.ParseLevel(c.String(globalLogLevel))
			if err != nil {
				return err
			}
			if c.Bool(globalVerbose) {
				level = min(level, slog.LevelDebug)
			}
			logger.Logger.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "compact",
				Usage:     "Compact HTML files, or stdin when no file is given",
				ArgsUsage: "[FILE...]",
				Flags:     compactFlags,
				Action:    runCompact,
			},
			{
				Name:   "proxy",
				Usage:  "Reverse proxy that compacts HTML responses of an upstream server",
				Flags:  proxyFlags,
				Action: runProxy,
			},
		},
	}
}
