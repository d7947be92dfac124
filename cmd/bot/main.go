package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	// Sports times are rendered in Europe/London even on hosts without zoneinfo.
	_ "time/tzdata"

	"discoBot/internal/app/runtime"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "discobot",
		Usage: "Discord bot with word filtering, product calculator and Premier League commands",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "dotenv file loaded before reading the environment",
				EnvVars: []string{"BOT_ENV_FILE"},
			},
			// Unset means BOT_CONFIG_PATH or config.yaml, used only when present.
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the YAML bot configuration, required to exist when given",
			},
		},
		Action: run,
	}
}

func runtimeOptions(cctx *cli.Context) runtime.Options {
	return runtime.Options{
		EnvFile:    cctx.String("env-file"),
		ConfigPath: cctx.String("config"),
	}
}

func run(cctx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := runtime.Start(ctx, runtimeOptions(cctx))
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	<-rt.Done()
	if err := rt.Stop(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
