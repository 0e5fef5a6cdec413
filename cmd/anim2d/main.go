// Command anim2d renders a scene file to an image sequence and can play
// the frames back while they are produced.
//
// Usage:
//
//	anim2d [flags] scene.yaml
//
// Settings come from defaults, then anim2d.yaml (or the user config
// directory), then ANIM2D_* environment variables, then flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/phanxgames/anim2d/internal/config"
	"github.com/phanxgames/anim2d/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	default:
		fmt.Fprintf(os.Stderr, "anim2d: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	flags := config.NewFlags("anim2d", stderr)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(flags.ConfigPath(), flags)
	if err != nil {
		return err
	}
	if cfg.Scene == "" {
		fmt.Fprintln(stderr, "usage: anim2d [flags] scene.yaml")
		flags.Usage()
		return errors.New("no scene file given")
	}

	if err := logger.Init(cfg.Logger()); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Log.Named("anim2d")
	log.Debug("config loaded", zap.Any("config", cfg))

	j, err := prepare(cfg, log)
	if err != nil {
		log.Error("failed to prepare scene", zap.String("scene", cfg.Scene), zap.Error(err))
		return err
	}
	if err := j.run(ctx); err != nil {
		log.Error("render failed", zap.Error(err))
		return err
	}
	return nil
}
