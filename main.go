package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"github.com/iburimskiy/surround-panner/internal/config"
	"github.com/iburimskiy/surround-panner/internal/game"
	"github.com/iburimskiy/surround-panner/internal/logging"
)

func main() {
	configDir := pflag.StringP("config", "c", ".", "directory containing "+config.FileName)
	pflag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.Setup(cfg.LogLevel, os.Stderr, false)

	var notifier game.Notifier
	if cfg.Notify.Enabled {
		notifier = game.NewDesktopNotifier("Surround Panner", log)
	}

	g, err := game.New(cfg, log, notifier)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start panner")
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("Panner stopped")
		g.Close()
		os.Exit(1)
	}
}
