package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Virtual-Billiard/internal/config"
	"github.com/Garsondee/Virtual-Billiard/internal/sound"
	"github.com/Garsondee/Virtual-Billiard/internal/term"
)

func main() {
	cfgPath := flag.String("config", "", "config file (default billiard.toml)")
	logPath := flag.String("log", "", "write diagnostics to this file (default: discard)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// The terminal is the display; log lines would corrupt it.
	logger := log.New(io.Discard, "", 0)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.New(f, "", log.LstdFlags)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	snd := sound.NewManager(logger)
	snd.Start(cfg.Sound)

	app, err := term.New(screen, cfg, snd, logger)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	runErr := app.Run(screen)
	app.Close()
	snd.Close()
	screen.Fini()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}
