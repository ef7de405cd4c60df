package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Virtual-Billiard/internal/config"
	"github.com/Garsondee/Virtual-Billiard/internal/game"
	"github.com/Garsondee/Virtual-Billiard/internal/sound"
)

func main() {
	cfgPath := flag.String("config", "", "config file (default billiard.toml)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}

	snd := sound.NewManager(log.Default())
	snd.Start(cfg.Sound)
	defer snd.Close()

	g, err := game.New(cfg, snd, log.Default())
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
