package main

import (
	"flag"
	"log"

	"github.com/Garsondee/Shape-Arcade/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var levels string
	var shapes string
	var maxMistakes int
	var seed int64
	var mute bool
	var bestFile string

	flag.StringVar(&levels, "levels", "60,120,180", "seconds per level, comma separated")
	flag.StringVar(&shapes, "shapes", "", "enabled shapes, comma separated (default: all)")
	flag.IntVar(&maxMistakes, "max-mistakes", 3, "rhythm mistakes before the heart breaks")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = from clock)")
	flag.BoolVar(&mute, "mute", false, "start with sound muted")
	flag.StringVar(&bestFile, "best-file", "", "best score file (default: user config dir)")
	flag.Parse()

	durations, err := game.ParseLevelDurations(levels)
	if err != nil {
		log.Fatal(err)
	}
	cfg := game.DefaultConfig()
	cfg.LevelDurations = durations
	cfg.Shapes = game.ParseShapeList(shapes)
	cfg.MaxMistakes = maxMistakes
	cfg.Seed = seed

	var store game.ScoreStore = &game.MemoryScoreStore{}
	if bestFile == "" {
		if bestFile, err = game.DefaultScorePath(); err != nil {
			log.Printf("best score kept in memory: %v", err)
		}
	}
	if bestFile != "" {
		store = &game.FileScoreStore{Path: bestFile}
	}

	sounds := game.NewBeepSounds()
	sounds.SetMuted(mute)

	g, err := game.New(cfg, sounds, store)
	if err != nil {
		log.Fatal(err)
	}
	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("Shape Arcade")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
