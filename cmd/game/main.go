package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tatianab/text-game/internal/config"
	"github.com/tatianab/text-game/internal/engine"
	"github.com/tatianab/text-game/internal/logger"
	"github.com/tatianab/text-game/internal/narrator"
	"github.com/tatianab/text-game/internal/tui"
	"github.com/tatianab/text-game/worlds"
)

const logFile = "text-game.log"

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	log := logger.SetupWriter(cfg, f)

	source, err := worlds.Source(cfg.WorldPath)
	if err != nil {
		fmt.Printf("Error loading world: %v\n", err)
		os.Exit(1)
	}

	n := narrator.Select(ctx, cfg, log)
	if c, ok := n.(io.Closer); ok {
		defer c.Close()
	}

	session, err := engine.NewSession(source,
		engine.WithNarrator(n),
		engine.WithTimeout(cfg.NarratorTimeout),
		engine.WithLogger(log),
	)
	if err != nil {
		fmt.Printf("Error creating session: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(ctx, session); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
