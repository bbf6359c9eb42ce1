package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/text-game/internal/config"
	"github.com/tatianab/text-game/internal/engine"
	"github.com/tatianab/text-game/internal/logger"
	"github.com/tatianab/text-game/internal/narrator"
	"github.com/tatianab/text-game/worlds"
)

const maxTurns = 10

type turn struct {
	action  string
	outcome string
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is required to simulate a player")
	}
	logs := logger.Setup(cfg)

	source, err := worlds.Source(cfg.WorldPath)
	if err != nil {
		log.Fatalf("Failed to load world: %v", err)
	}

	// The narrator answers anything the rules do not cover.
	n := narrator.Select(ctx, cfg, logs)
	if c, ok := n.(io.Closer); ok {
		defer c.Close()
	}
	session, err := engine.NewSession(source,
		engine.WithNarrator(n),
		engine.WithTimeout(cfg.NarratorTimeout),
		engine.WithLogger(logs),
	)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	// The player is a separate model that only sees what a human would.
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel(cfg.GeminiModel)

	opening := session.Start()
	fmt.Printf("--- Opening ---\n%s\n\n", opening)

	var history []turn
	for i := 1; i <= maxTurns; i++ {
		fmt.Printf("--- Turn %d ---\n", i)

		action := getPlayerAction(ctx, playerModel, opening, session.View(), history)
		fmt.Printf("Player Action: %s\n", action)

		outcome, active := session.Submit(ctx, action)
		fmt.Printf("Outcome: %s\n", outcome)

		v := session.View()
		var items []string
		for _, it := range v.Inventory {
			items = append(items, it.Name)
		}
		fmt.Printf("Location: %s, Inventory: %v\n\n", v.Location.Name, items)

		history = append(history, turn{action: action, outcome: outcome})
		if !active {
			fmt.Println("Game Ended: the player left.")
			break
		}
	}
}

func getPlayerAction(ctx context.Context, model *genai.GenerativeModel, opening string, v engine.View, history []turn) string {
	var historyText strings.Builder
	for _, t := range history {
		fmt.Fprintf(&historyText, "Action: %s\nOutcome: %s\n", t.action, t.outcome)
	}

	var exits []string
	for _, e := range v.Location.Exits {
		exits = append(exits, e.Label)
	}

	prompt := fmt.Sprintf(`You are playing a text-based adventure game.
The game understands: look, inspect <thing>, take <thing>, go <exit>, talk <someone> about <topic>, inventory, help, quit.
Anything else is answered by a storyteller.

Opening:
%s

Current Location: %s
Exits: %s

History:
%s

What is your next action? Try to explore every location. Do not quit. Return ONLY the action string, no extra commentary.`,
		opening,
		v.Location.Name,
		strings.Join(exits, ", "),
		historyText.String(),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "look"
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "look"
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}
