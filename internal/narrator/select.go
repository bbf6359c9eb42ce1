package narrator

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tatianab/text-game/internal/config"
)

// Select picks the narrator for a process once, at start-up. A provider
// that cannot be built (for example without an API key) degrades to Canned.
func Select(ctx context.Context, cfg *config.Config, logger *slog.Logger) Narrator {
	var (
		n   Narrator
		err error
	)

	switch cfg.Narrator {
	case config.NarratorCanned:
		return Canned{}
	case config.NarratorGemini:
		n, err = NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.NarratorOpenAI:
		n, err = NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		switch {
		case cfg.OpenAIAPIKey != "":
			n, err = NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		case cfg.GeminiAPIKey != "":
			n, err = NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		default:
			logger.Info("no narrator credential configured, using canned narration")
			return Canned{}
		}
	}

	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, ErrMissingCredential) {
			level = slog.LevelInfo
		}
		logger.Log(ctx, level, "narrator unavailable, using canned narration", "provider", cfg.Narrator, "error", err)
		return Canned{}
	}
	logger.Info("narrator selected", "provider", n.Name())
	return n
}
