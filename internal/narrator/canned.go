package narrator

import (
	"context"
	"strings"

	"github.com/tatianab/text-game/internal/models"
)

const cannedPrefix = "Nothing comes of that. You take stock of your surroundings instead."

// Canned is the deterministic narrator used when no live provider is
// configured and whenever a live provider fails.
type Canned struct{}

func (Canned) Name() string { return "canned" }

func (Canned) Narrate(_ context.Context, req Request) (string, error) {
	return CannedReply(req.World), nil
}

// CannedReply returns the fixed reply for w: a stock line followed by the
// current location's detail notes.
func CannedReply(w *models.World) string {
	details := "Nothing notable beyond the obvious."
	if w != nil && w.Player != nil {
		if loc := w.CurrentLocation(); loc != nil && strings.TrimSpace(loc.Details) != "" {
			details = strings.TrimSpace(loc.Details)
		}
	}
	return cannedPrefix + "\n" + details
}
