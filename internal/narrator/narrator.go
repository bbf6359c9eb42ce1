// Package narrator produces free-form replies for input the engine does not
// resolve itself.
package narrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/tatianab/text-game/internal/models"
)

// ErrMissingCredential is returned when a provider has no API key.
var ErrMissingCredential = errors.New("missing credential")

// Exchange is one earlier narrated turn.
type Exchange struct {
	Command  string
	Response string
}

// Request is everything a narrator may consult. World is a snapshot; a
// narrator must treat it as read-only.
type Request struct {
	World   *models.World
	Input   string
	History []Exchange
}

// Narrator answers free text in the voice of the game.
type Narrator interface {
	Name() string
	Narrate(ctx context.Context, req Request) (string, error)
}

// UnavailableError means the narrator could not produce a reply: timeout,
// transport failure, empty completion or missing credential.
type UnavailableError struct {
	Provider string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("narrator %s unavailable: %v", e.Provider, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// historyWindow keeps the most recent exchanges sent to a live provider.
func historyWindow(history []Exchange) []Exchange {
	const maxExchanges = 6
	if len(history) > maxExchanges {
		return history[len(history)-maxExchanges:]
	}
	return history
}
