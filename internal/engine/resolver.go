package engine

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/tatianab/text-game/internal/models"
	"github.com/tatianab/text-game/internal/parser"
)

// Player-facing messages. Scope failures are answered with these, never with
// internal error text.
const (
	MsgPrompt      = "What do you want to do?"
	MsgNotHere     = "You don't see that here."
	MsgCannotTake  = "You can't take that."
	MsgNoPath      = "You can't go that way."
	MsgLocked      = "That way is locked."
	MsgNoActor     = "There's no one here by that name."
	MsgEmptyPack   = "You aren't carrying anything."
	MsgHaveIt      = "You already have it."
	MsgFarewell    = "Farewell, adventurer."
	MsgSessionOver = "The adventure is over."
	MsgHelp        = "Commands: look, inspect <object>, talk <actor> [about <topic>], take <object>, go <path>, inventory, help, quit (or exit)."
)

// Outcome classifies a resolved command.
type Outcome int

const (
	// OutcomeHandled means the engine answered the command itself.
	OutcomeHandled Outcome = iota
	// OutcomeEmpty is blank input; the player is prompted again.
	OutcomeEmpty
	// OutcomeFallback routes the raw text to the narrator.
	OutcomeFallback
	// OutcomeTerminate ends the session.
	OutcomeTerminate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHandled:
		return "handled"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFallback:
		return "fallback"
	case OutcomeTerminate:
		return "terminate"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the resolver's answer to one command.
type Result struct {
	Outcome Outcome
	Message string
}

func handled(msg string) Result {
	return Result{Outcome: OutcomeHandled, Message: msg}
}

// Resolve applies cmd to w. Structural verbs mutate w as needed and return
// their message; every other verb returns OutcomeFallback and leaves w
// untouched. Resolve keeps no state of its own between calls.
func Resolve(w *models.World, cmd parser.Command) Result {
	switch cmd.Verb {
	case parser.VerbEmpty:
		return Result{Outcome: OutcomeEmpty, Message: MsgPrompt}
	case parser.VerbLook:
		return handled(DescribeLocation(w))
	case parser.VerbInspect:
		return handled(inspect(w, cmd.Args))
	case parser.VerbTalk:
		return handled(talk(w, cmd.Args))
	case parser.VerbTake:
		return handled(take(w, cmd.Args))
	case parser.VerbGo:
		return handled(move(w, cmd.Args))
	case parser.VerbInventory:
		return handled(DescribeInventory(w))
	case parser.VerbHelp:
		return handled(MsgHelp)
	case parser.VerbQuit, parser.VerbExit:
		return Result{Outcome: OutcomeTerminate, Message: MsgFarewell}
	default:
		return Result{Outcome: OutcomeFallback}
	}
}

// inspect looks in the location first, then in the inventory. Inspecting
// the object a hidden pathway names in reveals_with uncovers the pathway.
func inspect(w *models.World, term string) string {
	if term == "" {
		return "Inspect what?"
	}
	loc := w.CurrentLocation()
	obj := loc.MatchObject(term)
	if obj == nil {
		obj = w.Player.MatchItem(term)
	}
	if obj == nil {
		return MsgNotHere
	}

	var b strings.Builder
	b.WriteString(obj.Description)
	if len(obj.State) > 0 {
		var parts []string
		for _, k := range slices.Sorted(maps.Keys(obj.State)) {
			parts = append(parts, k+"="+obj.State[k].String())
		}
		fmt.Fprintf(&b, "\nCurrent state: %s.", strings.Join(parts, ", "))
	}
	for _, p := range loc.Pathways {
		if p.Hidden && p.RevealsWith == obj.ID {
			p.Hidden = false
			fmt.Fprintf(&b, "\nYou discover a way onward: %s.", p.Label)
		}
	}
	return b.String()
}

func take(w *models.World, term string) string {
	if term == "" {
		return "Take what?"
	}
	loc := w.CurrentLocation()
	obj := loc.MatchObject(term)
	if obj == nil {
		return MsgNotHere
	}
	if !obj.Portable {
		return MsgCannotTake
	}
	if w.Player.Holds(obj.ID) {
		return MsgHaveIt
	}
	w.Take(loc, obj)
	return fmt.Sprintf("You take the %s.", obj.Name)
}

// talk accepts "talk <actor>", "talk <actor> about <topic>" and
// "talk <actor> <topic>". An unknown topic gets the actor's default line.
func talk(w *models.World, args string) string {
	if args == "" {
		return "Talk to whom?"
	}
	loc := w.CurrentLocation()

	var (
		actor *models.Actor
		topic string
	)
	if who, about, ok := strings.Cut(args, " about "); ok {
		actor, topic = loc.MatchActor(parser.StripFillers(who)), parser.StripFillers(about)
	} else if actor = loc.MatchActor(args); actor == nil {
		who, rest, _ := strings.Cut(args, " ")
		actor, topic = loc.MatchActor(who), parser.StripFillers(rest)
	}
	if actor == nil {
		return MsgNoActor
	}
	return actor.Reply(topic)
}

// move follows a visible pathway. Hidden pathways answer exactly like a
// missing one; a locked pathway opens if the player carries its key.
func move(w *models.World, term string) string {
	if term == "" {
		return "Go where?"
	}
	p := w.CurrentLocation().MatchPathway(term)
	if p == nil {
		return MsgNoPath
	}

	var prefix string
	if p.Locked {
		key := w.Player.Item(p.UnlocksWith)
		if p.UnlocksWith == "" || key == nil {
			return MsgLocked
		}
		p.Locked = false
		prefix = fmt.Sprintf("You unlock the way with the %s.\n", key.Name)
	}

	if err := w.MoveTo(p.Destination); err != nil {
		return MsgNoPath
	}
	return prefix + DescribeLocation(w)
}
