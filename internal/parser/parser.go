// Package parser turns a line of player input into a verb and its argument.
package parser

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Verb is the first word of a command, case-folded.
type Verb string

const (
	VerbEmpty     Verb = ""
	VerbLook      Verb = "look"
	VerbInspect   Verb = "inspect"
	VerbTalk      Verb = "talk"
	VerbTake      Verb = "take"
	VerbGo        Verb = "go"
	VerbInventory Verb = "inventory"
	VerbHelp      Verb = "help"
	VerbQuit      Verb = "quit"
	VerbExit      Verb = "exit"
)

// Verbs lists the structural verbs in help order.
var Verbs = []Verb{VerbLook, VerbInspect, VerbTalk, VerbTake, VerbGo, VerbInventory, VerbHelp, VerbQuit, VerbExit}

// fillers are dropped from the front of an argument: "talk to the captain".
var fillers = []string{"to", "the", "at", "toward", "towards"}

// Command is a parsed line of input.
type Command struct {
	Verb Verb
	Args string // case-folded, filler words removed
	Raw  string // trimmed original text
}

// Known reports whether the verb is one the engine resolves itself.
func (c Command) Known() bool {
	return slices.Contains(Verbs, c.Verb)
}

// Empty reports whether the input was blank.
func (c Command) Empty() bool {
	return c.Verb == VerbEmpty
}

// Parse splits raw into a verb and argument string. It never fails; whether
// the verb means anything is decided by the resolver.
func Parse(raw string) Command {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Command{}
	}

	fields := strings.Fields(cases.Fold().String(trimmed))
	return Command{
		Verb: Verb(fields[0]),
		Args: StripFillers(strings.Join(fields[1:], " ")),
		Raw:  trimmed,
	}
}

// StripFillers drops leading filler words from an already folded phrase and
// collapses its whitespace.
func StripFillers(phrase string) string {
	words := strings.Fields(phrase)
	for len(words) > 0 && slices.Contains(fillers, words[0]) {
		words = words[1:]
	}
	return strings.Join(words, " ")
}
