package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/text-game/worlds"
)

func loadPirate(t *testing.T) *World {
	t.Helper()
	w, err := Load(worlds.Pirate)
	require.NoError(t, err)
	return w
}

func TestTakeTransfersOwnership(t *testing.T) {
	w := loadPirate(t)
	deck := w.CurrentLocation()
	cutlass := deck.MatchObject("cutlass")
	require.NotNil(t, cutlass)

	require.True(t, w.Take(deck, cutlass))
	assert.Nil(t, deck.MatchObject("cutlass"))
	assert.Same(t, cutlass, w.Player.MatchItem("cutlass"))
	assert.True(t, w.Player.Holds("cutlass"))

	assert.False(t, w.Take(deck, cutlass), "object is no longer in the location")
	assert.Len(t, w.Player.Inventory, 2)
}

func TestTakeKeepsInventoryIDsUnique(t *testing.T) {
	w := loadPirate(t)
	deck := w.CurrentLocation()
	spare := &Object{ID: "compass", Name: "spare compass", Portable: true}
	deck.Objects = append(deck.Objects, spare)

	assert.False(t, w.Take(deck, spare))
	assert.Contains(t, deck.Objects, spare)
	assert.Len(t, w.Player.Inventory, 1)
}

func TestMatchingRules(t *testing.T) {
	w := loadPirate(t)
	deck := w.Locations["deck"]

	tests := []struct {
		term string
		want string
	}{
		{"cutlass", "cutlass"},
		{"RUSTY", "cutlass"},
		{"rope", "rope"},
		{"coil", "rope"},
		{"mast", "mainmast"},
		{"o", "rope"},
		{"s", "cutlass"}, // first in declaration order wins
	}
	for _, tt := range tests {
		got := deck.MatchObject(tt.term)
		require.NotNil(t, got, tt.term)
		assert.Equal(t, tt.want, got.ID, tt.term)
	}
	assert.Nil(t, deck.MatchObject(""))
	assert.Nil(t, deck.MatchObject("anchor"))

	assert.Equal(t, "captain", deck.MatchActor("redbeard").ID)
	assert.Nil(t, deck.MatchActor("stowaway"))
}

func TestMatchPathwaySkipsHidden(t *testing.T) {
	w := loadPirate(t)
	cabin := w.Locations["captains_cabin"]

	assert.Nil(t, cabin.MatchPathway("trapdoor"))
	assert.Equal(t, "forward", cabin.MatchPathway("deck").ID)
	assert.Len(t, cabin.VisiblePathways(), 1)

	cabin.Pathways[1].Hidden = false
	assert.Equal(t, "trapdoor", cabin.MatchPathway("TRAPDOOR").ID)
}

func TestActorReply(t *testing.T) {
	w := loadPirate(t)
	captain := w.Locations["deck"].MatchActor("captain")
	require.NotNil(t, captain)

	assert.Contains(t, captain.Reply("Treasure"), "gold in the hold")
	assert.Equal(t, captain.Dialogue["default"], captain.Reply("weather"))
	assert.Equal(t, captain.Dialogue["default"], captain.Reply(""))

	mute := &Actor{Name: "Parrot"}
	assert.Equal(t, "Parrot has nothing to say.", mute.Reply("hello"))
}

func TestMoveTo(t *testing.T) {
	w := loadPirate(t)
	require.NoError(t, w.MoveTo("hold"))
	assert.Equal(t, "hold", w.CurrentLocation().ID)

	require.Error(t, w.MoveTo("galley"))
	assert.Equal(t, "hold", w.Player.Location)
}

func TestCloneIsIndependent(t *testing.T) {
	w := loadPirate(t)
	c := w.Clone()
	require.Equal(t, w, c)

	deck := c.Locations["deck"]
	c.Take(deck, deck.MatchObject("cutlass"))
	deck.Pathways[0].Locked = false
	c.Locations["captains_cabin"].Objects[0].State["folded"] = Bool(false)
	c.Player.Location = "hold"

	assert.NotNil(t, w.Locations["deck"].MatchObject("cutlass"))
	assert.True(t, w.Locations["deck"].Pathways[0].Locked)
	assert.Equal(t, Bool(true), w.Locations["captains_cabin"].Objects[0].State["folded"])
	assert.Equal(t, "deck", w.Player.Location)
	assert.Len(t, w.Player.Inventory, 1)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "3", Number(3).String())
	assert.Equal(t, "2.5", Number(2.5).String())
	assert.Equal(t, "open", Text("open").String())
}
