package engine

import (
	"strings"

	"github.com/tatianab/text-game/internal/models"
)

// DescribeLocation renders the player's surroundings: the location, its
// objects, the actors present and the visible exits.
func DescribeLocation(w *models.World) string {
	loc := w.CurrentLocation()
	parts := []string{loc.Name, loc.Description}

	if len(loc.Objects) > 0 {
		parts = append(parts, "Nearby objects: "+joinNames(loc.Objects, func(o *models.Object) string { return o.Name })+".")
	}
	if len(loc.Actors) > 0 {
		parts = append(parts, "You can see: "+joinNames(loc.Actors, func(a *models.Actor) string { return a.Name })+".")
	}
	if exits := loc.VisiblePathways(); len(exits) > 0 {
		parts = append(parts, "Exits: "+joinNames(exits, func(p *models.Pathway) string {
			if p.Locked {
				return p.Label + " (locked)"
			}
			return p.Label
		})+".")
	}
	return strings.Join(parts, "\n")
}

// DescribeInventory lists what the player carries.
func DescribeInventory(w *models.World) string {
	if len(w.Player.Inventory) == 0 {
		return MsgEmptyPack
	}
	return "You carry: " + joinNames(w.Player.Inventory, func(o *models.Object) string { return o.Name }) + "."
}

// Opening is the text shown when a session starts.
func Opening(w *models.World) string {
	var b strings.Builder
	b.WriteString(w.Title)
	if w.Summary != "" {
		b.WriteString("\n")
		b.WriteString(w.Summary)
	}
	b.WriteString("\n\n")
	b.WriteString(DescribeLocation(w))
	return b.String()
}

func joinNames[T any](items []T, name func(T) string) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = name(it)
	}
	return strings.Join(names, ", ")
}
