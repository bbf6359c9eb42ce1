package models

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// fold returns the caseless form of s used for every name comparison.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// matches reports whether term names an entity: an exact id match or a
// substring of the display name, both caseless.
func matches(id, name, term string) bool {
	t := fold(term)
	if t == "" {
		return false
	}
	return fold(id) == t || strings.Contains(fold(name), t)
}

// CurrentLocation returns the location the player stands in.
func (w *World) CurrentLocation() *Location {
	return w.Locations[w.Player.Location]
}

// MoveTo relocates the player. The destination must exist.
func (w *World) MoveTo(locationID string) error {
	if _, ok := w.Locations[locationID]; !ok {
		return fmt.Errorf("move to %q: no such location", locationID)
	}
	w.Player.Location = locationID
	return nil
}

// Take transfers obj from the location into the player's inventory.
// It reports false when obj is not in loc or the inventory already holds an
// object with the same id.
func (w *World) Take(loc *Location, obj *Object) bool {
	i := slices.Index(loc.Objects, obj)
	if i < 0 || w.Player.Holds(obj.ID) {
		return false
	}
	loc.Objects = slices.Delete(loc.Objects, i, i+1)
	w.Player.Inventory = append(w.Player.Inventory, obj)
	return true
}

// Item returns the carried object with the given id, or nil.
func (p *Player) Item(objectID string) *Object {
	for _, o := range p.Inventory {
		if o.ID == objectID {
			return o
		}
	}
	return nil
}

// Holds reports whether the player carries an object with the given id.
func (p *Player) Holds(objectID string) bool {
	return p.Item(objectID) != nil
}

// MatchItem finds the first carried object named by term.
func (p *Player) MatchItem(term string) *Object {
	for _, o := range p.Inventory {
		if matches(o.ID, o.Name, term) {
			return o
		}
	}
	return nil
}

// MatchObject finds the first object in the location named by term, in
// declaration order.
func (l *Location) MatchObject(term string) *Object {
	for _, o := range l.Objects {
		if matches(o.ID, o.Name, term) {
			return o
		}
	}
	return nil
}

// MatchActor finds the first actor in the location named by term.
func (l *Location) MatchActor(term string) *Actor {
	for _, a := range l.Actors {
		if matches(a.ID, a.Name, term) {
			return a
		}
	}
	return nil
}

// MatchPathway finds the first visible pathway named by term. Hidden
// pathways never match.
func (l *Location) MatchPathway(term string) *Pathway {
	for _, p := range l.VisiblePathways() {
		if matches(p.ID, p.Label, term) {
			return p
		}
	}
	return nil
}

// VisiblePathways returns the pathways that are not hidden.
func (l *Location) VisiblePathways() []*Pathway {
	var out []*Pathway
	for _, p := range l.Pathways {
		if !p.Hidden {
			out = append(out, p)
		}
	}
	return out
}

// Reply returns the actor's line for a dialogue key. An unknown key yields
// the "default" entry, then a generic line.
func (a *Actor) Reply(key string) string {
	if k := fold(key); k != "" {
		for _, dk := range slices.Sorted(maps.Keys(a.Dialogue)) {
			if fold(dk) == k {
				return a.Dialogue[dk]
			}
		}
	}
	if line, ok := a.Dialogue["default"]; ok {
		return line
	}
	return a.Name + " has nothing to say."
}

// Clone returns a deep copy sharing no mutable state with w.
func (w *World) Clone() *World {
	c := &World{
		Title:         w.Title,
		Summary:       w.Summary,
		StartLocation: w.StartLocation,
		Locations:     make(map[string]*Location, len(w.Locations)),
		LocationOrder: slices.Clone(w.LocationOrder),
	}
	for id, loc := range w.Locations {
		c.Locations[id] = loc.clone()
	}
	if w.Player != nil {
		p := *w.Player
		p.Inventory = cloneObjects(w.Player.Inventory)
		c.Player = &p
	}
	return c
}

func (l *Location) clone() *Location {
	c := *l
	c.Objects = cloneObjects(l.Objects)
	c.Actors = nil
	for _, a := range l.Actors {
		ac := *a
		ac.Dialogue = maps.Clone(a.Dialogue)
		c.Actors = append(c.Actors, &ac)
	}
	c.Pathways = nil
	for _, p := range l.Pathways {
		pc := *p
		c.Pathways = append(c.Pathways, &pc)
	}
	return &c
}

func cloneObjects(in []*Object) []*Object {
	if in == nil {
		return nil
	}
	out := make([]*Object, len(in))
	for i, o := range in {
		oc := *o
		oc.State = maps.Clone(o.State)
		out[i] = &oc
	}
	return out
}
