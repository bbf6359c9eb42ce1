package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// document mirrors the on-disk world description.
type document struct {
	Title         string        `yaml:"title"`
	Summary       string        `yaml:"summary"`
	StartLocation string        `yaml:"start_location"`
	Player        playerDoc     `yaml:"player"`
	Locations     []locationDoc `yaml:"locations"`
}

type playerDoc struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Inventory   []objectDoc `yaml:"inventory"`
}

type locationDoc struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name,omitempty"`
	Image       string       `yaml:"image"`
	Description string       `yaml:"description"`
	Details     string       `yaml:"details,omitempty"`
	Objects     []objectDoc  `yaml:"objects"`
	Actors      []actorDoc   `yaml:"actors"`
	Pathways    []pathwayDoc `yaml:"pathways"`
}

type objectDoc struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Portable    bool             `yaml:"portable"`
	Movable     bool             `yaml:"movable"`
	State       map[string]Value `yaml:"state,omitempty"`
}

type actorDoc struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Persona  string            `yaml:"persona"`
	Dialogue map[string]string `yaml:"dialogue,omitempty"`
}

type pathwayDoc struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label,omitempty"`
	Destination string `yaml:"destination"`
	Hidden      bool   `yaml:"hidden"`
	Locked      bool   `yaml:"locked"`
	UnlocksWith string `yaml:"unlocks_with,omitempty"`
	RevealsWith string `yaml:"reveals_with,omitempty"`
}

func nonEmpty[V any](m map[string]V) map[string]V {
	if len(m) == 0 {
		return nil
	}
	return m
}

// displayName turns an id such as "captains_cabin" into "Captains Cabin".
func displayName(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

func (d objectDoc) object() *Object {
	name := d.Name
	if name == "" {
		name = d.ID
	}
	return &Object{
		ID:          d.ID,
		Name:        name,
		Description: d.Description,
		Portable:    d.Portable,
		Movable:     d.Movable,
		State:       nonEmpty(d.State),
	}
}

func (d actorDoc) actor() *Actor {
	name := d.Name
	if name == "" {
		name = d.ID
	}
	return &Actor{ID: d.ID, Name: name, Persona: d.Persona, Dialogue: nonEmpty(d.Dialogue)}
}

func (d pathwayDoc) pathway() *Pathway {
	label := d.Label
	if label == "" {
		label = d.ID
	}
	return &Pathway{
		ID:          d.ID,
		Label:       label,
		Destination: d.Destination,
		Hidden:      d.Hidden,
		Locked:      d.Locked,
		UnlocksWith: d.UnlocksWith,
		RevealsWith: d.RevealsWith,
	}
}

func (d locationDoc) location() *Location {
	name := d.Name
	if name == "" {
		name = displayName(d.ID)
	}
	loc := &Location{
		ID:          d.ID,
		Name:        name,
		Image:       d.Image,
		Description: d.Description,
		Details:     d.Details,
	}
	for _, o := range d.Objects {
		loc.Objects = append(loc.Objects, o.object())
	}
	for _, a := range d.Actors {
		loc.Actors = append(loc.Actors, a.actor())
	}
	for _, p := range d.Pathways {
		loc.Pathways = append(loc.Pathways, p.pathway())
	}
	return loc
}

// toDocument converts w back into its document form. Defaulted names and
// labels are written out explicitly.
func toDocument(w *World) document {
	doc := document{
		Title:         w.Title,
		Summary:       w.Summary,
		StartLocation: w.StartLocation,
		Player: playerDoc{
			Name:        w.Player.Name,
			Description: w.Player.Description,
			Inventory:   objectDocs(w.Player.Inventory),
		},
	}
	for _, id := range w.LocationOrder {
		loc := w.Locations[id]
		ld := locationDoc{
			ID:          loc.ID,
			Name:        loc.Name,
			Image:       loc.Image,
			Description: loc.Description,
			Details:     loc.Details,
			Objects:     objectDocs(loc.Objects),
		}
		for _, a := range loc.Actors {
			ld.Actors = append(ld.Actors, actorDoc{ID: a.ID, Name: a.Name, Persona: a.Persona, Dialogue: a.Dialogue})
		}
		for _, p := range loc.Pathways {
			ld.Pathways = append(ld.Pathways, pathwayDoc{
				ID:          p.ID,
				Label:       p.Label,
				Destination: p.Destination,
				Hidden:      p.Hidden,
				Locked:      p.Locked,
				UnlocksWith: p.UnlocksWith,
				RevealsWith: p.RevealsWith,
			})
		}
		doc.Locations = append(doc.Locations, ld)
	}
	return doc
}

func objectDocs(objs []*Object) []objectDoc {
	var out []objectDoc
	for _, o := range objs {
		out = append(out, objectDoc{
			ID:          o.ID,
			Name:        o.Name,
			Description: o.Description,
			Portable:    o.Portable,
			Movable:     o.Movable,
			State:       o.State,
		})
	}
	return out
}
