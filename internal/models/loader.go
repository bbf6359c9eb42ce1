package models

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads and validates the world description at path.
func LoadFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world %q: %w", path, err)
	}
	return Load(data)
}

// Load parses a YAML or JSON world description into a validated World.
// Any validation failure aborts the whole load with a *SchemaError or a
// *DanglingReferenceError.
func Load(data []byte) (*World, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &SchemaError{Path: "(root)", Reason: err.Error()}
	}
	return build(doc)
}

// Marshal writes w in the world description format. Loading the result
// yields an equal World as long as no turn has mutated w.
func Marshal(w *World) ([]byte, error) {
	return yaml.Marshal(toDocument(w))
}

func build(doc document) (*World, error) {
	w := &World{
		Title:         doc.Title,
		Summary:       doc.Summary,
		StartLocation: doc.StartLocation,
		Locations:     make(map[string]*Location, len(doc.Locations)),
		Player: &Player{
			Name:        doc.Player.Name,
			Description: doc.Player.Description,
			Location:    doc.StartLocation,
		},
	}

	if err := uniqueIDs("player.inventory", doc.Player.Inventory, func(o objectDoc) string { return o.ID }); err != nil {
		return nil, err
	}
	for _, o := range doc.Player.Inventory {
		w.Player.Inventory = append(w.Player.Inventory, o.object())
	}

	for i, ld := range doc.Locations {
		if _, dup := w.Locations[ld.ID]; dup {
			return nil, &SchemaError{
				Path:   fmt.Sprintf("locations.%d.id", i),
				Reason: fmt.Sprintf("duplicate location id %q", ld.ID),
			}
		}
		prefix := fmt.Sprintf("locations.%d", i)
		if err := uniqueIDs(prefix+".objects", ld.Objects, func(o objectDoc) string { return o.ID }); err != nil {
			return nil, err
		}
		if err := uniqueIDs(prefix+".actors", ld.Actors, func(a actorDoc) string { return a.ID }); err != nil {
			return nil, err
		}
		if err := uniqueIDs(prefix+".pathways", ld.Pathways, func(p pathwayDoc) string { return p.ID }); err != nil {
			return nil, err
		}
		w.Locations[ld.ID] = ld.location()
		w.LocationOrder = append(w.LocationOrder, ld.ID)
	}

	if _, ok := w.Locations[doc.StartLocation]; !ok {
		return nil, &SchemaError{
			Path:   "start_location",
			Reason: fmt.Sprintf("undeclared location %q", doc.StartLocation),
		}
	}

	for _, id := range w.LocationOrder {
		for _, p := range w.Locations[id].Pathways {
			if _, ok := w.Locations[p.Destination]; !ok {
				return nil, &DanglingReferenceError{Location: id, Pathway: p.ID, Destination: p.Destination}
			}
		}
	}
	return w, nil
}

func uniqueIDs[T any](path string, items []T, id func(T) string) error {
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		v := id(item)
		if seen[v] {
			return &SchemaError{
				Path:   fmt.Sprintf("%s.%d.id", path, i),
				Reason: fmt.Sprintf("duplicate id %q", v),
			}
		}
		seen[v] = true
	}
	return nil
}
