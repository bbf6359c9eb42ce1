package engine

import "github.com/tatianab/text-game/internal/models"

// View is a front-end friendly summary of what the player can perceive.
type View struct {
	Title     string       `json:"title"`
	Location  LocationView `json:"location"`
	Inventory []ItemView   `json:"inventory"`
	Active    bool         `json:"active"`
}

type LocationView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image,omitempty"`
	Objects     []ItemView `json:"objects"`
	Actors      []ItemView `json:"actors"`
	Exits       []ExitView `json:"exits"`
}

type ItemView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ExitView struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Locked bool   `json:"locked"`
}

func newView(w *models.World, active bool) View {
	loc := w.CurrentLocation()
	v := View{
		Title:     w.Title,
		Active:    active,
		Inventory: []ItemView{},
		Location: LocationView{
			ID:          loc.ID,
			Name:        loc.Name,
			Description: loc.Description,
			Image:       loc.Image,
			Objects:     []ItemView{},
			Actors:      []ItemView{},
			Exits:       []ExitView{},
		},
	}
	for _, o := range loc.Objects {
		v.Location.Objects = append(v.Location.Objects, ItemView{ID: o.ID, Name: o.Name})
	}
	for _, a := range loc.Actors {
		v.Location.Actors = append(v.Location.Actors, ItemView{ID: a.ID, Name: a.Name})
	}
	for _, p := range loc.VisiblePathways() {
		v.Location.Exits = append(v.Location.Exits, ExitView{ID: p.ID, Label: p.Label, Locked: p.Locked})
	}
	for _, o := range w.Player.Inventory {
		v.Inventory = append(v.Inventory, ItemView{ID: o.ID, Name: o.Name})
	}
	return v
}
