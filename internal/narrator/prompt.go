package narrator

import (
	"bytes"
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/tatianab/text-game/internal/models"
)

//go:embed prompts/narrate.txt
var narratePrompt string

var narrateTemplate = template.Must(template.New("narrate").Funcs(template.FuncMap{
	"state":   formatState,
	"visible": visiblePathways,
}).Parse(narratePrompt))

type promptData struct {
	Title      string
	Summary    string
	PlayerName string
	Current    *models.Location
	Others     []*models.Location
	Inventory  []*models.Object
}

// systemPrompt renders the canon a live narrator is allowed to draw on.
// Hidden pathways are left out so the narrator cannot give them away.
func systemPrompt(w *models.World) (string, error) {
	data := promptData{
		Title:      w.Title,
		Summary:    w.Summary,
		PlayerName: w.Player.Name,
		Current:    w.CurrentLocation(),
		Inventory:  w.Player.Inventory,
	}
	for _, id := range w.LocationOrder {
		if id != w.Player.Location {
			data.Others = append(data.Others, w.Locations[id])
		}
	}

	var buf bytes.Buffer
	if err := narrateTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render narrator prompt: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func formatState(state map[string]models.Value) string {
	var parts []string
	for _, k := range slices.Sorted(maps.Keys(state)) {
		parts = append(parts, k+"="+state[k].String())
	}
	return strings.Join(parts, ", ")
}

func visiblePathways(paths []*models.Pathway) []*models.Pathway {
	var out []*models.Pathway
	for _, p := range paths {
		if !p.Hidden {
			out = append(out, p)
		}
	}
	return out
}
