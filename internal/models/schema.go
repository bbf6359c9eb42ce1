package models

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed world.schema.json
var worldSchemaJSON string

const worldSchemaURL = "https://text-game.local/world.schema.json"

var worldSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(worldSchemaURL, worldSchemaJSON)
})

// validateSchema checks the primitive shape of a world description before
// any typed decoding happens.
func validateSchema(data []byte) error {
	schema, err := worldSchema()
	if err != nil {
		return err
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return &SchemaError{Path: "(root)", Reason: err.Error()}
	}
	// Round-trip through JSON so the validator only sees JSON value types.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return &SchemaError{Path: "(root)", Reason: err.Error()}
	}
	var instance interface{}
	if err := json.Unmarshal(encoded, &instance); err != nil {
		return &SchemaError{Path: "(root)", Reason: err.Error()}
	}

	if err := schema.Validate(instance); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return &SchemaError{Path: "(root)", Reason: err.Error()}
		}
		for len(ve.Causes) > 0 {
			ve = ve.Causes[0]
		}
		return &SchemaError{Path: leafPath(ve), Reason: ve.Message}
	}
	return nil
}

// leafPath names the offending field. For a missing or unexpected property
// the instance location is the parent object, so the first property named
// in the message is appended.
func leafPath(ve *jsonschema.ValidationError) string {
	p := pointerPath(ve.InstanceLocation)
	keyword := ve.KeywordLocation[strings.LastIndex(ve.KeywordLocation, "/")+1:]
	if keyword != "required" && keyword != "additionalProperties" {
		return p
	}
	_, rest, ok := strings.Cut(ve.Message, "'")
	if !ok {
		return p
	}
	name, _, ok := strings.Cut(rest, "'")
	if !ok || name == "" {
		return p
	}
	if p == "(root)" {
		return name
	}
	return p + "." + name
}

// pointerPath converts a JSON pointer such as "/locations/0/id" into
// "locations.0.id".
func pointerPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "(root)"
	}
	parts := strings.Split(ptr, "/")
	for i, p := range parts {
		parts[i] = strings.NewReplacer("~1", "/", "~0", "~").Replace(p)
	}
	return strings.Join(parts, ".")
}
