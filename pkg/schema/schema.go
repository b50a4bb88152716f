// Package schema publishes JSON Schemas for the outline document and gesture
// script formats, for editor completion and validation.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/mattsolo1/grove-outline/pkg/gesture"
	"github.com/mattsolo1/grove-outline/pkg/tree"
)

const baseID = "https://github.com/mattsolo1/grove-outline/"

// OutlineItem mirrors the wire shape of tree.Item, which implements its own
// codec and carries no field tags.
type OutlineItem struct {
	ID         tree.ID        `json:"id" jsonschema:"description=Unique across the whole outline. Integers and their decimal strings are the same id."`
	Title      string         `json:"title,omitempty" jsonschema:"description=Row label; defaults to the id"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Children   []*OutlineItem `json:"children,omitempty"`
}

// OutlineDocument mirrors tree.Document.
type OutlineDocument struct {
	Items []*OutlineItem `json:"items"`
}

func idSchema(t reflect.Type) *jsonschema.Schema {
	if t != reflect.TypeOf(tree.ID("")) {
		return nil
	}
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "integer"},
		},
	}
}

// Outline is the schema of outline documents. Items accept extra keys, which
// the codec folds into the attribute bag.
func Outline() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		Mapper:                    idSchema,
	}
	s := r.Reflect(&OutlineDocument{})
	s.ID = baseID + "outline.schema.json"
	s.Title = "Outline document"
	s.Description = "Hierarchical list edited by the outline drag-reorder tool"
	return s
}

// Gesture is the schema of recorded gesture scripts.
func Gesture() *jsonschema.Schema {
	r := new(jsonschema.Reflector)
	s := r.Reflect(&gesture.Script{})
	s.ID = baseID + "gesture.schema.json"
	s.Title = "Gesture script"
	s.Description = "Pointer steps replayed against a drag session"
	return s
}

var generators = map[string]func() *jsonschema.Schema{
	"outline": Outline,
	"gesture": Gesture,
}

// Names lists the available schemas.
func Names() []string {
	names := make([]string, 0, len(generators))
	for n := range generators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Generate renders the named schema as indented JSON.
func Generate(name string) ([]byte, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q (available: %v)", name, Names())
	}
	data, err := json.MarshalIndent(gen(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
