package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of an outline:
//
//	items:
//	  - id: 1
//	    title: Inbox
//	    children:
//	      - id: "11"
type Document struct {
	Items []*Item `yaml:"items" json:"items"`
}

// UnmarshalYAML reads an item mapping. Keys other than id, children and
// attributes are folded into the attribute bag.
func (it *Item) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: item must be a mapping", value.Line)
	}
	it.Attributes = make(map[string]any)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "id":
			var raw any
			if err := val.Decode(&raw); err != nil {
				return fmt.Errorf("line %d: decode id: %w", val.Line, err)
			}
			it.ID = NewID(raw)
		case "children":
			if err := val.Decode(&it.Children); err != nil {
				return err
			}
		case "attributes":
			var attrs map[string]any
			if err := val.Decode(&attrs); err != nil {
				return fmt.Errorf("line %d: decode attributes: %w", val.Line, err)
			}
			for k, v := range attrs {
				it.Attributes[k] = v
			}
		default:
			var v any
			if err := val.Decode(&v); err != nil {
				return fmt.Errorf("line %d: decode %s: %w", val.Line, key.Value, err)
			}
			it.Attributes[key.Value] = v
		}
	}
	if it.ID == "" {
		return fmt.Errorf("line %d: item has no id", value.Line)
	}
	return nil
}

// MarshalYAML writes id, title, the remaining attributes and children in
// that order.
func (it *Item) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, v any) error {
		var val yaml.Node
		if err := val.Encode(v); err != nil {
			return err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, &val)
		return nil
	}

	idNode := &yaml.Node{Kind: yaml.ScalarNode, Value: string(it.ID), Tag: "!!str"}
	if it.ID.IsInteger() {
		idNode.Tag = "!!int"
	}
	node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "id"}, idNode)

	if title, ok := it.Attributes[TitleAttr]; ok {
		if err := add(TitleAttr, title); err != nil {
			return nil, err
		}
	}
	rest := make(map[string]any)
	for k, v := range it.Attributes {
		if k != TitleAttr {
			rest[k] = v
		}
	}
	if len(rest) > 0 {
		if err := add("attributes", rest); err != nil {
			return nil, err
		}
	}
	if len(it.Children) > 0 {
		if err := add("children", it.Children); err != nil {
			return nil, err
		}
	}
	return node, nil
}

type itemJSON struct {
	ID         any            `json:"id"`
	Title      any            `json:"title,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Children   []*Item        `json:"children,omitempty"`
}

// MarshalJSON mirrors MarshalYAML. Integer ids are written as numbers.
func (it *Item) MarshalJSON() ([]byte, error) {
	out := itemJSON{ID: string(it.ID), Children: it.Children}
	if it.ID.IsInteger() {
		out.ID = json.Number(it.ID)
	}
	for k, v := range it.Attributes {
		if k == TitleAttr {
			out.Title = v
			continue
		}
		if out.Attributes == nil {
			out.Attributes = make(map[string]any)
		}
		out.Attributes[k] = v
	}
	return json.Marshal(out)
}

// ReadDocument decodes an outline from YAML or JSON and validates it.
func ReadDocument(r io.Reader) (*Tree, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode outline: %w", err)
	}
	t := New(doc.Items...)
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid outline: %w", err)
	}
	return t, nil
}

// LoadFile reads an outline document from path.
func LoadFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}
	return ReadDocument(bytes.NewReader(data))
}

// WriteYAML encodes the tree as an outline document. Placeholders are never
// written.
func WriteYAML(w io.Writer, t *Tree) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Items: withoutGhosts(t)}); err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	return enc.Close()
}

// WriteJSON encodes the tree as a JSON outline document.
func WriteJSON(w io.Writer, t *Tree, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(Document{Items: withoutGhosts(t)}); err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	return nil
}

// SaveFile writes the tree to path as YAML.
func SaveFile(path string, t *Tree) error {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, t); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	return nil
}

func withoutGhosts(t *Tree) []*Item {
	c := t.Clone()
	c.SweepGhosts()
	return c.Items
}

// AttributeKeys returns the item's attribute keys in sorted order.
func (it *Item) AttributeKeys() []string {
	keys := make([]string, 0, len(it.Attributes))
	for k := range it.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
