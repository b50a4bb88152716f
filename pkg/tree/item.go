package tree

import (
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// ID identifies an item. Integer and string forms of the same value are the
// same ID: NewID(7) == NewID("7").
type ID string

// NewID normalizes v into an ID. Strings are NFC-normalized, integers are
// formatted in base 10. Anything else falls back to its fmt representation.
func NewID(v any) ID {
	switch x := v.(type) {
	case ID:
		return x
	case string:
		return ID(norm.NFC.String(x))
	case int:
		return ID(strconv.FormatInt(int64(x), 10))
	case int8:
		return ID(strconv.FormatInt(int64(x), 10))
	case int16:
		return ID(strconv.FormatInt(int64(x), 10))
	case int32:
		return ID(strconv.FormatInt(int64(x), 10))
	case int64:
		return ID(strconv.FormatInt(x, 10))
	case uint:
		return ID(strconv.FormatUint(uint64(x), 10))
	case uint8:
		return ID(strconv.FormatUint(uint64(x), 10))
	case uint16:
		return ID(strconv.FormatUint(uint64(x), 10))
	case uint32:
		return ID(strconv.FormatUint(uint64(x), 10))
	case uint64:
		return ID(strconv.FormatUint(x, 10))
	case float64:
		// YAML and JSON decoders hand integral numbers over as float64 at times.
		if x == float64(int64(x)) {
			return ID(strconv.FormatInt(int64(x), 10))
		}
		return ID(strconv.FormatFloat(x, 'f', -1, 64))
	case json.Number:
		return ID(x.String())
	case fmt.Stringer:
		return ID(norm.NFC.String(x.String()))
	case nil:
		return ""
	default:
		return ID(norm.NFC.String(fmt.Sprint(x)))
	}
}

// String returns the normalized form.
func (id ID) String() string { return string(id) }

// IsInteger reports whether the id is the canonical base-10 form of an
// integer ("7" is, "07" is not).
func (id ID) IsInteger() bool {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

// Item represents a single node in the outline. IDs are unique across the
// whole tree, not per level.
type Item struct {
	ID         ID
	Children   []*Item
	Attributes map[string]any
}

// TitleAttr is the attribute renderers use as the row label.
const TitleAttr = "title"

// NewItem creates an item with an empty attribute bag.
func NewItem(id any, children ...*Item) *Item {
	return &Item{
		ID:         NewID(id),
		Children:   children,
		Attributes: make(map[string]any),
	}
}

// Title returns the title attribute, or the id when the item has none.
func (it *Item) Title() string {
	if it == nil {
		return ""
	}
	if s, ok := it.Attributes[TitleAttr].(string); ok && s != "" {
		return s
	}
	return string(it.ID)
}

// Attr returns an attribute value.
func (it *Item) Attr(key string) (any, bool) {
	if it == nil || it.Attributes == nil {
		return nil, false
	}
	v, ok := it.Attributes[key]
	return v, ok
}

// SetAttr sets an attribute, allocating the bag on first use.
func (it *Item) SetAttr(key string, v any) {
	if it.Attributes == nil {
		it.Attributes = make(map[string]any)
	}
	it.Attributes[key] = v
}

// HasRealChildren reports whether the item has at least one child that is
// not a ghost.
func (it *Item) HasRealChildren() bool {
	if it == nil {
		return false
	}
	for _, c := range it.Children {
		if !IsGhost(c) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the item and its subtree. Nested maps and
// slices in the attribute bag are copied too, so mutating the copy never
// reaches the original.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	out := &Item{ID: it.ID}
	if it.Attributes != nil {
		out.Attributes = cloneAttrs(it.Attributes)
	}
	if it.Children != nil {
		out.Children = make([]*Item, len(it.Children))
		for i, c := range it.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

func cloneAttrs(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneAttrs(x)
	case []any:
		s := make([]any, len(x))
		for i, e := range x {
			s[i] = cloneValue(e)
		}
		return s
	case []string:
		return append([]string(nil), x...)
	default:
		return v
	}
}

// Contains reports whether id is root itself or anywhere in its subtree.
func Contains(root *Item, id ID) bool {
	if root == nil {
		return false
	}
	if root.ID == id {
		return true
	}
	for _, c := range root.Children {
		if Contains(c, id) {
			return true
		}
	}
	return false
}
