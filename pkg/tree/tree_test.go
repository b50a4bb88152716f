package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Tree {
	return New(
		NewItem(1, NewItem(11), NewItem(12, NewItem(121))),
		NewItem(2),
		NewItem("3"),
	)
}

func TestNewIDNormalizesIntegersAndStrings(t *testing.T) {
	assert.Equal(t, NewID(7), NewID("7"))
	assert.Equal(t, NewID(int64(7)), NewID(uint8(7)))
	assert.Equal(t, NewID(7.0), NewID("7"))
	assert.Equal(t, ID("7"), NewID(ID("7")))
	// NFC: "e" + combining acute composes to "é".
	assert.Equal(t, NewID("cafe\u0301"), NewID("caf\u00e9"))
	assert.NotEqual(t, NewID("07"), NewID(7))
}

func TestIDIsInteger(t *testing.T) {
	assert.True(t, NewID(42).IsInteger())
	assert.True(t, ID("-3").IsInteger())
	assert.False(t, ID("007").IsInteger())
	assert.False(t, ID("abc").IsInteger())
}

func TestFind(t *testing.T) {
	tr := sample()
	assert.Equal(t, NewID(121), tr.Find("121").ID)
	assert.Equal(t, NewID(3), tr.Find(NewID(3)).ID)
	assert.Nil(t, tr.Find("missing"))
}

func TestFindFirstMatchInPreOrder(t *testing.T) {
	first := NewItem("x")
	first.SetAttr("n", 1)
	second := NewItem("x")
	second.SetAttr("n", 2)
	tr := New(NewItem("a", first), second)

	got := tr.Find("x")
	require.NotNil(t, got)
	v, _ := got.Attr("n")
	assert.Equal(t, 1, v)
}

func TestRemove(t *testing.T) {
	tr := sample()
	assert.True(t, tr.Remove("12"))
	assert.Equal(t, "1[11],2,3", tr.String())
	assert.True(t, tr.Remove("1"))
	assert.Equal(t, "2,3", tr.String())
}

func TestRemoveMissingIsNoop(t *testing.T) {
	tr := sample()
	before := tr.String()
	rev := tr.Revision()
	assert.False(t, tr.Remove("nope"))
	assert.Equal(t, before, tr.String())
	assert.Equal(t, rev, tr.Revision())
}

func TestInsertRelative(t *testing.T) {
	tests := []struct {
		name   string
		target ID
		pos    Position
		want   string
	}{
		{"above root", "2", Above, "1[11,12[121]],n,2,3"},
		{"below root", "2", Below, "1[11,12[121]],2,n,3"},
		{"above first", "1", Above, "n,1[11,12[121]],2,3"},
		{"below last", "3", Below, "1[11,12[121]],2,3,n"},
		{"above nested", "12", Above, "1[11,n,12[121]],2,3"},
		{"below nested", "11", Below, "1[11,n,12[121]],2,3"},
		{"into leaf", "2", Into, "1[11,12[121]],2[n],3"},
		{"into parent appends", "1", Into, "1[11,12[121],n],2,3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := sample()
			require.True(t, tr.InsertRelative(tt.target, NewItem("n"), tt.pos))
			assert.Equal(t, tt.want, tr.String())
		})
	}
}

func TestInsertRelativeMissingTargetLeavesTreeUntouched(t *testing.T) {
	tr := sample()
	before := tr.String()
	for _, pos := range []Position{Above, Below, Into} {
		assert.False(t, tr.InsertRelative("missing", NewItem("n"), pos))
	}
	assert.False(t, tr.InsertRelative("1", nil, Above))
	assert.Equal(t, before, tr.String())
}

func TestInsertAbovePositionRoundTrip(t *testing.T) {
	tr := sample()
	// Predecessor of 3 is 2 before the insert.
	require.True(t, tr.InsertRelative("3", NewItem("n"), Above))
	slot, ok := tr.Locate("n")
	require.True(t, ok)
	s := tr.siblings(slot.Parent)
	assert.Equal(t, ID("2"), s[slot.Index-1].ID)
	assert.Equal(t, ID("3"), s[slot.Index+1].ID)
}

func TestInsertAt(t *testing.T) {
	tr := sample()
	parent := tr.Find("1")
	assert.True(t, tr.InsertAt(Slot{Parent: parent, Index: 2}, NewItem("n")))
	assert.Equal(t, "1[11,12[121],n],2,3", tr.String())
	assert.False(t, tr.InsertAt(Slot{Index: 9}, NewItem("m")))
	assert.False(t, tr.InsertAt(Slot{Index: -1}, NewItem("m")))
}

func TestIndex(t *testing.T) {
	tr := sample()
	tr.InsertRelative("2", NewGhost(), Above)
	idx := tr.Index()
	assert.Len(t, idx, 6)
	assert.Same(t, tr.Find("121"), idx["121"])
	_, hasGhost := idx[GhostID]
	assert.False(t, hasGhost)
}

func TestPrecedingSiblingSkipsGhosts(t *testing.T) {
	tr := New(NewItem(1), NewGhost(), NewItem(2))
	tr.Items[1].ID = "g2" // marker alone identifies a placeholder
	assert.Equal(t, ID("1"), tr.PrecedingSibling("2").ID)
	assert.Nil(t, tr.PrecedingSibling("1"))
	assert.Nil(t, tr.PrecedingSibling("missing"))
}

func TestLastRoot(t *testing.T) {
	tr := New(NewItem(1), NewItem(2), NewGhost())
	assert.Equal(t, ID("2"), tr.LastRoot().ID)
	assert.Nil(t, New().LastRoot())
}

func TestCloneIsDeep(t *testing.T) {
	orig := NewItem(1, NewItem(11))
	orig.SetAttr("tags", []any{"a"})
	orig.SetAttr("meta", map[string]any{"k": "v"})

	c := orig.Clone()
	c.Children[0].ID = "changed"
	c.Attributes["tags"].([]any)[0] = "b"
	c.Attributes["meta"].(map[string]any)["k"] = "w"

	assert.Equal(t, ID("11"), orig.Children[0].ID)
	assert.Equal(t, "a", orig.Attributes["tags"].([]any)[0])
	assert.Equal(t, "v", orig.Attributes["meta"].(map[string]any)["k"])
}

func TestContains(t *testing.T) {
	tr := sample()
	one := tr.Find("1")
	assert.True(t, Contains(one, "1"))
	assert.True(t, Contains(one, "121"))
	assert.False(t, Contains(one, "2"))
	assert.False(t, Contains(nil, "1"))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, sample().Validate())

	dup := New(NewItem(1, NewItem("1")))
	assert.ErrorContains(t, dup.Validate(), "duplicate id")

	ghosts := New(NewGhost(), NewItem(1, NewGhost()))
	assert.ErrorContains(t, ghosts.Validate(), "2 placeholders")

	empty := New(&Item{})
	assert.ErrorContains(t, empty.Validate(), "empty id")
}

func TestFlatten(t *testing.T) {
	rows := sample().Flatten()
	var got []string
	for _, r := range rows {
		got = append(got, strings.Repeat(".", r.Depth)+string(r.Item.ID))
	}
	assert.Equal(t, []string{"1", ".11", ".12", "..121", "2", "3"}, got)
	assert.Equal(t, ID("12"), rows[3].Parent.ID)
}

func TestTitleFallsBackToID(t *testing.T) {
	it := NewItem(5)
	assert.Equal(t, "5", it.Title())
	it.SetAttr(TitleAttr, "Five")
	assert.Equal(t, "Five", it.Title())
}

func TestTreeString(t *testing.T) {
	tr := sample()
	tr.InsertRelative("2", NewGhost(), Below)
	assert.Equal(t, "1[11,12[121]],2,*,3", tr.String())
}
