package tree

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `items:
  - id: 1
    title: Inbox
    attributes:
      color: blue
    children:
      - id: "11"
        title: Call back
        due: tomorrow
  - id: beta
`

func TestReadDocument(t *testing.T) {
	tr, err := ReadDocument(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "1[11],beta", tr.String())
	one := tr.Find(NewID(1))
	require.NotNil(t, one)
	assert.Equal(t, "Inbox", one.Title())
	assert.Equal(t, "blue", one.Attributes["color"])

	child := tr.Find("11")
	assert.Equal(t, "tomorrow", child.Attributes["due"])
}

func TestReadDocumentAcceptsJSON(t *testing.T) {
	tr, err := ReadDocument(strings.NewReader(`{"items":[{"id":1,"children":[{"id":"2"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "1[2]", tr.String())
}

func TestReadDocumentRejectsDuplicates(t *testing.T) {
	_, err := ReadDocument(strings.NewReader("items:\n  - id: 1\n  - id: \"1\"\n"))
	assert.ErrorContains(t, err, "duplicate id")
}

func TestReadDocumentRequiresID(t *testing.T) {
	_, err := ReadDocument(strings.NewReader("items:\n  - title: nope\n"))
	assert.ErrorContains(t, err, "no id")
}

func TestReadDocumentEmpty(t *testing.T) {
	tr, err := ReadDocument(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tr.Items)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	tr, err := ReadDocument(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	tr.InsertRelative("beta", NewGhost(), Above)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, tr))
	assert.NotContains(t, buf.String(), string(GhostID))
	assert.Contains(t, buf.String(), "id: 1\n")
	assert.Contains(t, buf.String(), "title: Inbox")

	back, err := ReadDocument(&buf)
	require.NoError(t, err)
	assert.Equal(t, "1[11],beta", back.String())
	assert.Equal(t, "Call back", back.Find("11").Title())
	// the live tree still holds its placeholder
	assert.Equal(t, 1, tr.CountGhosts())
}

func TestWriteJSON(t *testing.T) {
	one := NewItem(1, NewItem("a"))
	one.SetAttr(TitleAttr, "One")
	one.SetAttr("k", "v")

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, New(one), false))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	first := doc["items"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "One", first["title"])
	assert.Equal(t, map[string]any{"k": "v"}, first["attributes"])
	assert.Equal(t, "a", first["children"].([]any)[0].(map[string]any)["id"])
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.yaml")
	require.NoError(t, SaveFile(path, New(NewItem(1), NewItem(2, NewItem(3)))))

	_, err := os.Stat(path)
	require.NoError(t, err)

	tr, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1,2[3]", tr.String())
}
