package workspace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoverKeyword(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", sampleDeck)

	// Line 8 is "FLASH UID=F-100"; column 1 sits on FLASH.
	md := ws.Hover(doc, 8, 1)
	require.NotEmpty(t, md)
	assert.Contains(t, md, "**FLASH**")
}

func TestHoverStreamSymbol(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", sampleDeck)

	// Line 9 is "  FEED FEED1"; column 8 sits on FEED1.
	md := ws.Hover(doc, 9, 8)
	require.NotEmpty(t, md)
	assert.Contains(t, md, "**FEED1**")
	assert.Contains(t, md, "stream")
	assert.Contains(t, md, "Defined on line 5")
	assert.Contains(t, md, "Temperature: 60")
	assert.Contains(t, md, "Pressure: 14.7")
}

func TestHoverUnitSymbol(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", sampleDeck)

	// Column 11 sits on F-100 in "FLASH UID=F-100".
	md := ws.Hover(doc, 8, 11)
	require.NotEmpty(t, md)
	assert.Contains(t, md, "**F-100**")
	assert.Contains(t, md, "Operation: FLASH")
}

func TestHoverComponentSymbol(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", sampleDeck)

	// Line 2 is "LIBID 1, C1/2, C2/3"; column 10 sits on C1.
	md := ws.Hover(doc, 2, 10)
	require.NotEmpty(t, md)
	assert.Contains(t, md, "**C1**")
	assert.Contains(t, md, "CH4")
	assert.Contains(t, md, "Library ID: 2")
}

func TestHoverUndefinedSymbol(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", sampleDeck)

	// Line 10 is "  PROD V=OVHD, L=BTMS"; column 10 sits on OVHD.
	md := ws.Hover(doc, 10, 10)
	require.NotEmpty(t, md)
	assert.Contains(t, md, "Not defined")
}

func TestHoverNothing(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", sampleDeck)

	assert.Empty(t, ws.Hover(doc, 3, 1), "blank line")
	assert.Empty(t, ws.Hover(doc, 99, 1), "line out of range")
}

func TestWordAt(t *testing.T) {
	content := "FLASH UID=F-100\n  FEED S1,5\n"
	tests := []struct {
		name   string
		line   int
		column int
		want   string
	}{
		{"start of word", 1, 1, "FLASH"},
		{"middle of word", 1, 3, "FLASH"},
		{"end of word", 1, 6, "FLASH"},
		{"hyphenated name", 1, 11, "F-100"},
		{"after equals", 1, 10, "UID"},
		{"indented", 2, 3, "FEED"},
		{"number tag", 2, 11, "5"},
		{"out of range", 5, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wordAt(content, tt.line, tt.column))
		})
	}
}

func TestSymbolMarkdownComponentWithoutLibraryInfo(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", "COMPONENT DATA\nLIBID 1, MYSTERY/7\n")

	md := ws.Hover(doc, 2, 10)
	require.NotEmpty(t, md)
	assert.Contains(t, md, "MYSTERY")
	assert.False(t, strings.Contains(md, "Formula"), "no library entry, no formula")
}
