package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCaseInsensitive(t *testing.T) {
	for _, name := range []string{"FLASH", "flash", "Flash"} {
		entry := Lookup(name)
		require.NotNil(t, entry, name)
		assert.Equal(t, "FLASH", entry.Keyword)
	}
}

func TestLookupUnknown(t *testing.T) {
	assert.Nil(t, Lookup("NOTAKEYWORD"))
}

func TestMarkdown(t *testing.T) {
	entry := Lookup("PROPERTY")
	require.NotNil(t, entry)
	md := entry.Markdown()
	assert.Contains(t, md, "**PROPERTY**")
	assert.Contains(t, md, "```")
	assert.Contains(t, md, "STREAM=")
}

func TestForSection(t *testing.T) {
	unit := ForSection("UNIT")
	require.NotEmpty(t, unit)
	for _, entry := range unit {
		if entry.Section != "" {
			assert.Equal(t, "UNIT", entry.Section)
		}
	}

	general := ForSection("")
	require.NotEmpty(t, general)
	for _, entry := range general {
		assert.Empty(t, entry.Section, entry.Keyword)
	}
	assert.Greater(t, len(unit), len(general), "unit context adds to the general keywords")
}

func TestAllDocumented(t *testing.T) {
	for _, entry := range All() {
		assert.NotEmpty(t, entry.Keyword)
		assert.NotEmpty(t, entry.Summary, entry.Keyword)
	}
}
