package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwessel/proin/config"
	"github.com/mwessel/proin/prosim/symbols"
)

const sampleDeck = `COMPONENT DATA
LIBID 1, C1/2, C2/3

STREAM DATA
PROPERTY STREAM=FEED1, TEMP=60, PRES=14.7, PHASE=M

UNIT OPERATIONS
FLASH UID=F-100
  FEED FEED1
  PROD V=OVHD, L=BTMS
`

func testWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return New(config.Default())
}

func TestUpdateAnalyzesDocument(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", sampleDeck)
	require.NotNil(t, doc)

	assert.NotNil(t, doc.Program)
	assert.NotEmpty(t, doc.Tokens)
	require.NotNil(t, doc.Table)

	unit := doc.Table.Symbol("F-100")
	require.NotNil(t, unit)
	assert.Equal(t, symbols.KindUnit, unit.Kind)
	require.NotNil(t, unit.Unit)
	assert.Equal(t, "FLASH", unit.Unit.OpType)
}

func TestGetAndRemove(t *testing.T) {
	ws := testWorkspace(t)
	ws.Update("file:///deck.inp", sampleDeck)

	assert.NotNil(t, ws.Get("file:///deck.inp"))
	assert.Nil(t, ws.Get("file:///other.inp"))

	ws.Remove("file:///deck.inp")
	assert.Nil(t, ws.Get("file:///deck.inp"))
}

func TestUpdateReplacesPreviousState(t *testing.T) {
	ws := testWorkspace(t)
	ws.Update("file:///deck.inp", sampleDeck)
	doc := ws.Update("file:///deck.inp", "TITLE PROJECT=EMPTY\n")

	assert.Nil(t, doc.Table.Symbol("F-100"))
	assert.Same(t, doc, ws.Get("file:///deck.inp"))
}
