package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwessel/proin/prosim/parser"
	"github.com/mwessel/proin/prosim/symbols"
)

func TestFilterUndefinedComposesWithKind(t *testing.T) {
	input := "STREAM DATA\n" +
		"PROPERTY STREAM=S1, TEMP=60\n" +
		"UNIT OPERATIONS\n" +
		"FLASH UID=F1\n" +
		"  FEED S1\n" +
		"  PROD OVHD\n"
	program := parser.ParseSource([]byte(input), "deck.inp")
	table := symbols.NewTable()
	table.Build(program, input)

	streams := filterUndefined(table, table.SymbolsByKind(symbols.KindStream))
	require.Len(t, streams, 1)
	assert.Equal(t, "OVHD", streams[0].Name)

	units := filterUndefined(table, table.SymbolsByKind(symbols.KindUnit))
	assert.Empty(t, units, "a kind filter is not overridden by --undefined")
}
