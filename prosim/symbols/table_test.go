package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwessel/proin/prosim/parser"
)

func buildTable(t *testing.T, input string) *Table {
	t.Helper()
	program := parser.ParseSource([]byte(input), "test.inp")
	table := NewTable()
	table.Build(program, input)
	return table
}

func TestBuildComponents(t *testing.T) {
	table := buildTable(t, "COMPONENT DATA\nLIBID 1, C1/2, C2/3\n")

	assert.Equal(t, 2, table.Stats().ComponentCount)

	c1 := table.Symbol("C1")
	require.NotNil(t, c1)
	assert.Equal(t, KindComponent, c1.Kind)
	require.NotNil(t, c1.Component)
	assert.Equal(t, 2, c1.Component.LibID)

	c2 := table.Symbol("C2")
	require.NotNil(t, c2)
	assert.Equal(t, 3, c2.Component.LibID)
}

func TestComponentEnrichment(t *testing.T) {
	table := buildTable(t, "COMPONENT DATA\nLIBID 1, C1/2, XYLENOL/3\n")

	c1 := table.Symbol("C1")
	require.NotNil(t, c1)
	require.NotNil(t, c1.Component.Info)
	assert.Equal(t, "CH4", c1.Component.Info.Formula)
	assert.Equal(t, "paraffin", c1.Component.Info.Category)
	assert.InDelta(t, 16.043, c1.Component.Info.MolarMass, 1e-9)

	// unknown names still resolve, just without enrichment
	unknown := table.Symbol("XYLENOL")
	require.NotNil(t, unknown)
	assert.Nil(t, unknown.Component.Info)
}

func TestDuplicateComponentIgnored(t *testing.T) {
	table := buildTable(t, "COMPONENT DATA\nLIBID 1, C1/2\nLIBID 1, c1/9\n")

	c1 := table.Symbol("C1")
	require.NotNil(t, c1)
	assert.Equal(t, 2, c1.Component.LibID)
	assert.Equal(t, 2, c1.DefinitionLine)
	assert.Equal(t, 1, table.Stats().ComponentCount)
}

func TestComponentDeclarationAfterCrossKindSighting(t *testing.T) {
	// the stream reference claims the name first; the component
	// declaration must still land on the symbol instead of vanishing
	input := "UNIT OPERATIONS\n" +
		"FLASH UID=F1\n" +
		"  FEED C1\n" +
		"COMPONENT DATA\n" +
		"LIBID 1, C1/2\n"
	table := buildTable(t, input)

	c1 := table.Symbol("C1")
	require.NotNil(t, c1)
	assert.Equal(t, KindStream, c1.Kind, "first sighting keeps its kind")
	assert.True(t, c1.IsDefined(), "the declaration counts as a definition")
	require.NotNil(t, c1.Component)
	assert.Equal(t, 2, c1.Component.LibID)
	assert.Empty(t, table.UndefinedSymbols())
}

func TestBuildUnitsAndStreams(t *testing.T) {
	table := buildTable(t, "FLASH UID=F-100\nFEED FEED\nPROD VAPOR, LIQUID\n")

	assert.Equal(t, 1, table.Stats().UnitCount)
	assert.Equal(t, 3, table.Stats().StreamCount)

	unit := table.Symbol("F-100")
	require.NotNil(t, unit)
	assert.Equal(t, KindUnit, unit.Kind)
	require.NotNil(t, unit.Unit)
	assert.Equal(t, "FLASH", unit.Unit.OpType)

	feed := table.Symbol("FEED")
	require.NotNil(t, feed)
	assert.Equal(t, KindStream, feed.Kind)
	assert.Equal(t, 1, feed.RoleCount(RoleFeed))
	assert.False(t, feed.IsDefined())

	undefined := table.UndefinedSymbols()
	names := make([]string, 0, len(undefined))
	for _, sym := range undefined {
		names = append(names, sym.Name)
	}
	assert.ElementsMatch(t, []string{"FEED", "VAPOR", "LIQUID"}, names)
}

func TestDefinedStreamNotUndefined(t *testing.T) {
	input := "STREAM DATA\n" +
		"PROPERTY STREAM=FEED, TEMP=60, PRES=150, RATE=100\n" +
		"UNIT OPERATIONS\n" +
		"FLASH UID=F1\n" +
		"  FEED FEED\n" +
		"  PROD V1, L1\n"
	table := buildTable(t, input)

	assert.True(t, table.IsDefined("FEED"))
	for _, sym := range table.UndefinedSymbols() {
		assert.NotEqual(t, "FEED", sym.Name)
	}

	feed := table.Symbol("FEED")
	require.NotNil(t, feed)
	assert.Equal(t, 2, feed.DefinitionLine)
	assert.Equal(t, 1, feed.RoleCount(RoleDefinition))
	assert.Equal(t, 1, feed.RoleCount(RoleFeed))
}

func TestReferenceCounting(t *testing.T) {
	input := "STREAM DATA\n" +
		"PROPERTY STREAM=S1, TEMP=50\n" +
		"UNIT OPERATIONS\n" +
		"FLASH UID=F1\n  FEED S1\n  PROD P1\n" +
		"FLASH UID=F2\n  FEED S1\n  PROD S1\n"
	table := buildTable(t, input)

	s1 := table.Symbol("S1")
	require.NotNil(t, s1)
	assert.Equal(t, 2, s1.RoleCount(RoleFeed))
	assert.Equal(t, 1, s1.RoleCount(RoleProduct))
	assert.Equal(t, 1, s1.RoleCount(RoleDefinition))
	assert.Len(t, s1.References, 4)
}

func TestCaseInsensitiveLookup(t *testing.T) {
	table := buildTable(t, "STREAM DATA\nPROPERTY STREAM=Feed1, TEMP=60\n")

	require.NotNil(t, table.Symbol("feed1"))
	assert.Equal(t, table.Symbol("FEED1"), table.Symbol("feed1"))
	assert.Equal(t, table.Symbol("FEED1"), table.Symbol("Feed1"))
	assert.Equal(t, "FEED1", table.Symbol("feed1").Name)
}

func TestPropertyExtraction(t *testing.T) {
	input := "STREAM DATA\n" +
		"PROPERTY STREAM=S1, TEMPERATURE(F)=60.5, PRES=1.5E2, RATE=100\n" +
		"PROPERTY STREAM=S2, TEMP=-40\n"
	table := buildTable(t, input)

	s1 := table.Symbol("S1")
	require.NotNil(t, s1)
	require.NotNil(t, s1.Stream)
	assert.Equal(t, "60.5", s1.Stream.Temperature)
	assert.Equal(t, "1.5E2", s1.Stream.Pressure)
	assert.Equal(t, "100", s1.Stream.Rate)

	s2 := table.Symbol("S2")
	require.NotNil(t, s2)
	require.NotNil(t, s2.Stream)
	assert.Equal(t, "-40", s2.Stream.Temperature)
	assert.Empty(t, s2.Stream.Rate)
}

func TestRebuildClears(t *testing.T) {
	program1 := parser.ParseSource([]byte("STREAM DATA\nPROPERTY STREAM=OLD, TEMP=1\n"), "a.inp")
	program2 := parser.ParseSource([]byte("STREAM DATA\nPROPERTY STREAM=NEW, TEMP=2\n"), "b.inp")

	table := NewTable()
	table.Build(program1, "")
	require.NotNil(t, table.Symbol("OLD"))

	table.Build(program2, "")
	assert.Nil(t, table.Symbol("OLD"))
	assert.NotNil(t, table.Symbol("NEW"))
	assert.Equal(t, 1, table.Stats().StreamCount)
}

func TestBuildNilProgram(t *testing.T) {
	table := NewTable()
	table.Build(nil, "")
	assert.Equal(t, Stats{}, table.Stats())
}

func TestSymbolsByKindOrder(t *testing.T) {
	input := "COMPONENT DATA\nLIBID 1, C2/2, C1/3\n" +
		"UNIT OPERATIONS\nFLASH UID=F1\n  FEED B\n  PROD A\n"
	table := buildTable(t, input)

	comps := table.SymbolsByKind(KindComponent)
	require.Len(t, comps, 2)
	assert.Equal(t, "C2", comps[0].Name)
	assert.Equal(t, "C1", comps[1].Name)

	streams := table.SymbolsByKind(KindStream)
	require.Len(t, streams, 2)
	assert.Equal(t, "B", streams[0].Name)
	assert.Equal(t, "A", streams[1].Name)
}
