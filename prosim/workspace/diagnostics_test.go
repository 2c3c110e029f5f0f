package workspace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwessel/proin/config"
)

func diagnosticMessages(diags []Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

func TestDiagnosticsUndefinedStreams(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", sampleDeck)

	diags := ws.Diagnostics(doc)

	var undefined []Diagnostic
	for _, d := range diags {
		if d.Severity == SeverityWarning {
			undefined = append(undefined, d)
		}
	}
	require.Len(t, undefined, 2)

	messages := strings.Join(diagnosticMessages(undefined), "\n")
	assert.Contains(t, messages, "OVHD")
	assert.Contains(t, messages, "BTMS")

	// PROD V=OVHD, L=BTMS is the last line of the deck.
	assert.Equal(t, 10, undefined[0].Span.Start.Line)
	line := strings.Split(sampleDeck, "\n")[9]
	name := line[undefined[0].Span.Start.Column-1 : undefined[0].Span.End.Column-1]
	assert.Equal(t, "OVHD", name)
}

func TestDiagnosticsDefinedStreamsNotReported(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", sampleDeck)

	for _, d := range ws.Diagnostics(doc) {
		assert.NotContains(t, d.Message, "FEED1")
	}
}

func TestDiagnosticsUnusedStream(t *testing.T) {
	deck := `STREAM DATA
PROPERTY STREAM=ORPHAN, TEMP=100
`
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", deck)

	diags := ws.Diagnostics(doc)
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityHint, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "ORPHAN")
	assert.Contains(t, diags[0].Message, "not connected")
}

func TestDiagnosticsUnusedStreamGated(t *testing.T) {
	cfg := config.Default()
	cfg.Diagnostics.ReportUnusedStreams = false
	ws := New(cfg)

	doc := ws.Update("file:///deck.inp", "STREAM DATA\nPROPERTY STREAM=ORPHAN, TEMP=100\n")
	assert.Empty(t, ws.Diagnostics(doc))
}

func TestDiagnosticsDuplicateDefinition(t *testing.T) {
	deck := `STREAM DATA
PROPERTY STREAM=S1, TEMP=50
PROPERTY STREAM=S1, TEMP=90

UNIT OPERATIONS
FLASH UID=F1
  FEED S1
`
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", deck)

	var dups []Diagnostic
	for _, d := range ws.Diagnostics(doc) {
		if d.Severity == SeverityInformation {
			dups = append(dups, d)
		}
	}
	require.Len(t, dups, 1)
	assert.Contains(t, dups[0].Message, "defined 2 times")
	assert.Equal(t, 2, dups[0].Span.Start.Line, "points at the first definition")
}

func TestDiagnosticsUnrecognizedCharacter(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", "TITLE PROJECT=DEMO\n#\n")

	var hints []string
	for _, d := range ws.Diagnostics(doc) {
		if d.Severity == SeverityHint {
			hints = append(hints, d.Message)
		}
	}
	require.NotEmpty(t, hints)
	assert.Contains(t, strings.Join(hints, "\n"), "unrecognized character")
}

func TestDiagnosticsSkippedLinesGated(t *testing.T) {
	deck := "UNIT OPERATIONS\nFLASH UID=F1\n  = = =\n"

	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", deck)
	for _, d := range ws.Diagnostics(doc) {
		assert.NotContains(t, d.Message, "ignored")
	}

	cfg := config.Default()
	cfg.Diagnostics.ReportSkipped = true
	ws = New(cfg)
	doc = ws.Update("file:///deck.inp", deck)

	var skipped []Diagnostic
	for _, d := range ws.Diagnostics(doc) {
		if strings.Contains(d.Message, "ignored") {
			skipped = append(skipped, d)
		}
	}
	require.NotEmpty(t, skipped)
	assert.Equal(t, 3, skipped[0].Span.Start.Line)
}

func TestDiagnosticsCleanDeck(t *testing.T) {
	deck := `STREAM DATA
PROPERTY STREAM=S1, TEMP=60
PROPERTY STREAM=S2, TEMP=80

UNIT OPERATIONS
MIXER UID=M1
  FEED S1
  PROD S2
`
	ws := testWorkspace(t)
	doc := ws.Update("file:///deck.inp", deck)
	assert.Empty(t, ws.Diagnostics(doc))
}
