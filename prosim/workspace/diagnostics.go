package workspace

import (
	"fmt"
	"strings"

	"github.com/mwessel/proin/prosim/parser"
	"github.com/mwessel/proin/prosim/symbols"
)

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Diagnostic is a finding against a document. Span positions are
// 1-based, matching the tokenizer.
type Diagnostic struct {
	Span     parser.Span
	Severity Severity
	Message  string
}

// Diagnostics analyzes doc and returns all findings in document order
// of discovery. Undefined streams are always reported; the rest is
// gated by configuration.
func (w *Workspace) Diagnostics(doc *Document) []Diagnostic {
	var out []Diagnostic

	lines := strings.Split(doc.Content, "\n")

	for _, sym := range doc.Table.UndefinedSymbols() {
		for _, ref := range sym.References {
			out = append(out, Diagnostic{
				Span:     nameSpan(lines, ref.Line, sym.Name),
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("stream %s is used but never defined", sym.Name),
			})
		}
	}

	for _, sym := range doc.Table.SymbolsByKind(symbols.KindStream) {
		if defs := sym.RoleCount(symbols.RoleDefinition); defs > 1 {
			out = append(out, Diagnostic{
				Span:     nameSpan(lines, sym.DefinitionLine, sym.Name),
				Severity: SeverityInformation,
				Message:  fmt.Sprintf("stream %s is defined %d times; only the first definition is used", sym.Name, defs),
			})
		}
	}

	if w.cfg.Diagnostics.ReportUnusedStreams {
		for _, sym := range doc.Table.SymbolsByKind(symbols.KindStream) {
			if !sym.IsDefined() {
				continue
			}
			if sym.RoleCount(symbols.RoleFeed) == 0 && sym.RoleCount(symbols.RoleProduct) == 0 {
				out = append(out, Diagnostic{
					Span:     nameSpan(lines, sym.DefinitionLine, sym.Name),
					Severity: SeverityHint,
					Message:  fmt.Sprintf("stream %s is defined but not connected to any unit", sym.Name),
				})
			}
		}
	}

	if w.cfg.Diagnostics.ReportUnrecognized {
		for _, tok := range doc.Tokens {
			if tok.Kind == parser.TokenUnrecognized {
				out = append(out, Diagnostic{
					Span:     tok.Span,
					Severity: SeverityHint,
					Message:  fmt.Sprintf("unrecognized character %q", tok.Text),
				})
			}
		}
	}

	if w.cfg.Diagnostics.ReportSkipped {
		out = append(out, skippedLineDiagnostics(doc.Program)...)
	}

	return out
}

func skippedLineDiagnostics(node *parser.Node) []Diagnostic {
	if node == nil {
		return nil
	}
	var out []Diagnostic
	if node.Kind == parser.KindSkipped && node.Span.Start.Line > 0 {
		out = append(out, Diagnostic{
			Span:     node.Span,
			Severity: SeverityHint,
			Message:  "line not understood and ignored",
		})
	}
	for _, child := range node.Children {
		out = append(out, skippedLineDiagnostics(child)...)
	}
	return out
}

// nameSpan locates name within the given 1-based line, falling back to
// the whole line when the text has shifted under the symbol table.
func nameSpan(lines []string, line int, name string) parser.Span {
	if line < 1 || line > len(lines) {
		line = 1
	}
	text := lines[line-1]
	col := strings.Index(strings.ToUpper(text), strings.ToUpper(name))
	if col < 0 {
		return parser.Span{
			Start: parser.Position{Line: line, Column: 1},
			End:   parser.Position{Line: line, Column: len(text) + 1},
		}
	}
	return parser.Span{
		Start: parser.Position{Line: line, Column: col + 1},
		End:   parser.Position{Line: line, Column: col + 1 + len(name)},
	}
}
