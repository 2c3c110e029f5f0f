package workspace

import (
	"strings"

	"github.com/mwessel/proin/prosim/docs"
	"github.com/mwessel/proin/prosim/parser"
	"github.com/mwessel/proin/prosim/symbols"
)

type CompletionKind int

const (
	CompletionKindKeyword CompletionKind = iota
	CompletionKindStream
	CompletionKindUnit
	CompletionKindComponent
)

type Completion struct {
	Label  string
	Detail string
	Kind   CompletionKind
}

// Completions returns candidates for the 1-based position, filtered by
// the partial word to the left of the cursor. Candidates depend on the
// enclosing section: keywords documented for that section, plus stream
// names inside unit sections and component names inside stream
// sections.
func (w *Workspace) Completions(doc *Document, line, column int) []Completion {
	prefix := strings.ToUpper(prefixAt(doc.Content, line, column))
	section := sectionNameAt(doc.Program, line)

	var out []Completion

	for _, entry := range docs.ForSection(section) {
		if prefix != "" && !strings.HasPrefix(entry.Keyword, prefix) {
			continue
		}
		out = append(out, Completion{
			Label:  entry.Keyword,
			Detail: entry.Summary,
			Kind:   CompletionKindKeyword,
		})
	}

	switch section {
	case "UNIT":
		for _, sym := range doc.Table.SymbolsByKind(symbols.KindStream) {
			if prefix != "" && !strings.HasPrefix(sym.Name, prefix) {
				continue
			}
			out = append(out, Completion{
				Label:  sym.Name,
				Detail: "stream",
				Kind:   CompletionKindStream,
			})
		}
	case "STREAM":
		for _, sym := range doc.Table.SymbolsByKind(symbols.KindComponent) {
			if prefix != "" && !strings.HasPrefix(sym.Name, prefix) {
				continue
			}
			detail := "component"
			if sym.Component != nil && sym.Component.Info != nil {
				detail = sym.Component.Info.Formula
			}
			out = append(out, Completion{
				Label:  sym.Name,
				Detail: detail,
				Kind:   CompletionKindComponent,
			})
		}
	}

	return out
}

// sectionNameAt maps the section node covering line to the section name
// used by the keyword documentation. Lines outside any section get the
// general entries only.
func sectionNameAt(program *parser.Node, line int) string {
	if program == nil {
		return ""
	}
	for _, section := range program.Sections() {
		end := section.EndLine()
		// A span ending at column 1 only owns the consumed newline of
		// the previous line, not the line it points at.
		if section.Span.End.Column == 1 && end > section.StartLine() {
			end--
		}
		if line < section.StartLine() || line > end {
			continue
		}
		switch section.Kind {
		case parser.KindComponentSection:
			return "COMPONENT"
		case parser.KindStreamSection:
			return "STREAM"
		case parser.KindThermoSection:
			return "THERMODYNAMIC"
		case parser.KindUnitSection:
			return "UNIT"
		}
	}
	return ""
}

// prefixAt returns the partial word immediately left of the cursor.
func prefixAt(content string, line, column int) string {
	lines := strings.Split(content, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	text := lines[line-1]
	idx := column - 1
	if idx < 0 {
		return ""
	}
	if idx > len(text) {
		idx = len(text)
	}
	start := idx
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	return text[start:idx]
}
