package workspace

import (
	"fmt"
	"strings"

	"github.com/mwessel/proin/prosim/docs"
	"github.com/mwessel/proin/prosim/symbols"
)

// Hover returns markdown for the word under the 1-based position, or
// "" when there is nothing to say. Keyword documentation wins over
// symbol information so that FEED hovers as the keyword even when a
// stream happens to share the name.
func (w *Workspace) Hover(doc *Document, line, column int) string {
	word := wordAt(doc.Content, line, column)
	if word == "" {
		return ""
	}

	if entry := docs.Lookup(word); entry != nil {
		return entry.Markdown()
	}

	if sym := doc.Table.Symbol(word); sym != nil {
		return symbolMarkdown(sym)
	}

	return ""
}

func symbolMarkdown(sym *symbols.Symbol) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (%s)\n", sym.Name, sym.Kind)

	if sym.IsDefined() {
		fmt.Fprintf(&b, "\nDefined on line %d.\n", sym.DefinitionLine)
	} else {
		b.WriteString("\n*Not defined in this document.*\n")
	}

	switch {
	case sym.Stream != nil:
		if sym.Stream.Temperature != "" {
			fmt.Fprintf(&b, "\n- Temperature: %s", sym.Stream.Temperature)
		}
		if sym.Stream.Pressure != "" {
			fmt.Fprintf(&b, "\n- Pressure: %s", sym.Stream.Pressure)
		}
		if sym.Stream.Rate != "" {
			fmt.Fprintf(&b, "\n- Rate: %s", sym.Stream.Rate)
		}
		feeds := sym.RoleCount(symbols.RoleFeed)
		products := sym.RoleCount(symbols.RoleProduct)
		fmt.Fprintf(&b, "\n- Feeds %d unit(s), produced by %d unit(s)\n", feeds, products)
	case sym.Unit != nil:
		fmt.Fprintf(&b, "\n- Operation: %s\n", sym.Unit.OpType)
	case sym.Component != nil:
		if sym.Component.LibID != 0 {
			fmt.Fprintf(&b, "\n- Library ID: %d", sym.Component.LibID)
		}
		if info := sym.Component.Info; info != nil {
			fmt.Fprintf(&b, "\n- Formula: %s", info.Formula)
			fmt.Fprintf(&b, "\n- Category: %s", info.Category)
			fmt.Fprintf(&b, "\n- Molar mass: %.3f g/mol", info.MolarMass)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// wordAt extracts the identifier-like word covering the 1-based
// line/column. Hyphens are part of words here, matching the tokenizer's
// treatment of names like F-100.
func wordAt(content string, line, column int) string {
	lines := strings.Split(content, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	text := lines[line-1]
	idx := column - 1
	if idx < 0 || idx > len(text) {
		return ""
	}
	// A position at the end of a word still hovers it.
	if idx == len(text) || !isWordByte(text[idx]) {
		if idx == 0 || !isWordByte(text[idx-1]) {
			return ""
		}
		idx--
	}

	start := idx
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	end := idx
	for end < len(text) && isWordByte(text[end]) {
		end++
	}
	return text[start:end]
}

func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-':
		return true
	}
	return false
}
