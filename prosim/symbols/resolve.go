package symbols

import (
	"regexp"
	"strings"

	"github.com/mwessel/proin/prosim/parser"
)

// Build clears the table and repopulates it from one parsed tree in a
// single pass, in document order. rawText is the source the tree was
// parsed from; it feeds the textual property extraction and may be
// empty. Within a unit operation the unique id registers before the
// feed and product references, but order never gates lookup: the table
// is complete before anything queries it.
func (t *Table) Build(program *parser.Node, rawText string) {
	t.reset()
	if program == nil {
		return
	}
	for _, child := range program.Children {
		switch child.Kind {
		case parser.KindComponentSection:
			t.buildComponents(child)
		case parser.KindStreamSection:
			t.buildStreams(child, rawText)
		case parser.KindUnitSection:
			for _, stmt := range child.ChildrenOfKind(parser.KindUnitOperation) {
				t.buildUnit(stmt)
			}
		case parser.KindUnitOperation:
			// headerless deck
			t.buildUnit(child)
		}
	}
}

func (t *Table) buildComponents(section *parser.Node) {
	for _, stmt := range section.Children {
		if stmt.Kind != parser.KindLibIDDecl && stmt.Kind != parser.KindNameDecl {
			continue
		}
		for _, entry := range stmt.ChildrenOfKind(parser.KindComponentEntry) {
			name := entry.TokenText()
			if name == "" {
				// bare number: positional index, not a component
				continue
			}
			t.registerComponent(name, entry)
		}
	}
}

// registerComponent keeps the first declaration of a canonical name and
// ignores duplicate component declarations outright. When the name is
// already taken by a stream or unit the earlier sighting keeps its
// kind, but the declaration is still recorded on that symbol: a
// definition reference plus the component metadata.
func (t *Table) registerComponent(name string, entry *parser.Node) {
	if existing := t.symbols[canonical(name)]; existing != nil {
		if existing.Kind != KindComponent {
			existing.References = append(existing.References, Reference{Line: entry.StartLine(), Role: RoleDefinition})
			if existing.Component == nil {
				existing.Component = componentMeta(name, entry)
			}
		}
		return
	}
	sym := t.lookupOrCreate(name, KindComponent)
	sym.DefinitionLine = entry.StartLine()
	sym.References = append(sym.References, Reference{Line: entry.StartLine(), Role: RoleDefinition})
	sym.Component = componentMeta(name, entry)
}

func componentMeta(name string, entry *parser.Node) *ComponentMeta {
	meta := &ComponentMeta{Declared: name, Info: LookupComponent(name)}
	if num := entry.FirstChildOfKind(parser.KindNumber); num != nil {
		meta.LibID = int(num.Value)
	}
	return meta
}

func (t *Table) buildStreams(section *parser.Node, rawText string) {
	for _, stmt := range section.Children {
		if stmt.Kind != parser.KindPropertyStmt && stmt.Kind != parser.KindCompositionStmt {
			continue
		}
		name := stmt.ParameterValue("STREAM")
		if name == "" {
			continue
		}
		sym := t.lookupOrCreate(name, KindStream)
		if !sym.IsDefined() {
			sym.DefinitionLine = stmt.StartLine()
		}
		sym.References = append(sym.References, Reference{Line: stmt.StartLine(), Role: RoleDefinition})
		if stmt.Kind == parser.KindPropertyStmt {
			t.extractProperties(sym, stmt, rawText)
		}
	}
}

func (t *Table) buildUnit(stmt *parser.Node) {
	if uid := stmt.ParameterValue("UID"); uid != "" {
		sym := t.lookupOrCreate(uid, KindUnit)
		if !sym.IsDefined() {
			sym.DefinitionLine = stmt.StartLine()
		}
		sym.References = append(sym.References, Reference{Line: stmt.StartLine(), Role: RoleDefinition})
		if sym.Unit == nil {
			sym.Unit = &UnitMeta{OpType: strings.ToUpper(stmt.TokenText())}
		}
	}

	for _, feeds := range stmt.ChildrenOfKind(parser.KindFeeds) {
		t.registerStreamRefs(feeds, RoleFeed)
	}
	for _, products := range stmt.ChildrenOfKind(parser.KindProducts) {
		t.registerStreamRefs(products, RoleProduct)
	}
}

// registerStreamRefs creates the stream on first reference. A stream
// that never gets a definition role is exactly what the undefined-
// stream check looks for.
func (t *Table) registerStreamRefs(list *parser.Node, role Role) {
	for _, ref := range list.ChildrenOfKind(parser.KindStreamRef) {
		name := ref.TokenText()
		if name == "" {
			continue
		}
		sym := t.lookupOrCreate(name, KindStream)
		sym.References = append(sym.References, Reference{Line: ref.StartLine(), Role: role})
	}
}

var (
	tempPattern = regexp.MustCompile(`(?i)\bTEMP(?:ERATURE)?\s*(?:\([^)]*\))?\s*=\s*([-+]?[0-9]+(?:\.[0-9]+)?(?:[Ee][-+]?[0-9]+)?)`)
	presPattern = regexp.MustCompile(`(?i)\bPRES(?:SURE)?\s*(?:\([^)]*\))?\s*=\s*([-+]?[0-9]+(?:\.[0-9]+)?(?:[Ee][-+]?[0-9]+)?)`)
	ratePattern = regexp.MustCompile(`(?i)\bRATE\s*(?:\([^)]*\))?\s*=\s*([-+]?[0-9]+(?:\.[0-9]+)?(?:[Ee][-+]?[0-9]+)?)`)
)

func (t *Table) extractProperties(sym *Symbol, stmt *parser.Node, rawText string) {
	text := statementText(rawText, stmt)
	if text == "" {
		return
	}
	if sym.Stream == nil {
		sym.Stream = &StreamMeta{}
	}
	if m := tempPattern.FindStringSubmatch(text); m != nil && sym.Stream.Temperature == "" {
		sym.Stream.Temperature = m[1]
	}
	if m := presPattern.FindStringSubmatch(text); m != nil && sym.Stream.Pressure == "" {
		sym.Stream.Pressure = m[1]
	}
	if m := ratePattern.FindStringSubmatch(text); m != nil && sym.Stream.Rate == "" {
		sym.Stream.Rate = m[1]
	}
}

// statementText slices the raw source lines a statement spans. A span
// ending at column 1 stops just before that line (the trailing newline
// token ends there).
func statementText(rawText string, stmt *parser.Node) string {
	if rawText == "" {
		return ""
	}
	lines := strings.Split(rawText, "\n")
	start := stmt.StartLine()
	end := stmt.EndLine()
	if stmt.Span.End.Column == 1 && end > start {
		end--
	}
	if start < 1 || start > len(lines) {
		return ""
	}
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start-1:end], "\n")
}
