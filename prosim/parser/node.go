package parser

import "strings"

type NodeKind int

const (
	KindSkipped NodeKind = iota

	// Root
	KindProgram

	// Sections
	KindComponentSection
	KindStreamSection
	KindThermoSection
	KindUnitSection
	KindPrintSection
	KindOtherSection

	// Statements
	KindUnitOperation
	KindLibIDDecl
	KindNameDecl
	KindBankDecl
	KindPropertyStmt
	KindCompositionStmt
	KindMethodStmt
	KindSetStmt
	KindPrintStmt
	KindStatement

	// Statement components
	KindParameter
	KindBasis
	KindFeeds
	KindProducts
	KindStreamRef
	KindComponentEntry

	// Values
	KindNumber
	KindIdentifier
	KindString
	KindList
)

var nodeKindNames = map[NodeKind]string{
	KindSkipped:          "Skipped",
	KindProgram:          "Program",
	KindComponentSection: "ComponentSection",
	KindStreamSection:    "StreamSection",
	KindThermoSection:    "ThermoSection",
	KindUnitSection:      "UnitSection",
	KindPrintSection:     "PrintSection",
	KindOtherSection:     "OtherSection",
	KindUnitOperation:    "UnitOperation",
	KindLibIDDecl:        "LibIDDecl",
	KindNameDecl:         "NameDecl",
	KindBankDecl:         "BankDecl",
	KindPropertyStmt:     "PropertyStmt",
	KindCompositionStmt:  "CompositionStmt",
	KindMethodStmt:       "MethodStmt",
	KindSetStmt:          "SetStmt",
	KindPrintStmt:        "PrintStmt",
	KindStatement:        "Statement",
	KindParameter:        "Parameter",
	KindBasis:            "Basis",
	KindFeeds:            "Feeds",
	KindProducts:         "Products",
	KindStreamRef:        "StreamRef",
	KindComponentEntry:   "ComponentEntry",
	KindNumber:           "Number",
	KindIdentifier:       "Identifier",
	KindString:           "String",
	KindList:             "List",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Separator distinguishes comma lists (item, item) from slash lists
// (id/name or stage/stream), which mean different things downstream.
type Separator int

const (
	SepNone Separator = iota
	SepComma
	SepSlash
)

func (s Separator) String() string {
	switch s {
	case SepComma:
		return ","
	case SepSlash:
		return "/"
	}
	return ""
}

// Node is the single AST node shape, tagged by Kind. Token points at the
// defining token where one exists (operation keyword, parameter name,
// stream name, literal). Value carries the parsed numeric value for
// KindNumber nodes; the original text stays on the token.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Value    float64
	Sep      Separator
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenText() string {
	if n.Token != nil {
		return n.Token.Text
	}
	return ""
}

// StartLine and EndLine map the node back to source for editor features.
func (n *Node) StartLine() int { return n.Span.Start.Line }
func (n *Node) EndLine() int   { return n.Span.End.Line }

// Sections returns the section nodes of a Program in document order.
func (n *Node) Sections() []*Node {
	if n.Kind != KindProgram {
		return nil
	}
	var result []*Node
	for _, child := range n.Children {
		switch child.Kind {
		case KindComponentSection, KindStreamSection, KindThermoSection,
			KindUnitSection, KindPrintSection, KindOtherSection:
			result = append(result, child)
		}
	}
	return result
}

// Parameter looks up a named parameter child, ignoring case.
func (n *Node) Parameter(name string) *Node {
	for _, child := range n.Children {
		if child.Kind == KindParameter && strings.EqualFold(child.TokenText(), name) {
			return child
		}
	}
	return nil
}

// ParameterValue returns the text of a named parameter's value, or "".
func (n *Node) ParameterValue(name string) string {
	param := n.Parameter(name)
	if param == nil {
		return ""
	}
	if val := param.ValueNode(); val != nil {
		return val.ValueText()
	}
	return ""
}

// ValueNode returns the first value child (number, identifier, string
// or list), skipping basis qualifiers.
func (n *Node) ValueNode() *Node {
	for _, child := range n.Children {
		switch child.Kind {
		case KindNumber, KindIdentifier, KindString, KindList:
			return child
		}
	}
	return nil
}

// ValueText renders a value node back to user-facing text: numbers and
// identifiers keep their original spelling, strings are dequoted, lists
// join their items with the recorded separator.
func (n *Node) ValueText() string {
	switch n.Kind {
	case KindNumber, KindIdentifier:
		return n.TokenText()
	case KindString:
		return dequote(n.TokenText())
	case KindList:
		sep := n.Sep.String()
		text := ""
		for i, item := range n.Children {
			if i > 0 {
				text += sep
			}
			text += item.ValueText()
		}
		return text
	}
	return ""
}

func dequote(s string) string {
	if len(s) >= 2 {
		q := s[0]
		if (q == '\'' || q == '"') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	if len(s) >= 1 && (s[0] == '\'' || s[0] == '"') {
		return s[1:]
	}
	return s
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	result := prefix + n.Kind.String()
	if showPositions {
		result += " [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]"
	}
	if n.Token != nil {
		result += " " + n.Token.Text
	}
	if n.Kind == KindList {
		result += " sep=" + n.Sep.String()
	}
	result += "\n"

	for _, child := range n.Children {
		result += child.stringIndent(indent+1, showPositions)
	}
	return result
}
