// Package symbols builds the name table for a parsed simulation deck:
// which streams feed which units, which components are declared, and
// which names are used without ever being defined.
package symbols

import "strings"

type Kind int

const (
	KindStream Kind = iota
	KindUnit
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindStream:
		return "stream"
	case KindUnit:
		return "unit"
	case KindComponent:
		return "component"
	}
	return "unknown"
}

type Role int

const (
	RoleDefinition Role = iota
	RoleFeed
	RoleProduct
)

func (r Role) String() string {
	switch r {
	case RoleDefinition:
		return "definition"
	case RoleFeed:
		return "feed"
	case RoleProduct:
		return "product"
	}
	return "unknown"
}

// Reference is one site where a name appears, by line and role.
type Reference struct {
	Line int
	Role Role
}

// StreamMeta holds property values pulled out of the defining PROPERTY
// statement's raw text. Extraction is textual and best-effort: units
// and formats vary too much for a structural read.
type StreamMeta struct {
	Temperature string
	Pressure    string
	Rate        string
}

type UnitMeta struct {
	OpType string
}

type ComponentMeta struct {
	LibID    int
	Declared string
	Info     *ComponentInfo
}

// Symbol is one named entity. Name is the canonical (uppercase) key;
// the first definition wins DefinitionLine, every later sighting only
// appends to References.
type Symbol struct {
	Name           string
	Kind           Kind
	DefinitionLine int
	References     []Reference

	Stream    *StreamMeta
	Unit      *UnitMeta
	Component *ComponentMeta
}

func (s *Symbol) IsDefined() bool {
	for _, ref := range s.References {
		if ref.Role == RoleDefinition {
			return true
		}
	}
	return false
}

// RoleCount returns how many references carry the given role.
func (s *Symbol) RoleCount(role Role) int {
	n := 0
	for _, ref := range s.References {
		if ref.Role == role {
			n++
		}
	}
	return n
}

type Stats struct {
	StreamCount    int
	UnitCount      int
	ComponentCount int
}

// Table is rebuilt from scratch on every content change and queried
// until the next rebuild. All lookups fold names to uppercase.
type Table struct {
	symbols map[string]*Symbol
	order   []string
}

func NewTable() *Table {
	return &Table{symbols: make(map[string]*Symbol)}
}

func canonical(name string) string {
	return strings.ToUpper(name)
}

func (t *Table) reset() {
	t.symbols = make(map[string]*Symbol)
	t.order = nil
}

// lookupOrCreate registers a symbol on first sight; symbols are never
// deleted during a single build.
func (t *Table) lookupOrCreate(name string, kind Kind) *Symbol {
	key := canonical(name)
	if sym, ok := t.symbols[key]; ok {
		return sym
	}
	sym := &Symbol{Name: key, Kind: kind}
	t.symbols[key] = sym
	t.order = append(t.order, key)
	return sym
}

// Symbol looks a name up, ignoring case. Returns nil when absent.
func (t *Table) Symbol(name string) *Symbol {
	return t.symbols[canonical(name)]
}

func (t *Table) IsDefined(name string) bool {
	sym := t.Symbol(name)
	return sym != nil && sym.IsDefined()
}

// SymbolsByKind returns symbols of one kind in first-sighting order.
func (t *Table) SymbolsByKind(kind Kind) []*Symbol {
	var result []*Symbol
	for _, key := range t.order {
		if sym := t.symbols[key]; sym.Kind == kind {
			result = append(result, sym)
		}
	}
	return result
}

// UndefinedSymbols returns the streams that are referenced somewhere
// but never defined by a stream-property statement. Units and
// components cannot be used-before-defined in this grammar.
func (t *Table) UndefinedSymbols() []*Symbol {
	var result []*Symbol
	for _, key := range t.order {
		sym := t.symbols[key]
		if sym.Kind == KindStream && len(sym.References) > 0 && !sym.IsDefined() {
			result = append(result, sym)
		}
	}
	return result
}

func (t *Table) Stats() Stats {
	stats := Stats{}
	for _, sym := range t.symbols {
		switch sym.Kind {
		case KindStream:
			stats.StreamCount++
		case KindUnit:
			stats.UnitCount++
		case KindComponent:
			stats.ComponentCount++
		}
	}
	return stats
}
