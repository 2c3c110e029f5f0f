package parser

import "strconv"

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// Parser turns a token sequence into a Program node. It terminates on
// every input: loops are guarded by mustProgress (advance or bail) and
// by an iteration budget proportional to the remaining token count.
// Malformed input degrades to Skipped nodes, never to an error.
type Parser struct {
	file     string
	tokens   []Token
	comments []Token
	pos      int
}

// Parse is the one-shot entry point: tokens in, Program node out.
func Parse(tokens []Token, opts ...Option) *Node {
	return NewParser(tokens, opts...).Parse()
}

// ParseSource tokenizes and parses in one step.
func ParseSource(input []byte, file string) *Node {
	return Parse(Tokenize(input, file), WithFile(file))
}

func NewParser(tokens []Token, opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	// Comments carry no grammatical weight; keep them aside for
	// diagnostics instead of threading them through every grammar rule.
	for _, tok := range tokens {
		if tok.Kind == TokenComment {
			p.comments = append(p.comments, tok)
			continue
		}
		p.tokens = append(p.tokens, tok)
	}
	if len(p.tokens) == 0 || p.tokens[len(p.tokens)-1].Kind != TokenEOF {
		p.tokens = append(p.tokens, Token{Kind: TokenEOF})
	}
	return p
}

func (p *Parser) Comments() []Token {
	return p.comments
}

func (p *Parser) Parse() *Node {
	return p.parseProgram()
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned
// function at the end: when no progress was made it advances one token
// unconditionally so the loop can never stall.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.check(TokenEOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

// budget is the second line of defense against runaway loops: an
// iteration ceiling proportional to the remaining token count. When it
// runs out the loop treats the remainder as unparsed.
type budget struct {
	n int
}

func (p *Parser) newBudget() *budget {
	return &budget{n: len(p.tokens) - p.pos + 8}
}

func (b *budget) ok() bool {
	b.n--
	return b.n > 0
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		n.Span.End = p.tokens[p.pos-1].Span.End
	} else if len(p.tokens) > 0 {
		n.Span.End = p.tokens[len(p.tokens)-1].Span.End
	}
	return n
}

// skipContinuation absorbs a continuation marker and the newlines after
// it, joining physical lines into one logical statement. It must run
// before every end-of-statement test.
func (p *Parser) skipContinuation() {
	for p.check(TokenContinuation) {
		p.advance()
		for p.check(TokenNewline) {
			p.advance()
		}
	}
}

func (p *Parser) atStatementEnd() bool {
	p.skipContinuation()
	return p.check(TokenNewline) || p.check(TokenEOF)
}

// endStatement drops whatever is left on the logical line, then the
// newline itself.
func (p *Parser) endStatement() {
	guard := p.newBudget()
	for !p.atStatementEnd() && guard.ok() {
		p.advance()
	}
	if p.check(TokenNewline) {
		p.advance()
	}
}

// skipLine records an unrecognized line as a Skipped node so the
// diagnostic layer can optionally surface it.
func (p *Parser) skipLine() *Node {
	node := p.startNode(KindSkipped)
	tok := p.peek()
	node.Token = &tok
	guard := p.newBudget()
	for !p.check(TokenEOF) && !p.check(TokenNewline) && guard.ok() {
		p.advance()
	}
	if p.check(TokenNewline) {
		p.advance()
	}
	return p.finishNode(node)
}

func (p *Parser) skipRest() *Node {
	node := p.startNode(KindSkipped)
	tok := p.peek()
	node.Token = &tok
	for !p.check(TokenEOF) {
		p.advance()
	}
	return p.finishNode(node)
}

// sectionKindAt decides, from one or two tokens of lookahead, whether
// the cursor sits on a section header. Sections are never explicitly
// closed in the source; they end where the next one begins, so this
// check doubles as the statement-loop terminator.
func (p *Parser) sectionKindAt() (NodeKind, bool) {
	switch p.peek().Kind {
	case TokenComponent:
		if p.peekN(1).Kind == TokenData {
			return KindComponentSection, true
		}
	case TokenStream:
		if p.peekN(1).Kind == TokenData {
			return KindStreamSection, true
		}
	case TokenThermodynamic:
		if p.peekN(1).Kind == TokenData {
			return KindThermoSection, true
		}
	case TokenUnitKw:
		if p.peekN(1).Kind == TokenOperations {
			return KindUnitSection, true
		}
	case TokenPrint:
		return KindPrintSection, true
	case TokenTitle, TokenSequence, TokenDimension, TokenDescription, TokenEnd:
		return KindOtherSection, true
	}
	return KindSkipped, false
}

func (p *Parser) atSectionStart() bool {
	_, ok := p.sectionKindAt()
	return ok
}

func (p *Parser) parseProgram() *Node {
	node := p.startNode(KindProgram)
	guard := p.newBudget()
	for !p.check(TokenEOF) && guard.ok() {
		progress := p.mustProgress()
		if p.check(TokenNewline) {
			p.advance()
			continue
		}
		if kind, ok := p.sectionKindAt(); ok {
			node.AddChild(p.parseSection(kind))
		} else {
			// A deck that jumps straight into unit operations is still
			// tooling-worthy input.
			if p.peek().Kind.IsUnitOpKeyword() {
				node.AddChild(p.parseUnitOperation())
			} else {
				node.AddChild(p.skipLine())
			}
		}
		progress()
	}
	if !p.check(TokenEOF) {
		node.AddChild(p.skipRest())
	}
	return p.finishNode(node)
}

func (p *Parser) parseSection(kind NodeKind) *Node {
	switch kind {
	case KindComponentSection:
		return p.parseComponentSection()
	case KindStreamSection:
		return p.parseStreamSection()
	case KindThermoSection:
		return p.parseThermoSection()
	case KindUnitSection:
		return p.parseUnitSection()
	case KindPrintSection:
		return p.parsePrintSection()
	}
	return p.parseOtherSection()
}

func (p *Parser) parseComponentSection() *Node {
	node := p.startNode(KindComponentSection)
	p.advance() // COMPONENT
	p.advance() // DATA
	p.endStatement()

	guard := p.newBudget()
	for !p.check(TokenEOF) && !p.atSectionStart() && guard.ok() {
		progress := p.mustProgress()
		if p.check(TokenNewline) {
			p.advance()
			continue
		}
		switch p.peek().Kind {
		case TokenLibID:
			node.AddChild(p.parseComponentDecl(KindLibIDDecl))
		case TokenName:
			node.AddChild(p.parseComponentDecl(KindNameDecl))
		case TokenBank:
			node.AddChild(p.parseBankDecl())
		default:
			node.AddChild(p.skipLine())
		}
		progress()
	}
	return p.finishNode(node)
}

// parseComponentDecl handles LIBID and NAME statements: a comma list of
// entries where each entry is a bare value or a slash pair joining a
// component name with its library id (C1/2). Bare numbers are
// positional indexes, not components.
func (p *Parser) parseComponentDecl(kind NodeKind) *Node {
	node := p.startNode(kind)
	tok := p.advance()
	node.Token = &tok
	if p.check(TokenAssign) {
		p.advance()
	}

	guard := p.newBudget()
	for !p.atStatementEnd() && guard.ok() {
		progress := p.mustProgress()
		if p.check(TokenComma) {
			p.advance()
			progress()
			continue
		}
		node.AddChild(p.parseComponentEntry())
		progress()
	}
	p.endStatement()
	return p.finishNode(node)
}

func (p *Parser) parseComponentEntry() *Node {
	node := p.startNode(KindComponentEntry)
	guard := p.newBudget()
	for guard.ok() {
		val := p.parseScalar()
		if val == nil {
			break
		}
		if (val.Kind == KindIdentifier || val.Kind == KindString) && node.Token == nil {
			node.Token = val.Token
		} else {
			node.AddChild(val)
		}
		p.skipContinuation()
		if p.check(TokenSlash) {
			p.advance()
			p.skipContinuation()
			continue
		}
		break
	}
	if node.Token == nil && len(node.Children) == 0 {
		return nil
	}
	return p.finishNode(node)
}

func (p *Parser) parseBankDecl() *Node {
	node := p.startNode(KindBankDecl)
	tok := p.advance()
	node.Token = &tok
	if p.check(TokenAssign) {
		p.advance()
	}
	p.parseParameters(node)
	p.endStatement()
	return p.finishNode(node)
}

func (p *Parser) parseStreamSection() *Node {
	node := p.startNode(KindStreamSection)
	p.advance() // STREAM
	p.advance() // DATA
	p.endStatement()

	guard := p.newBudget()
	for !p.check(TokenEOF) && !p.atSectionStart() && guard.ok() {
		progress := p.mustProgress()
		if p.check(TokenNewline) {
			p.advance()
			continue
		}
		switch p.peek().Kind {
		case TokenProperty:
			node.AddChild(p.parseStreamStatement(KindPropertyStmt))
		case TokenComposition:
			node.AddChild(p.parseStreamStatement(KindCompositionStmt))
		default:
			node.AddChild(p.skipLine())
		}
		progress()
	}
	return p.finishNode(node)
}

func (p *Parser) parseStreamStatement(kind NodeKind) *Node {
	node := p.startNode(kind)
	tok := p.advance()
	node.Token = &tok
	p.parseQualifier(node)
	p.parseParameters(node)
	p.endStatement()
	return p.finishNode(node)
}

// parseQualifier absorbs a parenthesized basis such as COMPOSITION(M)
// or TEMPERATURE(F), keeping the basis as an identifier child.
func (p *Parser) parseQualifier(node *Node) {
	if !p.check(TokenLParen) {
		return
	}
	p.advance()
	guard := p.newBudget()
	for !p.check(TokenRParen) && !p.check(TokenNewline) && !p.check(TokenEOF) && guard.ok() {
		tok := p.advance()
		if tok.Kind == TokenIdent || tok.Kind.IsKeyword() {
			node.AddChild(&Node{Kind: KindBasis, Token: &tok, Span: tok.Span})
		}
	}
	if p.check(TokenRParen) {
		p.advance()
	}
}

func (p *Parser) parseThermoSection() *Node {
	node := p.startNode(KindThermoSection)
	p.advance() // THERMODYNAMIC
	p.advance() // DATA
	p.endStatement()

	guard := p.newBudget()
	for !p.check(TokenEOF) && !p.atSectionStart() && guard.ok() {
		progress := p.mustProgress()
		if p.check(TokenNewline) {
			p.advance()
			continue
		}
		switch p.peek().Kind {
		case TokenMethod:
			node.AddChild(p.parseThermoStatement(KindMethodStmt))
		case TokenSet:
			node.AddChild(p.parseThermoStatement(KindSetStmt))
		default:
			node.AddChild(p.skipLine())
		}
		progress()
	}
	return p.finishNode(node)
}

func (p *Parser) parseThermoStatement(kind NodeKind) *Node {
	node := p.startNode(kind)
	tok := p.advance()
	node.Token = &tok
	if p.check(TokenAssign) {
		p.advance()
	}
	p.parseParameters(node)
	p.endStatement()
	return p.finishNode(node)
}

func (p *Parser) parseUnitSection() *Node {
	node := p.startNode(KindUnitSection)
	p.advance() // UNIT
	p.advance() // OPERATIONS
	p.endStatement()

	guard := p.newBudget()
	for !p.check(TokenEOF) && !p.atSectionStart() && guard.ok() {
		progress := p.mustProgress()
		if p.check(TokenNewline) {
			p.advance()
			continue
		}
		if p.peek().Kind.IsUnitOpKeyword() {
			node.AddChild(p.parseUnitOperation())
		} else {
			node.AddChild(p.skipLine())
		}
		progress()
	}
	return p.finishNode(node)
}

// parseUnitOperation reads the operation header (FLASH UID=F-100) and
// the indented body lines that belong to it: FEED and PRODUCT stream
// references plus free-form parameter lines. The statement ends where
// the next operation or section begins.
func (p *Parser) parseUnitOperation() *Node {
	node := p.startNode(KindUnitOperation)
	tok := p.advance()
	node.Token = &tok
	p.parseParameters(node)
	p.endStatement()

	guard := p.newBudget()
	for !p.check(TokenEOF) && !p.atSectionStart() && !p.peek().Kind.IsUnitOpKeyword() && guard.ok() {
		progress := p.mustProgress()
		if p.check(TokenNewline) {
			p.advance()
			continue
		}
		switch {
		case p.check(TokenFeed):
			node.AddChild(p.parseStreamRefs(KindFeeds))
		case p.check(TokenProduct):
			node.AddChild(p.parseStreamRefs(KindProducts))
		case p.check(TokenIdent) || p.peek().Kind.IsKeyword():
			p.parseParameters(node)
			p.endStatement()
		default:
			node.AddChild(p.skipLine())
		}
		progress()
	}
	return p.finishNode(node)
}

// parseStreamRefs reads a FEED or PRODUCT line into an ordered list of
// stream references.
func (p *Parser) parseStreamRefs(kind NodeKind) *Node {
	node := p.startNode(kind)
	tok := p.advance()
	node.Token = &tok
	if p.check(TokenAssign) {
		p.advance()
	}

	guard := p.newBudget()
	for !p.atStatementEnd() && guard.ok() {
		progress := p.mustProgress()
		if p.check(TokenComma) {
			p.advance()
			progress()
			continue
		}
		node.AddChild(p.parseStreamRef())
		progress()
	}
	p.endStatement()
	return p.finishNode(node)
}

// parseStreamRef accepts three shapes: a bare stream name, a
// phase-tagged pair (V=OVHD), and a stage-tagged pair (5/FEED1 or
// FEED1,5). A bare identifier after a comma is always the next stream
// reference, never a tag.
func (p *Parser) parseStreamRef() *Node {
	tok := p.peek()

	// stage/stream
	if tok.Kind == TokenNumber && p.peekN(1).Kind == TokenSlash && p.peekN(2).Kind.isValueLike() {
		node := p.startNode(KindStreamRef)
		stage := p.advance()
		p.advance() // slash
		name := p.advance()
		node.Token = &name
		node.AddChild(numberNode(stage))
		return p.finishNode(node)
	}

	if tok.Kind != TokenIdent && !tok.Kind.IsKeyword() && tok.Kind != TokenString {
		return nil
	}

	// phase=stream
	if p.peekN(1).Kind == TokenAssign && p.peekN(2).Kind.isValueLike() {
		node := p.startNode(KindStreamRef)
		phase := p.advance()
		p.advance() // =
		name := p.advance()
		node.Token = &name
		node.AddChild(&Node{Kind: KindIdentifier, Token: &phase, Span: phase.Span})
		return p.finishNode(node)
	}

	node := p.startNode(KindStreamRef)
	name := p.advance()
	node.Token = &name

	// stream/stage or stream,stage
	if p.check(TokenSlash) && p.peekN(1).Kind == TokenNumber {
		p.advance()
		node.AddChild(numberNode(p.advance()))
	} else if p.check(TokenComma) && p.peekN(1).Kind == TokenNumber && p.peekN(2).Kind != TokenAssign {
		p.advance()
		node.AddChild(numberNode(p.advance()))
	}
	return p.finishNode(node)
}

func (p *Parser) parsePrintSection() *Node {
	node := p.startNode(KindPrintSection)
	stmt := p.startNode(KindPrintStmt)
	tok := p.advance()
	stmt.Token = &tok
	p.parseParameters(stmt)
	p.endStatement()
	node.AddChild(p.finishNode(stmt))
	return p.finishNode(node)
}

// parseOtherSection covers TITLE, SEQUENCE, DIMENSION, DESCRIPTION and
// END: a header statement plus loosely structured lines until the next
// recognized section.
func (p *Parser) parseOtherSection() *Node {
	node := p.startNode(KindOtherSection)
	tok := p.peek()
	node.Token = &tok
	node.AddChild(p.parseGenericStatement())

	guard := p.newBudget()
	for !p.check(TokenEOF) && !p.atSectionStart() && guard.ok() {
		progress := p.mustProgress()
		if p.check(TokenNewline) {
			p.advance()
			continue
		}
		if p.check(TokenIdent) || p.peek().Kind.IsKeyword() {
			node.AddChild(p.parseGenericStatement())
		} else {
			node.AddChild(p.skipLine())
		}
		progress()
	}
	return p.finishNode(node)
}

func (p *Parser) parseGenericStatement() *Node {
	node := p.startNode(KindStatement)
	tok := p.advance()
	node.Token = &tok
	p.parseParameters(node)
	p.endStatement()
	return p.finishNode(node)
}

// parseParameters reads a comma-separated run of name=value pairs and
// bare flags until the end of the logical statement. The left-hand side
// accepts reserved keywords as well as free identifiers: the same word
// can be either depending on context.
func (p *Parser) parseParameters(node *Node) {
	guard := p.newBudget()
	for !p.atStatementEnd() && guard.ok() {
		progress := p.mustProgress()
		if p.check(TokenComma) {
			p.advance()
			progress()
			continue
		}
		node.AddChild(p.parseParameter())
		progress()
	}
}

func (p *Parser) parseParameter() *Node {
	tok := p.peek()
	if tok.Kind != TokenIdent && !tok.Kind.IsKeyword() {
		return nil
	}
	node := p.startNode(KindParameter)
	p.advance()
	node.Token = &tok
	p.parseQualifier(node)
	if p.check(TokenAssign) {
		p.advance()
		p.skipContinuation()
		node.AddChild(p.parseValue())
	}
	return p.finishNode(node)
}

// parseValue reads a scalar, widening to a List when the next token
// after a value is a slash, or a comma that does not start a new
// name=value parameter.
func (p *Parser) parseValue() *Node {
	first := p.parseScalar()
	if first == nil {
		return nil
	}
	if !p.check(TokenSlash) && !p.listCommaAhead() {
		return first
	}

	list := &Node{Kind: KindList, Span: Span{Start: first.Span.Start}}
	if p.check(TokenSlash) {
		list.Sep = SepSlash
	} else {
		list.Sep = SepComma
	}
	list.AddChild(first)

	guard := p.newBudget()
	for guard.ok() {
		if p.check(TokenSlash) {
			p.advance()
		} else if p.listCommaAhead() {
			p.advance()
		} else {
			break
		}
		p.skipContinuation()
		item := p.parseScalar()
		if item == nil {
			break
		}
		list.AddChild(item)
	}
	return p.finishNode(list)
}

// listCommaAhead reports whether the comma under the cursor continues
// a value list. A following name=value or name(qualifier)=value starts
// a new parameter instead, so those commas end the value.
func (p *Parser) listCommaAhead() bool {
	if !p.check(TokenComma) || !p.peekN(1).Kind.isValueLike() {
		return false
	}
	next := p.peekN(2).Kind
	return next != TokenAssign && next != TokenLParen
}

func (p *Parser) parseScalar() *Node {
	tok := p.peek()
	switch {
	case tok.Kind == TokenNumber:
		p.advance()
		return numberNode(tok)
	case tok.Kind == TokenString:
		p.advance()
		return &Node{Kind: KindString, Token: &tok, Span: tok.Span}
	case tok.Kind == TokenIdent || tok.Kind.IsKeyword():
		p.advance()
		return &Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span}
	}
	return nil
}

func numberNode(tok Token) *Node {
	n := &Node{Kind: KindNumber, Token: &tok, Span: tok.Span}
	n.Value, _ = strconv.ParseFloat(tok.Text, 64)
	return n
}
