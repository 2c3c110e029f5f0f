package parser

import "strings"

// Lexer scans process-simulation input byte by byte. It never fails:
// characters outside the grammar come back as TokenUnrecognized so the
// downstream layers can keep working on whatever did scan.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) skipBlank() {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
		} else {
			break
		}
	}
}

// NextToken returns the next significant token. Blanks and tabs are
// discarded; newlines are tokens of their own because the grammar is
// line-oriented.
func (l *Lexer) NextToken() Token {
	l.skipBlank()
	start := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	}

	ch := l.peek()

	switch {
	case ch == '\n':
		l.advance()
		return l.token(TokenNewline, start)
	case ch == '$' || ch == '%':
		return l.scanComment(start)
	case ch == '&':
		l.advance()
		return l.token(TokenContinuation, start)
	case ch == '\'' || ch == '"':
		return l.scanString(start)
	case isDigit(ch):
		return l.scanNumber(start)
	case ch == '-' && isDigit(l.peekN(1)):
		return l.scanNumber(start)
	case isLetter(ch):
		return l.scanIdentOrKeyword(start)
	}

	return l.scanOperator(start)
}

// Tokenize runs the lexer over the whole input. The last token is
// always TokenEOF.
func Tokenize(input []byte, file string) []Token {
	l := NewLexer(input, file)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

// Comments run to end of line. The text is kept for diagnostics but the
// comment has no grammatical weight.
func (l *Lexer) scanComment(start Position) Token {
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenComment, start)
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '-' {
		l.advance()
	}
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekN(2))) {
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}
	return l.token(TokenNumber, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for {
		ch := l.peek()
		if isLetter(ch) || isDigit(ch) || ch == '_' {
			l.advance()
			continue
		}
		// Hyphenated names (F-100, C-01) are single identifiers when the
		// hyphen is followed by another name character.
		if ch == '-' && (isLetter(l.peekN(1)) || isDigit(l.peekN(1))) {
			l.advance()
			continue
		}
		break
	}
	tok := l.token(TokenIdent, start)
	// Hyphenated identifiers never match a keyword, no point looking.
	if strings.IndexByte(tok.Text, '-') < 0 {
		tok.Kind = LookupKeyword(tok.Text)
	}
	return tok
}

// Strings end at the matching quote or, for unterminated strings, at
// end of line.
func (l *Lexer) scanString(start Position) Token {
	quote := l.advance()
	for l.peek() != 0 && l.peek() != '\n' && l.peek() != quote {
		l.advance()
	}
	if l.peek() == quote {
		l.advance()
	}
	return l.token(TokenString, start)
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '=':
		l.advance()
		return l.token(TokenAssign, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '/':
		l.advance()
		return l.token(TokenSlash, start)
	case '+':
		l.advance()
		return l.token(TokenPlus, start)
	case '-':
		l.advance()
		return l.token(TokenMinus, start)
	case '*':
		l.advance()
		return l.token(TokenStar, start)
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	}

	l.advance()
	return l.token(TokenUnrecognized, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind: kind,
		Span: Span{Start: start, End: end},
		Text: string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
