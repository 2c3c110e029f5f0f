package parser

import (
	"strconv"
	"strings"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenUnrecognized
	TokenNewline
	TokenComment
	TokenContinuation

	// Literals
	TokenIdent
	TokenNumber
	TokenString

	// Section markers
	TokenTitle
	TokenComponent
	TokenStream
	TokenThermodynamic
	TokenUnitKw
	TokenOperations
	TokenData
	TokenPrint
	TokenSequence
	TokenDimension
	TokenDescription
	TokenEnd

	// Unit operations
	TokenFlash
	TokenColumn
	TokenShortcut
	TokenHx
	TokenHxrig
	TokenPump
	TokenCompressor
	TokenExpander
	TokenValve
	TokenMixer
	TokenSplitter
	TokenPipe
	TokenReactor
	TokenController
	TokenCalculator

	// Parameters
	TokenUID
	TokenName
	TokenFeed
	TokenProduct
	TokenProperty
	TokenComposition
	TokenTemperature
	TokenPressure
	TokenRate
	TokenPhase
	TokenDuty
	TokenTrays
	TokenIsothermal
	TokenAdiabatic
	TokenLibID
	TokenBank
	TokenComp
	TokenSet

	// Thermodynamic methods
	TokenMethod
	TokenSystem
	TokenSRK
	TokenPR
	TokenNRTL
	TokenUNIQUAC
	TokenWilson
	TokenGrayson
	TokenBWRS
	TokenIdeal
	TokenLKP

	// Operators and punctuation
	TokenAssign
	TokenComma
	TokenSlash
	TokenPlus
	TokenMinus
	TokenStar
	TokenLParen
	TokenRParen
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:          "EOF",
	TokenUnrecognized: "Unrecognized",
	TokenNewline:      "Newline",
	TokenComment:      "Comment",
	TokenContinuation: "Continuation",
	TokenIdent:        "Identifier",
	TokenNumber:       "Number",
	TokenString:       "String",
	TokenTitle:        "TITLE",
	TokenComponent:    "COMPONENT",
	TokenStream:       "STREAM",
	TokenThermodynamic: "THERMODYNAMIC",
	TokenUnitKw:       "UNIT",
	TokenOperations:   "OPERATIONS",
	TokenData:         "DATA",
	TokenPrint:        "PRINT",
	TokenSequence:     "SEQUENCE",
	TokenDimension:    "DIMENSION",
	TokenDescription:  "DESCRIPTION",
	TokenEnd:          "END",
	TokenFlash:        "FLASH",
	TokenColumn:       "COLUMN",
	TokenShortcut:     "SHORTCUT",
	TokenHx:           "HX",
	TokenHxrig:        "HXRIG",
	TokenPump:         "PUMP",
	TokenCompressor:   "COMPRESSOR",
	TokenExpander:     "EXPANDER",
	TokenValve:        "VALVE",
	TokenMixer:        "MIXER",
	TokenSplitter:     "SPLITTER",
	TokenPipe:         "PIPE",
	TokenReactor:      "REACTOR",
	TokenController:   "CONTROLLER",
	TokenCalculator:   "CALCULATOR",
	TokenUID:          "UID",
	TokenName:         "NAME",
	TokenFeed:         "FEED",
	TokenProduct:      "PRODUCT",
	TokenProperty:     "PROPERTY",
	TokenComposition:  "COMPOSITION",
	TokenTemperature:  "TEMPERATURE",
	TokenPressure:     "PRESSURE",
	TokenRate:         "RATE",
	TokenPhase:        "PHASE",
	TokenDuty:         "DUTY",
	TokenTrays:        "TRAYS",
	TokenIsothermal:   "ISOTHERMAL",
	TokenAdiabatic:    "ADIABATIC",
	TokenLibID:        "LIBID",
	TokenBank:         "BANK",
	TokenComp:         "COMP",
	TokenSet:          "SET",
	TokenMethod:       "METHOD",
	TokenSystem:       "SYSTEM",
	TokenSRK:          "SRK",
	TokenPR:           "PR",
	TokenNRTL:         "NRTL",
	TokenUNIQUAC:      "UNIQUAC",
	TokenWilson:       "WILSON",
	TokenGrayson:      "GRAYSON",
	TokenBWRS:         "BWRS",
	TokenIdeal:        "IDEAL",
	TokenLKP:          "LKP",
	TokenAssign:       "=",
	TokenComma:        ",",
	TokenSlash:        "/",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenLParen:       "(",
	TokenRParen:       ")",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind TokenKind
	Span Span
	Text string
}

// Length is the number of source bytes covered by the token.
func (t Token) Length() int {
	return t.Span.End.Offset - t.Span.Start.Offset
}

// Keyword lookup is case-insensitive; the table includes the common
// abbreviated spellings (TEMP, PRES, PROD, THERMO) seen in real input decks.
var keywords = map[string]TokenKind{
	"TITLE":         TokenTitle,
	"COMPONENT":     TokenComponent,
	"STREAM":        TokenStream,
	"THERMODYNAMIC": TokenThermodynamic,
	"THERMO":        TokenThermodynamic,
	"UNIT":          TokenUnitKw,
	"OPERATIONS":    TokenOperations,
	"OPERATION":     TokenOperations,
	"DATA":          TokenData,
	"PRINT":         TokenPrint,
	"SEQUENCE":      TokenSequence,
	"DIMENSION":     TokenDimension,
	"DESCRIPTION":   TokenDescription,
	"END":           TokenEnd,

	"FLASH":      TokenFlash,
	"COLUMN":     TokenColumn,
	"SHORTCUT":   TokenShortcut,
	"HX":         TokenHx,
	"HXRIG":      TokenHxrig,
	"PUMP":       TokenPump,
	"COMPRESSOR": TokenCompressor,
	"EXPANDER":   TokenExpander,
	"VALVE":      TokenValve,
	"MIXER":      TokenMixer,
	"SPLITTER":   TokenSplitter,
	"PIPE":       TokenPipe,
	"REACTOR":    TokenReactor,
	"CONTROLLER": TokenController,
	"CALCULATOR": TokenCalculator,

	"UID":         TokenUID,
	"NAME":        TokenName,
	"FEED":        TokenFeed,
	"PRODUCT":     TokenProduct,
	"PROD":        TokenProduct,
	"PROPERTY":    TokenProperty,
	"PROP":        TokenProperty,
	"COMPOSITION": TokenComposition,
	"TEMPERATURE": TokenTemperature,
	"TEMP":        TokenTemperature,
	"PRESSURE":    TokenPressure,
	"PRES":        TokenPressure,
	"RATE":        TokenRate,
	"PHASE":       TokenPhase,
	"DUTY":        TokenDuty,
	"TRAYS":       TokenTrays,
	"ISOTHERMAL":  TokenIsothermal,
	"ADIABATIC":   TokenAdiabatic,
	"LIBID":       TokenLibID,
	"BANK":        TokenBank,
	"COMP":        TokenComp,
	"SET":         TokenSet,

	"METHOD":  TokenMethod,
	"SYSTEM":  TokenSystem,
	"SRK":     TokenSRK,
	"PR":      TokenPR,
	"NRTL":    TokenNRTL,
	"UNIQUAC": TokenUNIQUAC,
	"WILSON":  TokenWilson,
	"GRAYSON": TokenGrayson,
	"BWRS":    TokenBWRS,
	"IDEAL":   TokenIdeal,
	"LKP":     TokenLKP,
}

// LookupKeyword matches ident against the keyword table, ignoring case.
// Unmatched runs stay generic identifiers.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[strings.ToUpper(ident)]; ok {
		return kind
	}
	return TokenIdent
}

func (k TokenKind) IsSectionKeyword() bool {
	switch k {
	case TokenTitle, TokenComponent, TokenStream, TokenThermodynamic,
		TokenUnitKw, TokenOperations, TokenData, TokenPrint,
		TokenSequence, TokenDimension, TokenDescription, TokenEnd:
		return true
	}
	return false
}

func (k TokenKind) IsUnitOpKeyword() bool {
	switch k {
	case TokenFlash, TokenColumn, TokenShortcut, TokenHx, TokenHxrig,
		TokenPump, TokenCompressor, TokenExpander, TokenValve,
		TokenMixer, TokenSplitter, TokenPipe, TokenReactor,
		TokenController, TokenCalculator:
		return true
	}
	return false
}

func (k TokenKind) IsParameterKeyword() bool {
	switch k {
	case TokenUID, TokenName, TokenFeed, TokenProduct, TokenProperty,
		TokenComposition, TokenTemperature, TokenPressure, TokenRate,
		TokenPhase, TokenDuty, TokenTrays, TokenIsothermal,
		TokenAdiabatic, TokenLibID, TokenBank, TokenComp, TokenSet,
		TokenStream, TokenSystem:
		return true
	}
	return false
}

func (k TokenKind) IsMethodKeyword() bool {
	switch k {
	case TokenSRK, TokenPR, TokenNRTL, TokenUNIQUAC, TokenWilson,
		TokenGrayson, TokenBWRS, TokenIdeal, TokenLKP:
		return true
	}
	return false
}

// IsKeyword reports whether the kind came from the keyword table.
func (k TokenKind) IsKeyword() bool {
	return k.IsSectionKeyword() || k.IsUnitOpKeyword() ||
		k.IsParameterKeyword() || k.IsMethodKeyword() ||
		k == TokenMethod
}

// isValueLike reports whether a token can appear in a value position.
// Keywords are accepted because the same word can be a reserved word in
// one context and a plain value in another (e.g. STREAM=FEED).
func (k TokenKind) isValueLike() bool {
	switch k {
	case TokenIdent, TokenNumber, TokenString:
		return true
	}
	return k.IsKeyword()
}
