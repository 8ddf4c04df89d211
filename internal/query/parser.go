package query

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a token in the query
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenText
	TokenFilter
	TokenFuzzy  // ~term
	TokenRegex  // /pattern/
	TokenAnd    // + (explicit)
	TokenOr     // |
	TokenNot    // -
	TokenLParen // (
	TokenRParen // )
)

// Token represents a single token in the query
type Token struct {
	Type  TokenType
	Value string
}

// ComparisonOp represents comparison operators
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpGreater      ComparisonOp = ">"
	OpGreaterEqual ComparisonOp = ">="
	OpLess         ComparisonOp = "<"
	OpLessEqual    ComparisonOp = "<="
)

// Tokenizer converts a query string into tokens
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer creates a new tokenizer for the given input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// NextToken returns the next token in the input
func (t *Tokenizer) NextToken() Token {
	t.skipWhitespace()

	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}
	}

	switch t.input[t.pos] {
	case '(':
		t.pos++
		return Token{Type: TokenLParen, Value: "("}
	case ')':
		t.pos++
		return Token{Type: TokenRParen, Value: ")"}
	case '|':
		t.pos++
		return Token{Type: TokenOr, Value: "|"}
	case '+':
		t.pos++
		return Token{Type: TokenAnd, Value: "+"}
	case '-':
		t.pos++
		return Token{Type: TokenNot, Value: "-"}
	case '"':
		return t.readQuotedText()
	case '~':
		return t.readFuzzy()
	case '/':
		return t.readRegex()
	default:
		return t.readWord()
	}
}

// AllTokens returns all tokens in the input
func (t *Tokenizer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && isSpace(t.input[t.pos]) {
		t.pos++
	}
}

func (t *Tokenizer) readQuotedText() Token {
	t.pos++ // opening quote
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '"' {
		t.pos++
	}
	value := t.input[start:t.pos]
	if t.pos < len(t.input) {
		t.pos++
	}
	return Token{Type: TokenText, Value: value}
}

// readWord reads either plain text or a key:criteria filter
func (t *Tokenizer) readWord() Token {
	start := t.pos
	for t.pos < len(t.input) && !isWordEnd(t.input[t.pos]) {
		t.pos++
	}
	value := t.input[start:t.pos]

	if idx := strings.IndexByte(value, ':'); idx > 0 && isIdent(value[:idx]) {
		return Token{Type: TokenFilter, Value: value}
	}
	return Token{Type: TokenText, Value: value}
}

func (t *Tokenizer) readFuzzy() Token {
	t.pos++ // ~
	start := t.pos
	for t.pos < len(t.input) && !isWordEnd(t.input[t.pos]) {
		t.pos++
	}
	term := t.input[start:t.pos]
	if term == "" {
		return Token{Type: TokenText, Value: "~"}
	}
	return Token{Type: TokenFuzzy, Value: term}
}

func (t *Tokenizer) readRegex() Token {
	t.pos++ // opening /
	start := t.pos
	escaped := false

	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '/':
			pattern := t.input[start:t.pos]
			t.pos++
			return Token{Type: TokenRegex, Value: pattern}
		}
		t.pos++
	}

	// Unterminated, the rest is the pattern
	return Token{Type: TokenRegex, Value: t.input[start:t.pos]}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n'
}

func isWordEnd(ch byte) bool {
	return isSpace(ch) || ch == '|' || ch == '+' || ch == '(' || ch == ')'
}

func isIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_') {
			return false
		}
	}
	return s != ""
}

// Parser converts tokens into a FilterExpr tree
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser for the given tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a complete query and returns the root expression.
// An empty query matches every layer.
func Parse(query string) (FilterExpr, error) {
	tokens := NewTokenizer(query).AllTokens()

	if len(tokens) == 1 && tokens[0].Type == TokenEOF {
		return NewAlwaysMatchExpr(), nil
	}

	parser := NewParser(tokens)
	expr, err := parser.parseOr()
	if err != nil {
		return nil, err
	}

	if parser.currentToken().Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token: %s", parser.currentToken().Value)
	}

	return expr, nil
}

func (p *Parser) currentToken() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// Operator precedence: OR < AND < NOT < atoms

func (p *Parser) parseOr() (FilterExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = NewOrExpr(left, right)
	}

	return left, nil
}

func (p *Parser) parseAnd() (FilterExpr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for {
		if p.currentToken().Type == TokenAnd {
			p.advance()
		}
		// Implicit AND continues until a closing token
		switch p.currentToken().Type {
		case TokenEOF, TokenRParen, TokenOr:
			return left, nil
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = NewAndExpr(left, right)
	}
}

func (p *Parser) parseNot() (FilterExpr, error) {
	if p.currentToken().Type == TokenNot {
		p.advance()
		expr, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return NewNotExpr(expr), nil
	}

	return p.parseAtom()
}

func (p *Parser) parseAtom() (FilterExpr, error) {
	tok := p.currentToken()
	switch tok.Type {
	case TokenLParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.currentToken().Type != TokenRParen {
			return nil, fmt.Errorf("expected ')', got %q", p.currentToken().Value)
		}
		p.advance()
		return expr, nil

	case TokenText:
		p.advance()
		return NewTextExpr(tok.Value), nil

	case TokenFuzzy:
		p.advance()
		return NewFuzzyExpr(tok.Value), nil

	case TokenRegex:
		p.advance()
		return NewRegexExpr(tok.Value)

	case TokenFilter:
		p.advance()
		return parseFilterValue(tok.Value)

	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of query")

	default:
		return nil, fmt.Errorf("unexpected token: %s", tok.Value)
	}
}

// parseFilterValue converts a key:criteria token into a FilterExpr
func parseFilterValue(value string) (FilterExpr, error) {
	key, criteria, _ := strings.Cut(value, ":")
	key = strings.ToLower(key)

	switch key {
	case "id":
		if criteria == "" {
			return nil, fmt.Errorf("id filter requires a layer id")
		}
		return NewIDExpr(criteria), nil
	case "name":
		return NewTextExpr(criteria), nil
	}

	field, ok := fieldAliases[key]
	if !ok {
		return nil, fmt.Errorf("unknown filter: %s", key)
	}

	op, val, err := parseComparison(criteria)
	if err != nil {
		return nil, fmt.Errorf("%s filter: %w", key, err)
	}
	return NewNumberFilter(field, op, val)
}

// parseComparison extracts the comparison operator and value from criteria
// Examples: "5" -> ("=", "5"), ">2" -> (">", "2"), "<=-10" -> ("<=", "-10")
func parseComparison(criteria string) (ComparisonOp, string, error) {
	if criteria == "" {
		return "", "", fmt.Errorf("empty criteria")
	}

	ops := []ComparisonOp{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual}
	for _, op := range ops {
		if strings.HasPrefix(criteria, string(op)) {
			val := criteria[len(op):]
			if val == "" {
				return "", "", fmt.Errorf("missing value after operator %s", op)
			}
			return op, val, nil
		}
	}

	return OpEqual, criteria, nil
}
