package zone

// Postal-code formulas are a small boolean expression language over a single
// postalCode variable, e.g.
//
//	postalCode == "88"
//	postalCode matches "^SW1[AEHPVWXY]" || postalCode == "EC1A"
//
// Parse or evaluation failures fail closed: the caller treats the condition
// as non-matching and reports the error.

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenEq
	tokenNeq
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
}

type lexer struct {
	input string
	pos   int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF}, nil
	}

	switch ch := l.input[l.pos]; {
	case ch == '(':
		l.pos++
		return token{kind: tokenLParen}, nil
	case ch == ')':
		l.pos++
		return token{kind: tokenRParen}, nil
	case ch == '"' || ch == '\'':
		return l.lexString(ch)
	case ch == '=':
		if strings.HasPrefix(l.input[l.pos:], "==") {
			l.pos += 2
			return token{kind: tokenEq}, nil
		}
		return token{}, fmt.Errorf("unexpected %q at %d", ch, l.pos)
	case ch == '!':
		if strings.HasPrefix(l.input[l.pos:], "!=") {
			l.pos += 2
			return token{kind: tokenNeq}, nil
		}
		l.pos++
		return token{kind: tokenNot}, nil
	case ch == '&':
		if strings.HasPrefix(l.input[l.pos:], "&&") {
			l.pos += 2
			return token{kind: tokenAnd}, nil
		}
		return token{}, fmt.Errorf("unexpected %q at %d", ch, l.pos)
	case ch == '|':
		if strings.HasPrefix(l.input[l.pos:], "||") {
			l.pos += 2
			return token{kind: tokenOr}, nil
		}
		return token{}, fmt.Errorf("unexpected %q at %d", ch, l.pos)
	case unicode.IsLetter(rune(ch)):
		start := l.pos
		for l.pos < len(l.input) && (unicode.IsLetter(rune(l.input[l.pos])) || unicode.IsDigit(rune(l.input[l.pos]))) {
			l.pos++
		}
		return token{kind: tokenIdent, text: l.input[start:l.pos]}, nil
	default:
		return token{}, fmt.Errorf("unexpected %q at %d", ch, l.pos)
	}
}

func (l *lexer) lexString(quote byte) (token, error) {
	l.pos++
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != quote {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{}, fmt.Errorf("unterminated string starting at %d", start-1)
	}
	text := l.input[start:l.pos]
	l.pos++
	return token{kind: tokenString, text: text}, nil
}

type parser struct {
	lex  *lexer
	tok  token
	code string
}

// EvalPostalFormula evaluates formula with postalCode bound to code.
func EvalPostalFormula(formula, code string) (bool, error) {
	p := &parser{lex: &lexer{input: formula}, code: code}
	if err := p.advance(); err != nil {
		return false, err
	}
	result, err := p.parseOr()
	if err != nil {
		return false, err
	}
	if p.tok.kind != tokenEOF {
		return false, fmt.Errorf("unexpected trailing input in formula %q", formula)
	}
	return result, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) parseOr() (bool, error) {
	left, err := p.parseAnd()
	if err != nil {
		return false, err
	}
	for p.tok.kind == tokenOr {
		if err := p.advance(); err != nil {
			return false, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return false, err
		}
		left = left || right
	}
	return left, nil
}

func (p *parser) parseAnd() (bool, error) {
	left, err := p.parseUnary()
	if err != nil {
		return false, err
	}
	for p.tok.kind == tokenAnd {
		if err := p.advance(); err != nil {
			return false, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return false, err
		}
		left = left && right
	}
	return left, nil
}

func (p *parser) parseUnary() (bool, error) {
	if p.tok.kind == tokenNot {
		if err := p.advance(); err != nil {
			return false, err
		}
		val, err := p.parseUnary()
		if err != nil {
			return false, err
		}
		return !val, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (bool, error) {
	if p.tok.kind == tokenLParen {
		if err := p.advance(); err != nil {
			return false, err
		}
		val, err := p.parseOr()
		if err != nil {
			return false, err
		}
		if p.tok.kind != tokenRParen {
			return false, fmt.Errorf("expected closing parenthesis")
		}
		if err := p.advance(); err != nil {
			return false, err
		}
		return val, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (bool, error) {
	left, err := p.parseOperand()
	if err != nil {
		return false, err
	}

	switch p.tok.kind {
	case tokenEq, tokenNeq:
		op := p.tok.kind
		if err := p.advance(); err != nil {
			return false, err
		}
		right, err := p.parseOperand()
		if err != nil {
			return false, err
		}
		if op == tokenEq {
			return strings.EqualFold(left, right), nil
		}
		return !strings.EqualFold(left, right), nil
	case tokenIdent:
		if p.tok.text != "matches" {
			return false, fmt.Errorf("unknown operator %q", p.tok.text)
		}
		if err := p.advance(); err != nil {
			return false, err
		}
		if p.tok.kind != tokenString {
			return false, fmt.Errorf("matches requires a pattern string")
		}
		pattern := p.tok.text
		if err := p.advance(); err != nil {
			return false, err
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		return re.MatchString(left), nil
	default:
		return false, fmt.Errorf("expected comparison operator")
	}
}

func (p *parser) parseOperand() (string, error) {
	switch p.tok.kind {
	case tokenIdent:
		if p.tok.text != "postalCode" {
			return "", fmt.Errorf("unknown variable %q", p.tok.text)
		}
		if err := p.advance(); err != nil {
			return "", err
		}
		return p.code, nil
	case tokenString:
		text := p.tok.text
		if err := p.advance(); err != nil {
			return "", err
		}
		return text, nil
	default:
		return "", fmt.Errorf("expected postalCode or string literal")
	}
}
