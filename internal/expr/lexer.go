package expr

import (
	"fmt"
	"strings"
	"unicode"
)

// tokenKind classifies lexer tokens.
type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokCaret
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokCaret:
		return "'^'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return fmt.Sprintf("token(%d)", k)
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int // Byte offset in the source
}

var punctuation = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'^': tokCaret,
	'(': tokLParen,
	')': tokRParen,
}

// lex splits src into tokens, ending with a tokEOF token.
func lex(src string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case punctuation[c] != tokEOF:
			tokens = append(tokens, token{kind: punctuation[c], text: src[i : i+1], pos: i})
			i++
		case isDigit(c) || c == '.':
			end := scanNumber(src, i)
			tokens = append(tokens, token{kind: tokNumber, text: src[i:end], pos: i})
			i = end
		case isIdentStart(c):
			end := i + 1
			for end < len(src) && (isIdentStart(src[end]) || isDigit(src[end])) {
				end++
			}
			tokens = append(tokens, token{kind: tokIdent, text: src[i:end], pos: i})
			i = end
		default:
			return nil, syntaxErrorf(i, "unexpected character %q", rune(c))
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(src)})
	return tokens, nil
}

// scanNumber returns the end offset of the number literal starting at i:
// digits, an optional fraction and an optional exponent (1.5e-3).
func scanNumber(src string, i int) int {
	for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
		i++
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			return j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c < unicode.MaxASCII && unicode.IsLetter(rune(c)))
}

// isIdent reports whether s is a valid variable name.
func isIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	return strings.IndexFunc(s[1:], func(r rune) bool {
		return r > unicode.MaxASCII || !(isIdentStart(byte(r)) || isDigit(byte(r)))
	}) < 0
}
