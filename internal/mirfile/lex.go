package mirfile

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokIdent
	tokInt
	tokFloat
	tokString
	tokLifetime
	tokPunct
)

type token struct {
	kind tokKind
	text string
	pos  int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokString:
		return strconv.Quote(t.text)
	case tokLifetime:
		return "'" + t.text
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

// lex splits one MIR line into tokens. String literals are unquoted.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(src) {
				r, size = utf8.DecodeRuneInString(src[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += size
			}
			toks = append(toks, token{kind: tokIdent, text: src[start:i], pos: start})
		case r == '\'':
			start := i
			i++
			for i < len(src) {
				r, size = utf8.DecodeRuneInString(src[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += size
			}
			if i == start+1 {
				return nil, fmt.Errorf("offset %d: empty lifetime name", start)
			}
			toks = append(toks, token{kind: tokLifetime, text: src[start+1 : i], pos: start})
		case r == '"':
			quoted, err := strconv.QuotedPrefix(src[i:])
			if err != nil {
				return nil, fmt.Errorf("offset %d: bad string literal: %w", i, err)
			}
			text, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, fmt.Errorf("offset %d: bad string literal: %w", i, err)
			}
			toks = append(toks, token{kind: tokString, text: text, pos: i})
			i += len(quoted)
		case r == '-' && strings.HasPrefix(src[i:], "->"):
			toks = append(toks, token{kind: tokPunct, text: "->", pos: i})
			i += 2
		case r == ':' && strings.HasPrefix(src[i:], "::"):
			toks = append(toks, token{kind: tokPunct, text: "::", pos: i})
			i += 2
		case r == '-' || unicode.IsDigit(r):
			tok, n := lexNumber(src[i:])
			if n == 0 {
				return nil, fmt.Errorf("offset %d: unexpected %q", i, r)
			}
			tok.pos = i
			toks = append(toks, tok)
			i += n
		case strings.ContainsRune("&*!()[],:=", r):
			toks = append(toks, token{kind: tokPunct, text: string(r), pos: i})
			i += size
		default:
			return nil, fmt.Errorf("offset %d: unexpected %q", i, r)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

func lexNumber(s string) (token, int) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return token{}, 0
	}
	kind := tokInt
	if i+1 < len(s) && s[i] == '.' && s[i+1] >= '0' && s[i+1] <= '9' {
		kind = tokFloat
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			kind = tokFloat
			i = j
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				i++
			}
		}
	}
	return token{kind: kind, text: s[:i]}, i
}
