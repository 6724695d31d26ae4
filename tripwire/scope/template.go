package scope

import (
	"strings"

	"github.com/nevware21/tripwire-go/tripwire/classify"
)

// Template grammar:
//
//	{identifier}       substitute the named fact
//	{identifier(op)}   substitute a derived view; op is len, length, or
//	                   typeof
//	{{                 literal "{"
//
// Two identifiers are synthetic: value (the formatted subject) and path
// (the space-joined applied operation names). Anything unresolvable — an
// unknown fact, an unknown op, a token that never closes — passes through
// verbatim. Template resolution never fails.

// resolveTemplate substitutes tokens in msg against the context's facts.
func (c *Context) resolveTemplate(msg string) string {
	if !strings.ContainsRune(msg, '{') {
		return msg
	}

	var sb strings.Builder

	sb.Grow(len(msg))

	for i := 0; i < len(msg); {
		if msg[i] != '{' {
			sb.WriteByte(msg[i])
			i++

			continue
		}

		if i+1 < len(msg) && msg[i+1] == '{' {
			sb.WriteByte('{')
			i += 2

			continue
		}

		tok, width := scanToken(msg[i:])
		if width == 0 {
			sb.WriteByte(msg[i])
			i++

			continue
		}

		if text, ok := c.resolveToken(tok); ok {
			sb.WriteString(text)
		} else {
			sb.WriteString(msg[i : i+width])
		}

		i += width
	}

	return sb.String()
}

// token is one scanned {identifier} or {identifier(op)} occurrence.
type token struct {
	ident string
	op    string
}

// scanToken reads a token at the start of s (which begins with '{').
// It returns the token and the number of bytes consumed, or width 0 when
// the text is not a well-formed token.
func scanToken(s string) (token, int) {
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return token{}, 0
	}

	body := s[1:end]
	if body == "" {
		return token{}, 0
	}

	open := strings.IndexByte(body, '(')
	if open < 0 {
		if !validIdent(body) {
			return token{}, 0
		}

		return token{ident: body}, end + 1
	}

	// Parenthesized op: require exactly ident(op) with balanced parens.
	if !strings.HasSuffix(body, ")") {
		return token{}, 0
	}

	ident := body[:open]
	op := body[open+1 : len(body)-1]

	if !validIdent(ident) || !validIdent(op) {
		return token{}, 0
	}

	return token{ident: ident, op: op}, end + 1
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]

		ok := ch == '_' ||
			(ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9' && i > 0)
		if !ok {
			return false
		}
	}

	return true
}

// resolveToken maps a token to its substitution text. The second return
// is false when the token must pass through verbatim.
func (c *Context) resolveToken(tok token) (string, bool) {
	var subject any

	switch tok.ident {
	case "value":
		subject = c.value
	case "path":
		if tok.op == "" {
			return c.pathString(), true
		}

		subject = c.pathString()
	default:
		if !c.Has(tok.ident) {
			return "", false
		}

		subject = c.Get(tok.ident)
	}

	switch tok.op {
	case "":
		return c.cfg.Format(subject), true
	case "len", "length":
		if n, ok := classify.Len(subject); ok {
			return c.cfg.Format(n), true
		}

		return "", false
	case "typeof":
		return classify.TypeName(subject), true
	default:
		return "", false
	}
}
