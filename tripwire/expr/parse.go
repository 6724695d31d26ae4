package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// argKind classifies one argument token.
type argKind uint8

const (
	// argLiteral is inserted as-is (numeric literals become int/float64).
	argLiteral argKind = iota
	// argPositional is {n}: the nth call argument.
	argPositional
	// argFact is a bare identifier naming a scope fact.
	argFact
)

type argToken struct {
	kind    argKind
	pos     int
	name    string
	literal any
}

// Step is one parsed path element.
type Step struct {
	Name    string
	HasCall bool
	args    []argToken
}

// Expr is a parsed operation expression.
type Expr struct {
	source string
	steps  []Step
}

// Source returns the original expression text.
func (e *Expr) Source() string {
	return e.source
}

// Steps returns the parsed steps in order.
func (e *Expr) Steps() []Step {
	return e.steps
}

// Parse splits a textual or pre-split path into ordered steps. A path
// element may end in a parenthesized, comma-separated argument list.
// Unbalanced or trailing-garbage parentheses are a configuration error.
func Parse(path any) (*Expr, error) {
	switch p := path.(type) {
	case string:
		return parseString(p)
	case []string:
		return parseParts(strings.Join(p, "."), p)
	default:
		return nil, fmt.Errorf("expression path must be a string or []string, got %T", path)
	}
}

func parseString(path string) (*Expr, error) {
	parts, err := splitSteps(path)
	if err != nil {
		return nil, err
	}

	return parseParts(path, parts)
}

func parseParts(source string, parts []string) (*Expr, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("expression %q has no steps", source)
	}

	e := &Expr{source: source, steps: make([]Step, 0, len(parts))}

	for _, part := range parts {
		step, err := parseStep(source, part)
		if err != nil {
			return nil, err
		}

		e.steps = append(e.steps, step)
	}

	return e, nil
}

// splitSteps splits on dots outside parentheses and validates balance.
func splitSteps(path string) ([]string, error) {
	var (
		parts []string
		start int
		depth int
	)

	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("expression %q: unbalanced ')' at position %d", path, i)
			}
		case '.':
			if depth == 0 {
				parts = append(parts, path[start:i])
				start = i + 1
			}
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("expression %q: unclosed '('", path)
	}

	parts = append(parts, path[start:])

	return parts, nil
}

func parseStep(source, part string) (Step, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return Step{}, fmt.Errorf("expression %q has an empty step", source)
	}

	open := strings.IndexByte(part, '(')
	if open < 0 {
		if strings.ContainsAny(part, ")") {
			return Step{}, fmt.Errorf("expression %q: unbalanced ')' in step %q", source, part)
		}

		return Step{Name: part}, nil
	}

	if !strings.HasSuffix(part, ")") {
		return Step{}, fmt.Errorf("expression %q: step %q has text after its argument list", source, part)
	}

	name := strings.TrimSpace(part[:open])
	if name == "" {
		return Step{}, fmt.Errorf("expression %q has a step with no name", source)
	}

	step := Step{Name: name, HasCall: true}

	body := part[open+1 : len(part)-1]
	if strings.TrimSpace(body) == "" {
		return step, nil
	}

	for _, raw := range splitArgs(body) {
		step.args = append(step.args, parseArg(strings.TrimSpace(raw)))
	}

	return step, nil
}

// splitArgs splits on commas outside nested parentheses. Balance was
// already validated by splitSteps.
func splitArgs(body string) []string {
	var (
		out   []string
		start int
		depth int
	)

	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, body[start:i])
				start = i + 1
			}
		}
	}

	return append(out, body[start:])
}

func parseArg(raw string) argToken {
	if len(raw) >= 3 && raw[0] == '{' && raw[len(raw)-1] == '}' {
		if n, err := strconv.Atoi(raw[1 : len(raw)-1]); err == nil && n >= 0 {
			return argToken{kind: argPositional, pos: n}
		}
	}

	if isIdentifier(raw) {
		return argToken{kind: argFact, name: raw}
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return argToken{kind: argLiteral, literal: n}
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return argToken{kind: argLiteral, literal: f}
	}

	return argToken{kind: argLiteral, literal: strings.Trim(raw, `"'`)}
}

func isIdentifier(s string) bool {
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
